package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDirFromEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnv, home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.toml"), store.Path())
}

func TestDefaultHome(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv(HomeEnv, "/tmp/everyday-test")
		dir, err := DefaultHome()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/everyday-test", dir)
	})

	t.Run("user home", func(t *testing.T) {
		t.Setenv(HomeEnv, "")
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skip("Cannot determine home directory")
		}
		dir, err := DefaultHome()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".everyday"), dir)
	})
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("http.user_agent", "bot/1.0"))

	val, ok := store.Get("http.user_agent")
	assert.True(t, ok)
	assert.Equal(t, "bot/1.0", val)
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	val, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("s", "hello"))
	require.NoError(t, store.Set("i", 42))
	require.NoError(t, store.Set("f", 2.5))

	assert.Equal(t, "hello", store.GetString("s"))
	assert.Equal(t, "", store.GetString("i"))
	assert.Equal(t, 42, store.GetInt("i"))
	assert.Equal(t, 0, store.GetInt("s"))
	assert.Equal(t, 2.5, store.GetFloat("f"))
	assert.Equal(t, 42.0, store.GetFloat("i"))
	assert.Equal(t, 0.0, store.GetFloat("s"))
}

func TestConfigStore_Persistence_NestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("http.timeout_seconds", 30))
	require.NoError(t, store.Set("http.requests_per_second", 1.5))
	require.NoError(t, store.Set("qr.recovery", "low"))
	require.NoError(t, store.Set("history.enabled", false))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[http]")
	assert.Contains(t, string(raw), "[qr]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 30, reloaded.GetInt("http.timeout_seconds"))
	assert.Equal(t, 1.5, reloaded.GetFloat("http.requests_per_second"))
	assert.Equal(t, "low", reloaded.GetString("qr.recovery"))
	val, ok := reloaded.Get("history.enabled")
	assert.True(t, ok)
	assert.Equal(t, false, val)
}

func TestConfigStore_LoadHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[http]\nconcurrency = 8\nuser_agent = \"me\"\n\n[hasher]\ncolumn_name = \"id\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 8, store.GetInt("http.concurrency"))
	assert.Equal(t, "me", store.GetString("http.user_agent"))
	assert.Equal(t, "id", store.GetString("hasher.column_name"))
	assert.Equal(t, []string{"hasher.column_name", "http.concurrency", "http.user_agent"}, store.Keys())
}

func TestConfigStore_Unset(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("qr.border", 2))
	require.NoError(t, store.Unset("qr.border"))
	require.NoError(t, store.Unset("qr.border"))

	_, ok := store.Get("qr.border")
	assert.False(t, ok)

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	_, ok = reloaded.Get("qr.border")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("test", "value"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Empty(t, store.Keys())
}

func TestConfigStore_Load_NonExistent(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.load())
	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr), "loading must not create the file")
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	corrupted := []byte("this is not valid TOML {{{[[")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), corrupted, 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetString(key)
			_, _ = store.Get(key)
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 10)
}

func TestFlattenMap(t *testing.T) {
	nested := map[string]any{
		"http": map[string]any{"concurrency": int64(2), "retry": map[string]any{"max": int64(3)}},
		"top":  "x",
	}

	assert.Equal(t, map[string]any{
		"http.concurrency": int64(2),
		"http.retry.max":   int64(3),
		"top":              "x",
	}, flattenMap(nested, ""))
}

func TestNestMap(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		flat := map[string]any{"a.b": 1, "a.c": 2, "d": "x"}
		nested := nestMap(flat)
		assert.Equal(t, map[string]any{
			"a": map[string]any{"b": 1, "c": 2},
			"d": "x",
		}, nested)
		assert.Equal(t, flat, flattenMap(nested, ""))
	})

	t.Run("value shadows table prefix", func(t *testing.T) {
		nested := nestMap(map[string]any{"a": 1, "a.b": 2})
		assert.Equal(t, map[string]any{"a": 1, "a.b": 2}, nested)
	})
}
