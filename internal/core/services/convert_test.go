package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordyarms/everyday/internal/adapters/driven/frontmatter"
	"github.com/jordyarms/everyday/internal/adapters/driven/output"
	"github.com/jordyarms/everyday/internal/core/domain"
)

func newTestConvertService() *ConvertService {
	return NewConvertService(output.New(), frontmatter.New())
}

// writeTestFile writes content under dir and returns its path.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestConvertService_CSVToJSON_TypesColumns(t *testing.T) {
	dir := t.TempDir()
	in := writeTestFile(t, dir, "in.csv", "id,name,score,active,note\n1,Ann,1.5,true,\n2,Bob,2,FALSE,x\n")
	out := filepath.Join(dir, "out.json")

	result, err := newTestConvertService().CSVToJSON(context.Background(), in, out)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Rows)
	want := `[
    {
        "id": 1,
        "name": "Ann",
        "score": 1.5,
        "active": true,
        "note": null
    },
    {
        "id": 2,
        "name": "Bob",
        "score": 2,
        "active": false,
        "note": "x"
    }
]
`
	assert.Equal(t, want, readTestFile(t, out))
}

func TestConvertService_CSVToJSON_HeaderOnly(t *testing.T) {
	dir := t.TempDir()
	in := writeTestFile(t, dir, "in.csv", "a,b\n")
	out := filepath.Join(dir, "out.json")

	result, err := newTestConvertService().CSVToJSON(context.Background(), in, out)

	require.NoError(t, err)
	assert.Zero(t, result.Rows)
	assert.Equal(t, "[]\n", readTestFile(t, out))
}

func TestConvertService_CSVToJSON_DuplicateHeadersAndMissingValues(t *testing.T) {
	dir := t.TempDir()
	in := writeTestFile(t, dir, "in.csv", "a,a,b\n1,x,NA\n,y\n")
	out := filepath.Join(dir, "out.json")

	_, err := newTestConvertService().CSVToJSON(context.Background(), in, out)

	require.NoError(t, err)
	assert.JSONEq(t, `[{"a":1,"a.1":"x","b":null},{"a":null,"a.1":"y","b":null}]`, readTestFile(t, out))
}

func TestConvertService_CSVToJSON_Errors(t *testing.T) {
	dir := t.TempDir()
	empty := writeTestFile(t, dir, "empty.csv", "")
	service := newTestConvertService()

	_, err := service.CSVToJSON(context.Background(), empty, filepath.Join(dir, "out.json"))
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
	assert.NoFileExists(t, filepath.Join(dir, "out.json"))

	_, err = service.CSVToJSON(context.Background(), filepath.Join(dir, "missing.csv"), filepath.Join(dir, "out.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = service.CSVToJSON(ctx, empty, filepath.Join(dir, "out.json"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConvertService_JSONToCSV(t *testing.T) {
	dir := t.TempDir()
	in := writeTestFile(t, dir, "in.json",
		`[{"b": 1.50, "a": "x", "n": null}, {"a": "y", "c": {"k": [1, 2]}, "t": true, "h": "<b>"}]`)
	out := filepath.Join(dir, "out.csv")

	result, err := newTestConvertService().JSONToCSV(context.Background(), in, out)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Rows)
	want := "a,b,c,h,n,t\n" +
		"x,1.50,,,,\n" +
		"y,,\"{\"\"k\"\":[1,2]}\",<b>,,true\n"
	assert.Equal(t, want, readTestFile(t, out))
}

func TestConvertService_JSONToCSV_SingleObject(t *testing.T) {
	dir := t.TempDir()
	in := writeTestFile(t, dir, "in.json", `{"name": "solo", "n": 3}`)
	out := filepath.Join(dir, "out.csv")

	result, err := newTestConvertService().JSONToCSV(context.Background(), in, out)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Rows)
	assert.Equal(t, "n,name\n3,solo\n", readTestFile(t, out))
}

func TestConvertService_JSONToCSV_EmptyList(t *testing.T) {
	dir := t.TempDir()
	in := writeTestFile(t, dir, "in.json", `[]`)
	out := filepath.Join(dir, "out.csv")

	result, err := newTestConvertService().JSONToCSV(context.Background(), in, out)

	require.NoError(t, err)
	assert.Zero(t, result.Rows)
	assert.Empty(t, readTestFile(t, out))
}

func TestConvertService_JSONToCSV_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"list of scalars", `[1, 2]`, domain.ErrInvalidInput},
		{"string", `"hello"`, domain.ErrInvalidInput},
		{"truncated", `[{"a": 1}`, domain.ErrInvalidInput},
		{"trailing value", `{"a": 1} {"b": 2}`, domain.ErrInvalidInput},
		{"empty file", ``, domain.ErrEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			in := writeTestFile(t, dir, "in.json", tt.content)
			out := filepath.Join(dir, "out.csv")

			_, err := newTestConvertService().JSONToCSV(context.Background(), in, out)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoFileExists(t, out)
		})
	}
}

func TestConvertService_CSVToMarkdown(t *testing.T) {
	dir := t.TempDir()
	in := writeTestFile(t, dir, "in.csv", "Name,Done,Count,Empty Col\nMy Note!,Checked,3,\n,no,4,\n")
	outDir := filepath.Join(dir, "notes", "nested")

	result, err := newTestConvertService().CSVToMarkdown(context.Background(), in, outDir)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Rows)
	assert.Equal(t, []string{"my_note_.md", "untitled.md"}, result.Files)

	codec := frontmatter.New()

	first := readTestFile(t, filepath.Join(outDir, "my_note_.md"))
	assert.Regexp(t, `^---\n`, first)
	assert.Regexp(t, "---\n\n$", first)
	fields, ok, err := codec.Parse([]byte(first))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"name": "My Note!", "done": true, "count": 3}, fields)

	second, ok, err := codec.Parse([]byte(readTestFile(t, filepath.Join(outDir, "untitled.md"))))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"done": "no", "count": 4}, second)
}

func TestConvertService_CSVToMarkdown_DuplicateNamesOverwrite(t *testing.T) {
	dir := t.TempDir()
	in := writeTestFile(t, dir, "in.csv", "title,n\nSame,1\nsame,2\n")
	outDir := filepath.Join(dir, "out")

	result, err := newTestConvertService().CSVToMarkdown(context.Background(), in, outDir)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Rows)
	assert.Equal(t, []string{"same.md"}, result.Files)

	fields, _, err := frontmatter.New().Parse([]byte(readTestFile(t, filepath.Join(outDir, "same.md"))))
	require.NoError(t, err)
	assert.Equal(t, 2, fields["n"])
}

func TestConvertService_MarkdownToCSV(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "md")
	require.NoError(t, os.Mkdir(in, 0755))
	writeTestFile(t, in, "a.md", "---\ntitle: A\ntags: [x, y]\n---\n\nBody\n")
	writeTestFile(t, in, "b.md", "# No front matter\n")
	writeTestFile(t, in, "c.md", "---\ntitle: [unclosed\n---\n")
	writeTestFile(t, in, "d.txt", "---\ntitle: D\n---\n")
	writeTestFile(t, in, "e.md", "---\nfilename: override\nn: 2\n...\n")
	require.NoError(t, os.Mkdir(filepath.Join(in, "sub.md"), 0755))
	out := filepath.Join(dir, "out.csv")

	result, err := newTestConvertService().MarkdownToCSV(context.Background(), in, out)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Rows)
	assert.Equal(t, []string{"a.md", "e.md"}, result.Files)
	assert.Equal(t, []string{"b.md: no front matter", "c.md: invalid YAML"}, result.Skipped)

	want := "filename,n,tags,title\n" +
		"a,,\"[\"\"x\"\",\"\"y\"\"]\",A\n" +
		"e,2,,\n"
	assert.Equal(t, want, readTestFile(t, out))
}

func TestConvertService_MarkdownToCSV_KeepsDatesAsWritten(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "md")
	require.NoError(t, os.Mkdir(in, 0755))
	writeTestFile(t, in, "a.md", "---\ndate: 2024-01-02\nupdated: 2024-01-02 10:30:00\n---\n")
	out := filepath.Join(dir, "out.csv")

	result, err := newTestConvertService().MarkdownToCSV(context.Background(), in, out)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Rows)
	assert.Equal(t, "filename,date,updated\na,2024-01-02,2024-01-02 10:30:00\n", readTestFile(t, out))
}

func TestConvertService_MarkdownToCSV_NoFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "plain.md", "just text\n")
	out := filepath.Join(t.TempDir(), "out.csv")

	result, err := newTestConvertService().MarkdownToCSV(context.Background(), dir, out)

	assert.ErrorIs(t, err, domain.ErrNoFrontMatter)
	require.NotNil(t, result)
	assert.Len(t, result.Skipped, 1)
	assert.NoFileExists(t, out)
}

func TestConvertService_MarkdownToCSV_MissingFolder(t *testing.T) {
	_, err := newTestConvertService().MarkdownToCSV(context.Background(), filepath.Join(t.TempDir(), "nope"), "out.csv")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarkdownFileName(t *testing.T) {
	tests := []struct {
		cell string
		want string
	}{
		{"Hello World", "hello_world.md"},
		{"Already_ok-1", "already_ok-1.md"},
		{"Café/Notes", "caf__notes.md"},
		{"", "untitled.md"},
		{"   ", "untitled.md"},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			assert.Equal(t, tt.want, MarkdownFileName(tt.cell))
		})
	}
}

func TestCellText(t *testing.T) {
	assert.Equal(t, "", cellText(nil))
	assert.Equal(t, "false", cellText(false))
	assert.Equal(t, "42", cellText(42))
	assert.Equal(t, "0.1", cellText(0.1))
	assert.Equal(t, `{"a":"<&>"}`, cellText(map[string]any{"a": "<&>"}))
}

func TestCellText_Times(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"date", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), "2024-01-02"},
		{"datetime", time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC), "2024-01-02 10:30:00"},
		{"fraction", time.Date(2024, 1, 2, 10, 30, 0, 500_000_000, time.UTC), "2024-01-02 10:30:00.500000"},
		{"offset", time.Date(2024, 1, 2, 0, 0, 0, 0, time.FixedZone("", 2*3600)), "2024-01-02 00:00:00+02:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cellText(tt.in))
		})
	}
}
