package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jordyarms/everyday/internal/adapters/driven/storage/memory"
	"github.com/jordyarms/everyday/internal/core/domain"
	"github.com/jordyarms/everyday/internal/core/services"
)

// mockConvertService implements driving.ConvertService for testing.
type mockConvertService struct {
	result *domain.ConvertResult
	err    error
}

func (m *mockConvertService) CSVToJSON(_ context.Context, _, _ string) (*domain.ConvertResult, error) {
	return m.result, m.err
}

func (m *mockConvertService) JSONToCSV(_ context.Context, _, _ string) (*domain.ConvertResult, error) {
	return m.result, m.err
}

func (m *mockConvertService) CSVToMarkdown(_ context.Context, _, _ string) (*domain.ConvertResult, error) {
	return m.result, m.err
}

func (m *mockConvertService) MarkdownToCSV(_ context.Context, _, _ string) (*domain.ConvertResult, error) {
	return m.result, m.err
}

// mockWatchService implements driving.WatchService for testing.
// It reports each queued result once and returns.
type mockWatchService struct {
	runs []mockWatchRun
}

type mockWatchRun struct {
	result *domain.ConvertResult
	err    error
}

func (m *mockWatchService) WatchMarkdown(
	_ context.Context,
	_, _ string,
	onRun func(*domain.ConvertResult, error),
) error {
	for _, r := range m.runs {
		onRun(r.result, r.err)
	}
	return nil
}

// mockHashService implements driving.HashService for testing.
type mockHashService struct {
	opts domain.HashOptions
	rows int
	err  error
}

func (m *mockHashService) HashRows(_ context.Context, _, _ string, opts domain.HashOptions) (*domain.ConvertResult, error) {
	m.opts = opts
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ConvertResult{Rows: m.rows}, nil
}

// mockDownloadService implements driving.DownloadService for testing.
type mockDownloadService struct {
	results []domain.ImageResult
	err     error
}

func (m *mockDownloadService) DownloadImages(
	_ context.Context,
	_, _ string,
	progress func(domain.ImageResult),
) ([]domain.ImageResult, error) {
	for _, r := range m.results {
		progress(r)
	}
	return m.results, m.err
}

// mockScrapeService implements driving.ScrapeService for testing.
type mockScrapeService struct {
	pages []domain.PageMetadata
	err   error
}

func (m *mockScrapeService) ScrapeMetadata(
	_ context.Context,
	_, _ string,
	progress func(domain.PageMetadata),
) ([]domain.PageMetadata, error) {
	for _, p := range m.pages {
		progress(p)
	}
	return m.pages, m.err
}

// mockQRService implements driving.QRService for testing.
type mockQRService struct {
	err error
}

func (m *mockQRService) Generate(_ context.Context, _, outputFile string) (*domain.QROptions, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.QROptions{
		Format:   domain.QRFormatForPath(outputFile),
		Recovery: domain.QRRecoveryHigh,
		BoxSize:  10,
		Border:   4,
	}, nil
}

// testServices exposes the stores behind the real history and settings services.
type testServices struct {
	convert  *mockConvertService
	watch    *mockWatchService
	hash     *mockHashService
	download *mockDownloadService
	scrape   *mockScrapeService
	qr       *mockQRService
	runs     *memory.RunStore
	config   *memory.ConfigStore
}

// setupTestServices installs mocks for the utilities and in-memory
// history and settings. The returned func restores the previous state.
func setupTestServices() func() {
	_, cleanup := setupTestServicesWith()
	return cleanup
}

func setupTestServicesWith() (*testServices, func()) {
	old := Services{
		Convert:  convertService,
		Watch:    watchService,
		Hash:     hashService,
		Download: downloadService,
		Scrape:   scrapeService,
		QR:       qrService,
		History:  historyService,
		Settings: settingsService,
	}

	ts := &testServices{
		convert:  &mockConvertService{result: &domain.ConvertResult{}},
		watch:    &mockWatchService{},
		hash:     &mockHashService{},
		download: &mockDownloadService{},
		scrape:   &mockScrapeService{},
		qr:       &mockQRService{},
		runs:     memory.NewRunStore(),
		config:   memory.NewConfigStore(),
	}

	SetServices(Services{
		Convert:  ts.convert,
		Watch:    ts.watch,
		Hash:     ts.hash,
		Download: ts.download,
		Scrape:   ts.scrape,
		QR:       ts.qr,
		History:  services.NewHistoryService(ts.runs, true),
		Settings: services.NewSettingsService(ts.config, "test"),
	})

	return ts, func() {
		SetServices(old)
		resetFlags()
	}
}

// resetFlags restores flag values that persist between Execute calls.
func resetFlags() {
	_ = historyCmd.Flags().Set("limit", "20")
	_ = markdownToCSVCmd.Flags().Set("watch", "false")
	_ = hashRowsCmd.Flags().Set("delimiter", ",")
	_ = hashRowsCmd.Flags().Set("column-name", "")
	verbose = false
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// recordedRuns returns the runs saved in the in-memory history.
func recordedRuns(t *testing.T, ts *testServices) []domain.Run {
	t.Helper()
	runs, err := ts.runs.List(context.Background(), 0)
	require.NoError(t, err)
	return runs
}
