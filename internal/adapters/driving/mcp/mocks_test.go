package mcp

import (
	"context"

	"github.com/jordyarms/everyday/internal/core/domain"
)

// mockConvertService is a mock implementation of driving.ConvertService.
type mockConvertService struct {
	result *domain.ConvertResult
	err    error
	calls  []string
}

func (m *mockConvertService) CSVToJSON(_ context.Context, in, out string) (*domain.ConvertResult, error) {
	m.calls = append(m.calls, "csv-to-json "+in+" "+out)
	return m.result, m.err
}

func (m *mockConvertService) JSONToCSV(_ context.Context, in, out string) (*domain.ConvertResult, error) {
	m.calls = append(m.calls, "json-to-csv "+in+" "+out)
	return m.result, m.err
}

func (m *mockConvertService) CSVToMarkdown(_ context.Context, in, out string) (*domain.ConvertResult, error) {
	m.calls = append(m.calls, "csv-to-markdown "+in+" "+out)
	return m.result, m.err
}

func (m *mockConvertService) MarkdownToCSV(_ context.Context, in, out string) (*domain.ConvertResult, error) {
	m.calls = append(m.calls, "markdown-to-csv "+in+" "+out)
	return m.result, m.err
}

// mockHashService is a mock implementation of driving.HashService.
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

// mockDownloadService is a mock implementation of driving.DownloadService.
type mockDownloadService struct {
	results []domain.ImageResult
	err     error
}

func (m *mockDownloadService) DownloadImages(
	_ context.Context,
	_, _ string,
	_ func(domain.ImageResult),
) ([]domain.ImageResult, error) {
	return m.results, m.err
}

// mockScrapeService is a mock implementation of driving.ScrapeService.
type mockScrapeService struct {
	pages []domain.PageMetadata
	err   error
}

func (m *mockScrapeService) ScrapeMetadata(
	_ context.Context,
	_, _ string,
	_ func(domain.PageMetadata),
) ([]domain.PageMetadata, error) {
	return m.pages, m.err
}

// mockQRService is a mock implementation of driving.QRService.
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

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	runs    []domain.Run
	tracked []domain.Run
	err     error
}

func (m *mockHistoryService) Track(_ context.Context, run domain.Run, fn func(run *domain.Run) error) error {
	err := fn(&run)
	if err != nil {
		run.Error = err.Error()
	}
	m.tracked = append(m.tracked, run)
	return err
}

func (m *mockHistoryService) List(_ context.Context, _ int) ([]domain.Run, error) {
	return m.runs, m.err
}

func (m *mockHistoryService) Clear(_ context.Context) (int, error) {
	return len(m.runs), m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &m.settings, nil
}

func (m *mockSettingsService) Set(_, _ string) error { return m.err }

func (m *mockSettingsService) Reset(_ string) error { return m.err }

func (m *mockSettingsService) Value(key string) (any, error) {
	if m.err != nil {
		return nil, m.err
	}
	switch key {
	case domain.KeyHTTPTimeout:
		return m.settings.HTTP.TimeoutSeconds, nil
	case domain.KeyQRRecovery:
		return string(m.settings.QR.Recovery), nil
	case domain.KeyHistoryEnabled:
		return m.settings.History.Enabled, nil
	default:
		return "", nil
	}
}

func (m *mockSettingsService) Defaults() *domain.AppSettings {
	d := domain.DefaultAppSettings()
	return &d
}

func (m *mockSettingsService) Overridden() []string { return nil }

func (m *mockSettingsService) ConfigPath() string { return "/tmp/everyday/config.toml" }
