package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jordyarms/everyday/internal/core/domain"
	"github.com/jordyarms/everyday/internal/core/ports/driven"
	"github.com/jordyarms/everyday/internal/core/ports/driving"
	"github.com/jordyarms/everyday/internal/formats/delimited"
	"github.com/jordyarms/everyday/internal/logger"
)

// Ensure ScrapeService implements the interface.
var _ driving.ScrapeService = (*ScrapeService)(nil)

// urlColumn is the input column of the metadata scraper.
const urlColumn = "url"

// ScrapeService extracts page metadata for URLs listed in a CSV file.
type ScrapeService struct {
	fetcher     driven.Fetcher
	extractor   driven.MetadataExtractor
	output      driven.OutputWriter
	concurrency int
}

// NewScrapeService creates a scrape service.
func NewScrapeService(
	fetcher driven.Fetcher,
	extractor driven.MetadataExtractor,
	output driven.OutputWriter,
	concurrency int,
) *ScrapeService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ScrapeService{
		fetcher:     fetcher,
		extractor:   extractor,
		output:      output,
		concurrency: concurrency,
	}
}

// ScrapeMetadata fetches every url in inputCSV and writes the metadata
// to outputCSV in input order. Failed URLs become rows carrying an error.
func (s *ScrapeService) ScrapeMetadata(
	ctx context.Context,
	inputCSV, outputCSV string,
	progress func(domain.PageMetadata),
) ([]domain.PageMetadata, error) {
	logger.Section("Scrape Metadata")
	table, err := delimited.ReadTableFile(inputCSV, ',')
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	col := table.Index(urlColumn)
	if col < 0 {
		return nil, fmt.Errorf("%w: %w: %q in %s", domain.ErrInvalidInput, domain.ErrMissingColumn, urlColumn, inputCSV)
	}

	var mu sync.Mutex
	report := func(m domain.PageMetadata) {
		if progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		progress(m)
	}

	pages := make([]domain.PageMetadata, table.Len())
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range table.Rows {
		if ctx.Err() != nil {
			break
		}
		rawURL := strings.TrimSpace(table.Cell(i, col))
		g.Go(func() error {
			pages[i] = s.scrape(ctx, rawURL)
			report(pages[i])
			return nil
		})
	}
	_ = g.Wait() // failures are recorded per page

	if err := ctx.Err(); err != nil {
		return pages, err
	}

	header, rows := metadataRows(pages)
	err = writeOutput(s.output, outputCSV, func(w io.Writer) error {
		return delimited.WriteAll(w, ',', header, rows)
	})
	if err != nil {
		return pages, err
	}

	logger.Info("Metadata saved to %s", outputCSV)
	return pages, nil
}

// scrape fetches and parses one page.
func (s *ScrapeService) scrape(ctx context.Context, rawURL string) domain.PageMetadata {
	if rawURL == "" {
		return domain.PageMetadata{Error: "no URL provided"}
	}

	resp, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		logger.Warn("Failed to fetch %s: %v", rawURL, err)
		return domain.PageMetadata{URL: rawURL, Error: err.Error()}
	}
	defer resp.Body.Close()

	meta, err := s.extractor.Extract(resp.Body, resp.ContentType)
	if err != nil {
		logger.Warn("Failed to parse %s: %v", rawURL, err)
		return domain.PageMetadata{URL: rawURL, Error: err.Error()}
	}
	meta.URL = rawURL
	logger.Debug("Scraped %s: %q", rawURL, meta.Title)
	return meta
}

// metadataRows lays pages out in the fixed column order. The error column
// is added only when some page failed.
func metadataRows(pages []domain.PageMetadata) ([]string, [][]string) {
	withErrors := false
	for i := range pages {
		if pages[i].Failed() {
			withErrors = true
			break
		}
	}

	header := append([]string(nil), domain.MetadataColumns...)
	if withErrors {
		header = append(header, domain.ErrorColumn)
	}

	rows := make([][]string, 0, len(pages))
	for i := range pages {
		row := pages[i].Values()
		if withErrors {
			row = append(row, pages[i].Error)
		}
		rows = append(rows, row)
	}
	return header, rows
}
