package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jordyarms/everyday/internal/core/domain"
	"github.com/jordyarms/everyday/internal/core/ports/driven"
	"github.com/jordyarms/everyday/internal/core/ports/driving"
	"github.com/jordyarms/everyday/internal/formats/delimited"
	"github.com/jordyarms/everyday/internal/logger"
)

// Ensure DownloadService implements the interface.
var _ driving.DownloadService = (*DownloadService)(nil)

// Input columns of a bulk image list.
const (
	titleColumn    = "title"
	imageURLColumn = "image_url"
)

// maxExtensionLen bounds what counts as a file extension in a URL path.
const maxExtensionLen = 6

// DownloadService downloads images listed in a CSV file.
type DownloadService struct {
	fetcher     driven.Fetcher
	output      driven.OutputWriter
	concurrency int
}

// NewDownloadService creates a download service running at most
// concurrency downloads at once.
func NewDownloadService(fetcher driven.Fetcher, output driven.OutputWriter, concurrency int) *DownloadService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &DownloadService{
		fetcher:     fetcher,
		output:      output,
		concurrency: concurrency,
	}
}

// DownloadImages fetches every image_url in inputCSV into outputDir.
// Results are returned in input order.
func (s *DownloadService) DownloadImages(
	ctx context.Context,
	inputCSV, outputDir string,
	progress func(domain.ImageResult),
) ([]domain.ImageResult, error) {
	logger.Section("Download Images")
	jobs, err := readImageJobs(inputCSV)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output folder: %w", err)
	}

	var mu sync.Mutex
	report := func(r domain.ImageResult) {
		if progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		progress(r)
	}

	results := make([]domain.ImageResult, len(jobs))
	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		if job.URL == "" {
			logger.Debug("Skipping %q: no URL provided", job.Title)
			results[i] = domain.ImageResult{Job: job, Status: domain.ImageSkipped}
			report(results[i])
			continue
		}
		g.Go(func() error {
			results[i] = s.download(ctx, outputDir, job)
			report(results[i])
			return nil
		})
	}
	_ = g.Wait() // workers report failures in results

	if err := ctx.Err(); err != nil {
		return results, err
	}

	sum := domain.Summarise(results)
	logger.Info("Downloaded %d, skipped %d, failed %d", sum.Downloaded, sum.Skipped, sum.Failed)
	return results, nil
}

// download fetches one image and writes it atomically.
func (s *DownloadService) download(ctx context.Context, outputDir string, job domain.ImageJob) domain.ImageResult {
	result := domain.ImageResult{Job: job, Status: domain.ImageFailed}

	resp, err := s.fetcher.Fetch(ctx, job.URL)
	if err != nil {
		logger.Warn("Failed to download %s: %v", job.URL, err)
		result.Err = err
		return result
	}
	defer resp.Body.Close()

	name := domain.ImageFileStem(job.Title) + domain.ImageExtension(urlExtension(job.URL), resp.ContentType)
	var written int64
	err = writeOutput(s.output, filepath.Join(outputDir, name), func(w io.Writer) error {
		n, err := io.Copy(w, resp.Body)
		written = n
		if err != nil {
			return fmt.Errorf("reading %s: %w", job.URL, err)
		}
		return nil
	})
	if err != nil {
		logger.Warn("Failed to save %s: %v", job.URL, err)
		result.Err = err
		return result
	}

	logger.Debug("Downloaded: %s -> %s", job.Title, name)
	result.Status = domain.ImageDownloaded
	result.File = name
	result.Bytes = written
	return result
}

// readImageJobs reads the title and image_url columns of a CSV file.
func readImageJobs(inputCSV string) ([]domain.ImageJob, error) {
	table, err := delimited.ReadTableFile(inputCSV, ',')
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	urlCol := table.Index(imageURLColumn)
	if urlCol < 0 {
		return nil, fmt.Errorf("%w: %w: %q in %s", domain.ErrInvalidInput, domain.ErrMissingColumn, imageURLColumn, inputCSV)
	}
	titleCol := table.Index(titleColumn)

	jobs := make([]domain.ImageJob, 0, table.Len())
	for r := range table.Rows {
		job := domain.ImageJob{
			Line: r + 1,
			URL:  strings.TrimSpace(table.Cell(r, urlCol)),
		}
		if titleCol >= 0 {
			job.Title = table.Cell(r, titleCol)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// urlExtension returns the extension of the URL path, or "" when it has
// none or it does not look like a file extension.
func urlExtension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	ext := path.Ext(u.Path)
	if len(ext) < 2 || len(ext) > maxExtensionLen {
		return ""
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return ""
		}
	}
	return ext
}
