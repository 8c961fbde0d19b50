package driving

import (
	"context"

	"github.com/jordyarms/everyday/internal/core/domain"
)

// DownloadService downloads images listed in a CSV file.
type DownloadService interface {
	// DownloadImages fetches every image_url in inputCSV into outputDir.
	// Individual failures are reported in the results, not as an error.
	// progress, if non-nil, is called once per row as it completes.
	DownloadImages(ctx context.Context, inputCSV, outputDir string, progress func(domain.ImageResult)) ([]domain.ImageResult, error)
}

// ScrapeService extracts page metadata for URLs listed in a CSV file.
type ScrapeService interface {
	// ScrapeMetadata fetches every url in inputCSV and writes the metadata
	// to outputCSV in input order.
	// progress, if non-nil, is called once per URL as it completes.
	ScrapeMetadata(ctx context.Context, inputCSV, outputCSV string, progress func(domain.PageMetadata)) ([]domain.PageMetadata, error)
}
