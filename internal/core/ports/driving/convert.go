package driving

import (
	"context"

	"github.com/jordyarms/everyday/internal/core/domain"
)

// ConvertService converts between CSV, JSON and Markdown front matter.
type ConvertService interface {
	// CSVToJSON writes the rows of a CSV file as a JSON array of objects.
	CSVToJSON(ctx context.Context, inputCSV, outputJSON string) (*domain.ConvertResult, error)

	// JSONToCSV writes a JSON list of objects as CSV.
	JSONToCSV(ctx context.Context, inputJSON, outputCSV string) (*domain.ConvertResult, error)

	// CSVToMarkdown writes one Markdown file with YAML front matter per row.
	CSVToMarkdown(ctx context.Context, inputCSV, outputDir string) (*domain.ConvertResult, error)

	// MarkdownToCSV collects the front matter of a folder of Markdown files.
	// Returns domain.ErrNoFrontMatter when no file has any.
	MarkdownToCSV(ctx context.Context, inputDir, outputCSV string) (*domain.ConvertResult, error)
}

// WatchService re-runs a conversion whenever its inputs change.
type WatchService interface {
	// WatchMarkdown runs MarkdownToCSV once, then again after every change
	// to a Markdown file in inputDir, until ctx is cancelled.
	// onRun is called after every conversion.
	WatchMarkdown(ctx context.Context, inputDir, outputCSV string, onRun func(*domain.ConvertResult, error)) error
}
