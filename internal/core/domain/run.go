package domain

import "time"

// Run records one execution of a utility.
type Run struct {
	// ID is a unique identifier for the run.
	ID string

	// Script is the utility name, e.g. "csv-to-json".
	Script string

	// Input and Output are the paths or data the utility was given.
	Input  string
	Output string

	StartedAt time.Time
	EndedAt   time.Time

	// Items counts rows, files or images processed.
	Items int

	// Failures counts items that could not be processed.
	Failures int

	// Error is the message of a run that failed outright.
	Error string
}

// Succeeded reports whether the run completed without a fatal error.
func (r Run) Succeeded() bool {
	return r.Error == ""
}

// Duration returns how long the run took.
func (r Run) Duration() time.Duration {
	if r.EndedAt.IsZero() {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// Utility names recorded in Run.Script.
const (
	ScriptCSVToJSON      = "csv-to-json"
	ScriptJSONToCSV      = "json-to-csv"
	ScriptCSVToMarkdown  = "csv-to-markdown"
	ScriptMarkdownToCSV  = "markdown-to-csv"
	ScriptHashRows       = "hash-rows"
	ScriptDownloadImages = "download-images"
	ScriptScrapeMeta     = "scrape-meta"
	ScriptQR             = "qr"
)
