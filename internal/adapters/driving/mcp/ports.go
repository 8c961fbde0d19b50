package mcp

import (
	"github.com/jordyarms/everyday/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces used by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Convert provides the CSV, JSON and Markdown conversions.
	Convert driving.ConvertService

	// Hash appends row hashes.
	Hash driving.HashService

	// Download fetches images listed in a CSV file.
	Download driving.DownloadService

	// Scrape extracts page metadata.
	Scrape driving.ScrapeService

	// QR generates QR codes.
	QR driving.QRService

	// History records tool runs and backs the history resource.
	History driving.HistoryService

	// Settings backs the settings resource.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Convert == nil {
		return ErrMissingConvertService
	}
	// The remaining utilities are registered only when provided.
	return nil
}
