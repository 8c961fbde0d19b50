package domain

// PageMetadata holds the metadata scraped from one web page.
// Fields are empty when the page does not declare them.
type PageMetadata struct {
	URL           string
	Title         string
	Description   string
	Keywords      string
	PublishedDate string
	OGTitle       string
	OGDescription string
	OGImage       string
	OGURL         string

	// JSONLD is the first application/ld+json block, re-encoded compactly.
	JSONLD string

	// Error is set instead of the other fields when the fetch failed.
	Error string
}

// MetadataColumns is the fixed column order of a metadata CSV.
// ErrorColumn is appended only when at least one row failed.
var MetadataColumns = []string{
	"url",
	"title",
	"description",
	"keywords",
	"published_date",
	"og_title",
	"og_description",
	"og_image",
	"og_url",
	"json_ld",
}

// ErrorColumn is the column holding fetch failures.
const ErrorColumn = "error"

// Failed reports whether the page could not be fetched.
func (m PageMetadata) Failed() bool {
	return m.Error != ""
}

// Values returns the row in MetadataColumns order.
func (m PageMetadata) Values() []string {
	return []string{
		m.URL,
		m.Title,
		m.Description,
		m.Keywords,
		m.PublishedDate,
		m.OGTitle,
		m.OGDescription,
		m.OGImage,
		m.OGURL,
		m.JSONLD,
	}
}
