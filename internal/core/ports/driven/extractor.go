package driven

import (
	"io"

	"github.com/jordyarms/everyday/internal/core/domain"
)

// MetadataExtractor reads page metadata from an HTML document.
type MetadataExtractor interface {
	// Extract parses r, decoding it according to contentType, and returns
	// the page metadata. The URL field is left for the caller to set.
	Extract(r io.Reader, contentType string) (domain.PageMetadata, error)
}
