package driving

import (
	"context"

	"github.com/jordyarms/everyday/internal/core/domain"
)

// HashService appends row hashes to delimited files.
type HashService interface {
	// HashRows streams inputFile to outputFile, appending the MD5 digest of
	// each row as a new column.
	HashRows(ctx context.Context, inputFile, outputFile string, opts domain.HashOptions) (*domain.ConvertResult, error)
}
