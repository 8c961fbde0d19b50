package driving

import (
	"context"

	"github.com/jordyarms/everyday/internal/core/domain"
)

// QRService generates QR code images.
type QRService interface {
	// Generate encodes data into outputFile. The format follows the file
	// extension. It returns the options used.
	Generate(ctx context.Context, data, outputFile string) (*domain.QROptions, error)
}
