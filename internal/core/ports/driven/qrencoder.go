package driven

import (
	"io"

	"github.com/jordyarms/everyday/internal/core/domain"
)

// QREncoder renders data as a QR code image.
type QREncoder interface {
	// Encode writes the QR code for data to w in opts.Format.
	Encode(data string, opts domain.QROptions, w io.Writer) error
}
