package services

import (
	"context"
	"fmt"
	"io"

	"github.com/jordyarms/everyday/internal/core/domain"
	"github.com/jordyarms/everyday/internal/core/ports/driven"
	"github.com/jordyarms/everyday/internal/core/ports/driving"
	"github.com/jordyarms/everyday/internal/logger"
)

// Ensure QRService implements the interface.
var _ driving.QRService = (*QRService)(nil)

// QRService generates QR code images.
type QRService struct {
	encoder  driven.QREncoder
	output   driven.OutputWriter
	settings domain.QRSettings
}

// NewQRService creates a QR service rendering with the given settings.
func NewQRService(encoder driven.QREncoder, output driven.OutputWriter, settings domain.QRSettings) *QRService {
	return &QRService{
		encoder:  encoder,
		output:   output,
		settings: settings,
	}
}

// Generate encodes data into outputFile as SVG or PNG depending on the
// file extension.
func (s *QRService) Generate(ctx context.Context, data, outputFile string) (*domain.QROptions, error) {
	if data == "" {
		return nil, fmt.Errorf("%w: nothing to encode", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := domain.QROptions{
		Format:   domain.QRFormatForPath(outputFile),
		Recovery: s.settings.Recovery,
		BoxSize:  s.settings.BoxSize,
		Border:   s.settings.Border,
	}
	logger.Debug("Encoding %d bytes as %s (recovery %s, box %d, border %d)",
		len(data), opts.Format, opts.Recovery, opts.BoxSize, opts.Border)

	err := writeOutput(s.output, outputFile, func(w io.Writer) error {
		return s.encoder.Encode(data, opts, w)
	})
	if err != nil {
		return nil, fmt.Errorf("generate qr code: %w", err)
	}
	return &opts, nil
}
