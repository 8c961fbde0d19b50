package domain

import (
	"path/filepath"
	"strings"
)

// QRFormat is the image format of a generated QR code.
type QRFormat string

// Supported QR formats.
const (
	QRFormatPNG QRFormat = "png"
	QRFormatSVG QRFormat = "svg"
)

// QRFormatForPath returns SVG for .svg paths and PNG for anything else.
func QRFormatForPath(path string) QRFormat {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return QRFormatSVG
	}
	return QRFormatPNG
}

// QRRecovery is the error correction level of a QR code.
type QRRecovery string

// Error correction levels, recovering roughly 7, 15, 25 and 30 percent.
const (
	QRRecoveryLow      QRRecovery = "low"
	QRRecoveryMedium   QRRecovery = "medium"
	QRRecoveryQuartile QRRecovery = "quartile"
	QRRecoveryHigh     QRRecovery = "high"
)

// IsValid returns true if the level is recognised.
func (r QRRecovery) IsValid() bool {
	switch r {
	case QRRecoveryLow, QRRecoveryMedium, QRRecoveryQuartile, QRRecoveryHigh:
		return true
	default:
		return false
	}
}

// QROptions controls QR rendering.
type QROptions struct {
	Format   QRFormat
	Recovery QRRecovery

	// BoxSize is the width of one module in pixels.
	BoxSize int

	// Border is the quiet zone width in modules.
	Border int
}
