// Package qrcode renders QR codes as PNG or SVG images.
//
// Symbol encoding is done by github.com/skip2/go-qrcode. Rendering is done
// here so that module size and quiet zone width are configurable for both
// formats.
package qrcode

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	qr "github.com/skip2/go-qrcode"

	"github.com/jordyarms/everyday/internal/core/domain"
	"github.com/jordyarms/everyday/internal/core/ports/driven"
)

// Ensure Encoder implements the interface.
var _ driven.QREncoder = (*Encoder)(nil)

// libraryQuietZone is the border go-qrcode adds around every bitmap.
const libraryQuietZone = 4

// Encoder renders QR codes.
type Encoder struct{}

// New creates a QR encoder.
func New() *Encoder {
	return &Encoder{}
}

// Encode writes a QR code for data to w.
func (e *Encoder) Encode(data string, opts domain.QROptions, w io.Writer) error {
	if data == "" {
		return fmt.Errorf("%w: QR data must not be empty", domain.ErrInvalidInput)
	}
	if opts.BoxSize <= 0 || opts.Border < 0 {
		return fmt.Errorf("%w: box size must be positive and border non-negative", domain.ErrInvalidInput)
	}

	code, err := qr.New(data, recoveryLevel(opts.Recovery))
	if err != nil {
		return fmt.Errorf("encoding QR code: %w", err)
	}
	modules := trimQuietZone(code.Bitmap(), libraryQuietZone)

	switch opts.Format {
	case domain.QRFormatSVG:
		return writeSVG(w, modules, opts.BoxSize, opts.Border)
	default:
		return writePNG(w, modules, opts.BoxSize, opts.Border)
	}
}

func recoveryLevel(r domain.QRRecovery) qr.RecoveryLevel {
	switch r {
	case domain.QRRecoveryLow:
		return qr.Low
	case domain.QRRecoveryMedium:
		return qr.Medium
	case domain.QRRecoveryQuartile:
		return qr.High
	default:
		return qr.Highest
	}
}

// trimQuietZone removes a border of n modules from every side.
func trimQuietZone(bitmap [][]bool, n int) [][]bool {
	if len(bitmap) <= 2*n {
		return bitmap
	}
	rows := bitmap[n : len(bitmap)-n]
	out := make([][]bool, len(rows))
	for i, row := range rows {
		out[i] = row[n : len(row)-n]
	}
	return out
}

// writePNG draws black modules on white, box pixels per module.
func writePNG(w io.Writer, modules [][]bool, box, border int) error {
	size := (len(modules) + 2*border) * box
	palette := color.Palette{color.White, color.Black}
	img := image.NewPaletted(image.Rect(0, 0, size, size), palette)

	for y, row := range modules {
		for x, dark := range row {
			if !dark {
				continue
			}
			x0 := (x + border) * box
			y0 := (y + border) * box
			for py := y0; py < y0+box; py++ {
				for px := x0; px < x0+box; px++ {
					img.SetColorIndex(px, py, 1)
				}
			}
		}
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("writing PNG: %w", err)
	}
	return nil
}

// writeSVG emits one path with a unit square per dark module.
func writeSVG(w io.Writer, modules [][]bool, box, border int) error {
	dim := len(modules) + 2*border
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`+"\n",
		dim*box, dim*box, dim, dim)
	fmt.Fprintf(bw, `<rect width="%d" height="%d" fill="#ffffff"/>`+"\n", dim, dim)
	bw.WriteString(`<path fill="#000000" d="`)
	for y, row := range modules {
		for x, dark := range row {
			if dark {
				fmt.Fprintf(bw, "M%d %dh1v1h-1z", x+border, y+border)
			}
		}
	}
	bw.WriteString(`"/>` + "\n</svg>\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing SVG: %w", err)
	}
	return nil
}
