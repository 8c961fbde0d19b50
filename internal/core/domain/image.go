package domain

import (
	"strings"
	"unicode"
)

// DefaultImageExtension is used when neither the URL nor the response
// says what kind of image was downloaded.
const DefaultImageExtension = ".jpg"

// DefaultImageTitle names images whose row has no title.
const DefaultImageTitle = "unknown"

// ImageJob is one row of a bulk download list.
type ImageJob struct {
	// Line is the 1-based data row number in the input CSV.
	Line  int
	Title string
	URL   string
}

// ImageStatus is the outcome of one ImageJob.
type ImageStatus string

// Possible image outcomes.
const (
	ImageDownloaded ImageStatus = "downloaded"
	ImageSkipped    ImageStatus = "skipped"
	ImageFailed     ImageStatus = "failed"
)

// ImageResult records what happened to an ImageJob.
type ImageResult struct {
	Job    ImageJob
	Status ImageStatus

	// File is the base name written inside the output folder.
	File string

	// Bytes is the size of the downloaded body.
	Bytes int64

	// Err is set when Status is ImageFailed.
	Err error
}

// ImageFileStem turns a title into a file name stem by replacing every rune
// that is not a letter or digit with an underscore.
func ImageFileStem(title string) string {
	if strings.TrimSpace(title) == "" {
		title = DefaultImageTitle
	}
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// imageExtensions maps image media types to file extensions.
var imageExtensions = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
	"image/avif":    ".avif",
	"image/bmp":     ".bmp",
	"image/tiff":    ".tiff",
	"image/x-icon":  ".ico",
}

// ImageExtension picks the extension for a download. The URL path extension
// wins; otherwise the Content-Type decides, falling back to .jpg.
func ImageExtension(urlExt, contentType string) string {
	if urlExt != "" {
		return urlExt
	}
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if ext, ok := imageExtensions[mediaType]; ok {
		return ext
	}
	return DefaultImageExtension
}

// DownloadSummary totals a batch of ImageResults.
type DownloadSummary struct {
	Downloaded int
	Skipped    int
	Failed     int
	Bytes      int64
}

// Summarise totals the results.
func Summarise(results []ImageResult) DownloadSummary {
	var s DownloadSummary
	for i := range results {
		switch results[i].Status {
		case ImageDownloaded:
			s.Downloaded++
			s.Bytes += results[i].Bytes
		case ImageSkipped:
			s.Skipped++
		case ImageFailed:
			s.Failed++
		}
	}
	return s
}
