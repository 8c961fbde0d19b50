package services

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jordyarms/everyday/internal/core/ports/driven"
)

// writeOutput streams fn's output to path through an atomic pending file.
// The file only appears if fn succeeds.
func writeOutput(w driven.OutputWriter, path string, fn func(io.Writer) error) error {
	pending, err := w.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer pending.Discard() //nolint:errcheck // no-op after commit

	if err := fn(pending); err != nil {
		return err
	}
	if err := pending.Commit(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// cellText renders a decoded JSON or YAML value as a CSV cell.
// Scalars use their natural text, nil is empty, and nested values are
// written as compact JSON.
func cellText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return timeText(val)
	default:
		return compactJSON(val)
	}
}

// timeText renders a YAML date or timestamp the way it was usually
// written: midnight UTC as a bare date, anything else as "date time" with
// fractional seconds and a UTC offset only when present.
func timeText(t time.Time) string {
	h, m, sec := t.Clock()
	if t.Location() == time.UTC && h == 0 && m == 0 && sec == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}

	layout := time.DateTime
	if t.Nanosecond() != 0 {
		layout += ".000000"
	}
	if t.Location() != time.UTC {
		layout += "-07:00"
	}
	return t.Format(layout)
}

// compactJSON encodes v without HTML escaping or a trailing newline.
func compactJSON(v any) string {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
