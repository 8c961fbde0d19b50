package domain

import (
	"fmt"
	"strings"
)

// ConvertResult reports what a file conversion produced.
type ConvertResult struct {
	// Rows is the number of records written.
	Rows int

	// Files lists the files written, for utilities that write many.
	Files []string

	// Skipped lists inputs that were ignored, with the reason.
	Skipped []string
}

// HashOptions controls the row hasher.
type HashOptions struct {
	// Delimiter separates cells in both input and output.
	Delimiter rune

	// ColumnName names the appended hash column.
	ColumnName string
}

// ParseDelimiter accepts "," or "tab" (or a literal tab).
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case ",", "comma", "":
		return ',', nil
	case "tab", "\t", `\t`:
		return '\t', nil
	default:
		return 0, fmt.Errorf("%w: delimiter must be ',' or 'tab', got %q", ErrInvalidInput, s)
	}
}
