package domain

import (
	"strconv"
	"strings"
)

// ColumnKind is the value type inferred for a whole column of text cells.
type ColumnKind int

// Column kinds, from most to least specific.
const (
	// KindEmpty means every cell in the column is missing.
	KindEmpty ColumnKind = iota

	// KindInt means every present cell parses as a base-10 integer.
	KindInt

	// KindFloat means every present cell parses as a number.
	KindFloat

	// KindBool means every present cell is true or false in any case.
	KindBool

	// KindString is the fallback.
	KindString
)

// String returns the name of the kind.
func (k ColumnKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "string"
	}
}

// missingTokens are cell values read as "no value".
var missingTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"n/a":  true,
	"NaN":  true,
	"nan":  true,
	"-NaN": true,
	"null": true,
	"NULL": true,
	"None": true,
	"#N/A": true,
	"<NA>": true,
}

// IsMissing reports whether a cell holds no value.
func IsMissing(cell string) bool {
	return missingTokens[strings.TrimSpace(cell)]
}

// InferKind returns the narrowest kind that every present cell satisfies.
func InferKind(cells []string) ColumnKind {
	kind := KindEmpty
	for _, c := range cells {
		if IsMissing(c) {
			continue
		}
		kind = widen(kind, cellKind(strings.TrimSpace(c)))
		if kind == KindString {
			return kind
		}
	}
	return kind
}

func cellKind(c string) ColumnKind {
	if _, err := strconv.ParseInt(c, 10, 64); err == nil {
		return KindInt
	}
	if _, err := strconv.ParseFloat(c, 64); err == nil && !isSpecialFloat(c) {
		return KindFloat
	}
	if _, ok := parseBool(c); ok {
		return KindBool
	}
	return KindString
}

// widen merges the kind seen so far with the kind of the next cell.
func widen(have, next ColumnKind) ColumnKind {
	switch {
	case have == KindEmpty:
		return next
	case have == next:
		return have
	case (have == KindInt && next == KindFloat) || (have == KindFloat && next == KindInt):
		return KindFloat
	default:
		return KindString
	}
}

// isSpecialFloat rejects spellings ParseFloat accepts but a spreadsheet
// would never mean as a number.
func isSpecialFloat(c string) bool {
	l := strings.ToLower(strings.TrimLeft(c, "+-"))
	return l == "inf" || l == "infinity" || l == "nan" || strings.HasPrefix(l, "0x")
}

func parseBool(c string) (bool, bool) {
	switch strings.ToLower(c) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// TypedValue converts a cell to a Go value according to its column kind.
// The second result is false when the cell is missing.
func TypedValue(kind ColumnKind, cell string) (any, bool) {
	if IsMissing(cell) {
		return nil, false
	}
	c := strings.TrimSpace(cell)

	switch kind {
	case KindInt:
		if v, err := strconv.ParseInt(c, 10, 64); err == nil {
			return v, true
		}
	case KindFloat:
		if v, err := strconv.ParseFloat(c, 64); err == nil {
			return v, true
		}
	case KindBool:
		if v, ok := parseBool(c); ok {
			return v, true
		}
	}
	return cell, true
}
