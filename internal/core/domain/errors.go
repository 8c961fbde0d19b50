package domain

import "errors"

// Domain errors represent utility-level failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyInput indicates an input file had no header row.
	ErrEmptyInput = errors.New("empty input")

	// ErrMissingColumn indicates a required CSV column is absent.
	ErrMissingColumn = errors.New("missing required column")

	// ErrNoFrontMatter indicates no Markdown file carried usable front matter.
	ErrNoFrontMatter = errors.New("no valid YAML front matter found")

	// ErrHTTPStatus indicates a remote server answered with a non-2xx status.
	ErrHTTPStatus = errors.New("unexpected HTTP status")

	// ErrUnknownSetting indicates a configuration key is not recognised.
	ErrUnknownSetting = errors.New("unknown setting")

	// ErrHistoryDisabled indicates run history is switched off in settings.
	ErrHistoryDisabled = errors.New("run history disabled")
)
