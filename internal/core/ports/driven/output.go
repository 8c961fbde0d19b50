package driven

import "io"

// OutputWriter creates output files that appear atomically.
// Readers see either the previous file or the complete new one.
type OutputWriter interface {
	// Create opens a pending file that will replace path on Commit.
	// Parent directories must already exist.
	Create(path string) (PendingFile, error)
}

// PendingFile is an output file that has not been published yet.
type PendingFile interface {
	io.Writer

	// Commit flushes the data and atomically replaces the target.
	Commit() error

	// Discard removes the pending data. It is a no-op after Commit,
	// so it is safe to defer.
	Discard() error
}
