// Package output writes utility results to disk atomically.
//
// Each file is written to a temporary sibling, synced, and renamed over the
// target, so a crash or an error halfway through never leaves a truncated
// CSV, JSON or image behind.
package output

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"

	"github.com/jordyarms/everyday/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.OutputWriter = (*Writer)(nil)

// defaultPerm is the mode of created files before umask.
const defaultPerm os.FileMode = 0o644

// Writer creates atomic output files.
type Writer struct {
	perm os.FileMode
}

// New creates a Writer producing files with mode 0644 (before umask).
func New() *Writer {
	return &Writer{perm: defaultPerm}
}

// Create opens a pending file for path.
func (w *Writer) Create(path string) (driven.PendingFile, error) {
	pf, err := renameio.NewPendingFile(path, renameio.WithPermissions(w.perm), renameio.WithExistingPermissions())
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &pendingFile{file: pf, path: path}, nil
}

// pendingFile adapts renameio.PendingFile to driven.PendingFile.
type pendingFile struct {
	file *renameio.PendingFile
	path string
}

func (p *pendingFile) Write(b []byte) (int, error) {
	return p.file.Write(b)
}

// Commit syncs and renames the file into place.
func (p *pendingFile) Commit() error {
	if err := p.file.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("writing %s: %w", p.path, err)
	}
	return nil
}

// Discard removes the temporary file. renameio makes this a no-op once
// the file has been committed.
func (p *pendingFile) Discard() error {
	return p.file.Cleanup()
}
