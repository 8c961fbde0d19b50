package driven

import "context"

// FolderWatcher reports changes to files in a directory.
type FolderWatcher interface {
	// Watch emits one value on the returned channel per burst of changes to
	// files in dir whose base name satisfies match. The channel is closed
	// when ctx is cancelled.
	Watch(ctx context.Context, dir string, match func(name string) bool) (<-chan struct{}, error)
}
