// Package watch reports file changes in a directory using fsnotify.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jordyarms/everyday/internal/core/ports/driven"
	"github.com/jordyarms/everyday/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.FolderWatcher = (*Watcher)(nil)

// DefaultDebounce groups editor save bursts into one notification.
const DefaultDebounce = 300 * time.Millisecond

// relevantOps are the operations that change a file's content or presence.
const relevantOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watcher watches a single directory, non-recursively.
type Watcher struct {
	debounce time.Duration
}

// New creates a watcher. A non-positive debounce uses DefaultDebounce.
func New(debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{debounce: debounce}
}

// Watch starts watching dir until ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, dir string, match func(name string) bool) (<-chan struct{}, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer fw.Close()
		debounce(ctx, fw.Events, fw.Errors, match, w.debounce, out)
	}()
	return out, nil
}

// debounce forwards at most one signal per quiet period of delay after
// matching events. It closes out when ctx is done or events is closed.
func debounce(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	match func(name string) bool,
	delay time.Duration,
	out chan<- struct{},
) {
	defer close(out)

	// Idle until the first matching event arms the timer.
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Op&relevantOps == 0 {
				continue
			}
			if match != nil && !match(filepath.Base(ev.Name)) {
				continue
			}
			logger.Debug("change detected: %s %s", ev.Op, ev.Name)
			timer.Reset(delay)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("watch error: %v", err)
		case <-timer.C:
			select {
			case out <- struct{}{}:
			default:
				// A notification is already pending.
			}
		}
	}
}
