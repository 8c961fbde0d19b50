package services

import (
	"context"
	"fmt"

	"github.com/jordyarms/everyday/internal/core/domain"
	"github.com/jordyarms/everyday/internal/core/ports/driven"
	"github.com/jordyarms/everyday/internal/core/ports/driving"
	"github.com/jordyarms/everyday/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// WatchService regenerates outputs when their input folder changes.
type WatchService struct {
	converter driving.ConvertService
	watcher   driven.FolderWatcher
}

// NewWatchService creates a watch service.
func NewWatchService(converter driving.ConvertService, watcher driven.FolderWatcher) *WatchService {
	return &WatchService{
		converter: converter,
		watcher:   watcher,
	}
}

// WatchMarkdown converts inputDir once and again after every change.
// Conversion errors are passed to onRun and do not stop watching.
// It returns nil when ctx is cancelled.
func (s *WatchService) WatchMarkdown(
	ctx context.Context,
	inputDir, outputCSV string,
	onRun func(*domain.ConvertResult, error),
) error {
	if s.watcher == nil {
		return fmt.Errorf("watch %s: folder watcher not configured", inputDir)
	}

	// Subscribe before the first run so no edit falls between the two.
	changes, err := s.watcher.Watch(ctx, inputDir, IsMarkdownFile)
	if err != nil {
		return fmt.Errorf("watch %s: %w", inputDir, err)
	}

	run := func() {
		result, err := s.converter.MarkdownToCSV(ctx, inputDir, outputCSV)
		if ctx.Err() != nil {
			return
		}
		if onRun != nil {
			onRun(result, err)
		}
	}

	logger.Info("Watching %s for Markdown changes", inputDir)
	run()
	for range changes {
		run()
	}
	logger.Info("Stopped watching %s", inputDir)
	return nil
}
