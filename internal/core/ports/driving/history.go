package driving

import (
	"context"

	"github.com/jordyarms/everyday/internal/core/domain"
)

// HistoryService records and lists utility runs.
type HistoryService interface {
	// Track runs fn and records the run. The ID, StartedAt, EndedAt and
	// Error fields are filled in; fn fills Items and Failures.
	// Recording failures are logged, never returned; fn's error is.
	Track(ctx context.Context, run domain.Run, fn func(run *domain.Run) error) error

	// List returns recent runs, newest first.
	List(ctx context.Context, limit int) ([]domain.Run, error)

	// Clear deletes all recorded runs.
	Clear(ctx context.Context) (int, error)
}
