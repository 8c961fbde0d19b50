package driven

import (
	"context"

	"github.com/jordyarms/everyday/internal/core/domain"
)

// RunStore persists the history of utility runs.
type RunStore interface {
	// Save stores or updates a run.
	Save(ctx context.Context, run domain.Run) error

	// Get retrieves a run by ID.
	// Returns domain.ErrNotFound if the run does not exist.
	Get(ctx context.Context, id string) (*domain.Run, error)

	// List returns the most recent runs first.
	// A limit of zero or less returns every run.
	List(ctx context.Context, limit int) ([]domain.Run, error)

	// Clear deletes every run and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}
