package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jordyarms/everyday/internal/core/domain"
	"github.com/jordyarms/everyday/internal/core/ports/driven"
	"github.com/jordyarms/everyday/internal/core/ports/driving"
	"github.com/jordyarms/everyday/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService records utility runs in a RunStore.
type HistoryService struct {
	store   driven.RunStore
	enabled bool
	now     func() time.Time
}

// NewHistoryService creates a history service.
// When enabled is false, Track still runs fn but records nothing,
// and List and Clear return domain.ErrHistoryDisabled.
func NewHistoryService(store driven.RunStore, enabled bool) *HistoryService {
	return &HistoryService{
		store:   store,
		enabled: enabled && store != nil,
		now:     time.Now,
	}
}

// Track runs fn and records the run.
func (s *HistoryService) Track(ctx context.Context, run domain.Run, fn func(run *domain.Run) error) error {
	run.ID = uuid.NewString()
	run.StartedAt = s.now()

	err := fn(&run)

	run.EndedAt = s.now()
	if err != nil {
		run.Error = err.Error()
	}

	if s.enabled {
		// Record even when ctx was cancelled so interrupted runs show up.
		saveCtx := context.WithoutCancel(ctx)
		if saveErr := s.store.Save(saveCtx, run); saveErr != nil {
			logger.Warn("Recording run %s of %s: %v", run.ID, run.Script, saveErr)
		} else {
			logger.Debug("Recorded run %s of %s (%d items, %d failures)", run.ID, run.Script, run.Items, run.Failures)
		}
	}

	return err
}

// List returns recent runs, newest first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.Run, error) {
	if !s.enabled {
		return nil, domain.ErrHistoryDisabled
	}
	runs, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Clear deletes all recorded runs.
func (s *HistoryService) Clear(ctx context.Context) (int, error) {
	if !s.enabled {
		return 0, domain.ErrHistoryDisabled
	}
	n, err := s.store.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	return n, nil
}

// IsDisabled reports whether err means history is switched off.
func IsDisabled(err error) bool {
	return errors.Is(err, domain.ErrHistoryDisabled)
}
