package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jordyarms/everyday/internal/core/domain"
	"github.com/jordyarms/everyday/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

const runColumns = `id, script, input, output, started_at, ended_at, items, failures, error`

// Save stores or updates a run.
func (s *runStore) Save(ctx context.Context, run domain.Run) error {
	if run.ID == "" || run.Script == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			script = excluded.script,
			input = excluded.input,
			output = excluded.output,
			started_at = excluded.started_at,
			ended_at = excluded.ended_at,
			items = excluded.items,
			failures = excluded.failures,
			error = excluded.error
	`, run.ID, run.Script, run.Input, run.Output,
		formatTime(run.StartedAt), formatNullableTime(run.EndedAt),
		run.Items, run.Failures, nullString(run.Error))

	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// Get retrieves a run by ID.
func (s *runStore) Get(ctx context.Context, id string) (*domain.Run, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

// List returns runs newest first. A limit of zero or less returns every run.
func (s *runStore) List(ctx context.Context, limit int) ([]domain.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

// Clear deletes every run.
func (s *runStore) Clear(ctx context.Context) (int, error) {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM runs")
	if err != nil {
		return 0, fmt.Errorf("clearing runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting cleared runs: %w", err)
	}
	return int(n), nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRun scans a single run.
func scanRun(row rowScanner) (*domain.Run, error) {
	var run domain.Run
	var startedAt, endedAt, runErr sql.NullString

	if err := row.Scan(&run.ID, &run.Script, &run.Input, &run.Output,
		&startedAt, &endedAt, &run.Items, &run.Failures, &runErr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	run.StartedAt = parseNullableTime(startedAt)
	run.EndedAt = parseNullableTime(endedAt)
	if runErr.Valid {
		run.Error = runErr.String
	}

	return &run, nil
}
