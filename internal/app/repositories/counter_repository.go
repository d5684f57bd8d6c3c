package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidyalayahq/vidyalaya/internal/pkg/apperrors"
)

// CounterRepository handles database operations for named counters.
//
// All uniqueness guarantees of the roll-number allocator rest on
// IncrementAndGet being a single atomic statement at the storage layer.
// Never replace it with a read-modify-write at the application level.
type CounterRepository struct {
	db *pgxpool.Pool
}

// NewCounterRepository creates a new counter repository
func NewCounterRepository(db *pgxpool.Pool) *CounterRepository {
	return &CounterRepository{
		db: db,
	}
}

// IncrementAndGet atomically adds delta to the counter stored under key,
// creating it first if absent, and returns the post-increment value.
// Concurrent callers always observe distinct, non-overlapping ranges.
func (r *CounterRepository) IncrementAndGet(ctx context.Context, key string, delta int64) (int64, error) {
	if delta < 1 {
		return 0, fmt.Errorf("%w: counter delta must be >= 1", apperrors.ErrValidationFailed)
	}

	query := `
		INSERT INTO counters (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = counters.value + EXCLUDED.value
		RETURNING value
	`

	var value int64
	if err := r.db.QueryRow(ctx, query, key, delta).Scan(&value); err != nil {
		return 0, fmt.Errorf("error incrementing counter %q: %w", key, err)
	}

	return value, nil
}

// Get reads the current counter value without mutating it. Returns
// apperrors.ErrCounterNotFound if no counter exists under the key.
func (r *CounterRepository) Get(ctx context.Context, key string) (int64, error) {
	var value int64
	err := r.db.QueryRow(ctx, `SELECT value FROM counters WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrCounterNotFound
		}
		return 0, fmt.Errorf("error reading counter %q: %w", key, err)
	}

	return value, nil
}

// Set overwrites the counter value, creating the row if absent. Used only by
// the allocation reconciler when healing drift against persisted data.
func (r *CounterRepository) Set(ctx context.Context, key string, value int64) error {
	query := `
		INSERT INTO counters (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`

	if _, err := r.db.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("error setting counter %q: %w", key, err)
	}

	return nil
}
