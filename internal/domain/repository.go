package domain

import (
	"context"

	"github.com/google/uuid"
)

// RunHistoryRepository defines the interface for the session-scoped projection history
// Implementations are append-only and never persist past the process
type RunHistoryRepository interface {
	// Append stores a run and assigns its RunNumber
	Append(ctx context.Context, run *ProjectionRun) error

	// GetByRunNumber retrieves a run by its 1-based run number
	GetByRunNumber(ctx context.Context, runNumber int) (*ProjectionRun, error)

	// GetByID retrieves a run by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*ProjectionRun, error)

	// List returns runs in the order they were appended
	// limit <= 0 means no limit
	List(ctx context.Context, limit, offset int) ([]*ProjectionRun, error)

	// Count returns the number of recorded runs
	Count(ctx context.Context) (int, error)
}

// ResultCache defines the interface for caching projection results by input key
type ResultCache interface {
	// Get returns the cached result for key, if any
	Get(ctx context.Context, key string) (ProjectionResult, bool, error)

	// Set stores the result under key
	Set(ctx context.Context, key string, result ProjectionResult) error
}
