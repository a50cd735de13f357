package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/simaogato/savings-backend/internal/domain"
)

// historyRepository implements domain.RunHistoryRepository in process memory.
// Runs live for the lifetime of the process and are never written to disk.
type historyRepository struct {
	mu   sync.RWMutex
	runs []*domain.ProjectionRun
	byID map[uuid.UUID]int // index into runs
}

// NewHistoryRepository creates a new empty session history
func NewHistoryRepository() domain.RunHistoryRepository {
	return &historyRepository{
		runs: []*domain.ProjectionRun{},
		byID: make(map[uuid.UUID]int),
	}
}

// Append stores a copy of the run and assigns the next 1-based RunNumber to it
func (r *historyRepository) Append(ctx context.Context, run *domain.ProjectionRun) error {
	if run == nil {
		return fmt.Errorf("%w: run cannot be nil", domain.ErrInvalidArgument)
	}
	if run.ID == uuid.Nil {
		return fmt.Errorf("%w: run must have an ID", domain.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[run.ID]; exists {
		return fmt.Errorf("%w: run %s already recorded", domain.ErrInvalidArgument, run.ID)
	}

	run.RunNumber = len(r.runs) + 1
	stored := *run
	r.byID[stored.ID] = len(r.runs)
	r.runs = append(r.runs, &stored)

	return nil
}

// GetByRunNumber retrieves a run by its 1-based run number
func (r *historyRepository) GetByRunNumber(ctx context.Context, runNumber int) (*domain.ProjectionRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if runNumber < 1 || runNumber > len(r.runs) {
		return nil, fmt.Errorf("projection run %d %w", runNumber, domain.ErrNotFound)
	}

	run := *r.runs[runNumber-1]
	return &run, nil
}

// GetByID retrieves a run by its ID
func (r *historyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProjectionRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("projection run %s %w", id, domain.ErrNotFound)
	}

	run := *r.runs[idx]
	return &run, nil
}

// List returns runs in append order
// limit <= 0 returns every run after offset
func (r *historyRepository) List(ctx context.Context, limit, offset int) ([]*domain.ProjectionRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset >= len(r.runs) {
		return []*domain.ProjectionRun{}, nil
	}

	end := len(r.runs)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	runs := make([]*domain.ProjectionRun, 0, end-offset)
	for _, run := range r.runs[offset:end] {
		c := *run
		runs = append(runs, &c)
	}
	return runs, nil
}

// Count returns the number of recorded runs
func (r *historyRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.runs), nil
}
