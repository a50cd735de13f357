package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/savings-backend/internal/domain"
)

func newRun() *domain.ProjectionRun {
	return &domain.ProjectionRun{
		ID:           uuid.New(),
		CalculatedAt: time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC),
		Result:       domain.ProjectionResult{NumMonths: 12, FinalBalance: 1000},
	}
}

func TestHistoryRepository_AppendAssignsSequentialRunNumbers(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository()

	first := newRun()
	second := newRun()

	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	assert.Equal(t, 1, first.RunNumber)
	assert.Equal(t, 2, second.RunNumber)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestHistoryRepository_AppendRejectsInvalidRuns(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository()

	err := repo.Append(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	err = repo.Append(ctx, &domain.ProjectionRun{})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	run := newRun()
	require.NoError(t, repo.Append(ctx, run))
	err = repo.Append(ctx, run)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "already recorded")
}

func TestHistoryRepository_GetByRunNumber(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository()

	run := newRun()
	require.NoError(t, repo.Append(ctx, run))

	found, err := repo.GetByRunNumber(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, run.ID, found.ID)
	assert.Equal(t, 1, found.RunNumber)

	for _, n := range []int{0, -1, 2} {
		_, err := repo.GetByRunNumber(ctx, n)
		assert.ErrorIs(t, err, domain.ErrNotFound, "run number %d", n)
	}
}

func TestHistoryRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository()

	run := newRun()
	require.NoError(t, repo.Append(ctx, run))

	found, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.RunNumber, found.RunNumber)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository()

	run := newRun()
	require.NoError(t, repo.Append(ctx, run))

	// Mutating the caller's value after Append must not alter history
	run.Result.FinalBalance = -1

	found, err := repo.GetByRunNumber(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, found.Result.FinalBalance)

	found.RunNumber = 99
	again, err := repo.GetByRunNumber(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, again.RunNumber)
}

func TestHistoryRepository_ListPagination(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, newRun()))
	}

	tests := []struct {
		name     string
		limit    int
		offset   int
		expected []int
	}{
		{name: "All runs", limit: 0, offset: 0, expected: []int{1, 2, 3, 4, 5}},
		{name: "First page", limit: 2, offset: 0, expected: []int{1, 2}},
		{name: "Middle page", limit: 2, offset: 2, expected: []int{3, 4}},
		{name: "Last partial page", limit: 2, offset: 4, expected: []int{5}},
		{name: "Offset past end", limit: 2, offset: 10, expected: []int{}},
		{name: "Negative offset treated as zero", limit: 1, offset: -3, expected: []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := repo.List(ctx, tt.limit, tt.offset)
			require.NoError(t, err)

			numbers := make([]int, 0, len(runs))
			for _, run := range runs {
				numbers = append(numbers, run.RunNumber)
			}
			assert.Equal(t, tt.expected, numbers)
		})
	}
}

func TestHistoryRepository_ConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository()

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Append(ctx, newRun()))
		}()
	}
	wg.Wait()

	runs, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, runs, workers)
	for i, run := range runs {
		assert.Equal(t, i+1, run.RunNumber)
	}
}
