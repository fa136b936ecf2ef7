//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chasecee/cut-calc/internal/circuitbreaker"
)

func requestEntry(requestID, level string) *LogEntryDocument {
	return &LogEntryDocument{
		Level:      level,
		Message:    "HTTP request",
		RequestID:  requestID,
		Method:     "POST",
		Path:       "/api/calculate",
		StatusCode: 200,
		Duration:   12,
		IP:         "10.0.4.21",
		UserAgent:  "saw-station/1.4",
	}
}

func TestLogsRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	require.NoError(t, db.SetLogsTTL(ctx, 30))

	repo := NewLogsRepository(db)

	t.Run("create stamps id and timestamp", func(t *testing.T) {
		entry := requestEntry("saw-station-7f2a", "info")
		require.NoError(t, repo.Create(ctx, entry))

		assert.False(t, entry.ID.IsZero())
		assert.False(t, entry.Timestamp.IsZero())
	})

	t.Run("create many in one batch", func(t *testing.T) {
		batch := []*LogEntryDocument{
			requestEntry("saw-station-0001", "info"),
			requestEntry("saw-station-0002", "error"),
			{Level: "info", Message: "Stock profile activated", ActionType: "stock_profile_activated", Actor: "admin"},
		}
		require.NoError(t, repo.CreateMany(ctx, batch))
	})

	t.Run("query by request id", func(t *testing.T) {
		entries, err := repo.Query(ctx, LogQueryOptions{RequestID: "saw-station-7f2a"})
		require.NoError(t, err)
		require.NotEmpty(t, entries)
		assert.Equal(t, "saw-station-7f2a", entries[0].RequestID)
		assert.Equal(t, "/api/calculate", entries[0].Path)
	})

	t.Run("query by level", func(t *testing.T) {
		entries, err := repo.Query(ctx, LogQueryOptions{Level: "error"})
		require.NoError(t, err)
		require.NotEmpty(t, entries)
		assert.Equal(t, "error", entries[0].Level)
	})

	t.Run("query audit entries by action type", func(t *testing.T) {
		entries, err := repo.Query(ctx, LogQueryOptions{ActionType: "stock_profile_activated"})
		require.NoError(t, err)
		require.NotEmpty(t, entries)
		assert.Equal(t, "admin", entries[0].Actor)
	})

	t.Run("newest entries come first", func(t *testing.T) {
		entries, err := repo.Query(ctx, LogQueryOptions{Limit: 10})
		require.NoError(t, err)
		for i := 1; i < len(entries); i++ {
			assert.True(t, !entries[i-1].Timestamp.Before(entries[i].Timestamp))
		}
	})

	t.Run("count honors the filter", func(t *testing.T) {
		total, err := repo.Count(ctx, LogQueryOptions{})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, total, int64(4))

		errorsOnly, err := repo.Count(ctx, LogQueryOptions{Level: "error"})
		require.NoError(t, err)
		assert.Less(t, errorsOnly, total)
	})
}

func TestLogsRepositoryWithCircuitBreaker_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	cb := circuitbreaker.New(circuitbreaker.DefaultConfig())
	wrapped := NewLogsRepositoryWithCircuitBreaker(NewLogsRepository(db), cb)

	require.NoError(t, wrapped.Create(ctx, requestEntry("saw-station-cb", "info")))

	entries, err := wrapped.Query(ctx, LogQueryOptions{RequestID: "saw-station-cb"})
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// A healthy MongoDB keeps the breaker closed.
	stats := cb.GetStats()
	assert.Equal(t, "closed", stats.State)
	assert.True(t, stats.IsHealthy)
}
