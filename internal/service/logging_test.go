package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chasecee/cut-calc/internal/domain/model"
	"github.com/chasecee/cut-calc/internal/mocks"
	"github.com/chasecee/cut-calc/internal/repository"
)

func TestLoggingService_CreateLog(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockLogsRepositoryInterface)
	svc := NewLoggingService(repo)

	var captured *repository.LogEntryDocument
	repo.On("Create", ctx, mock.AnythingOfType("*repository.LogEntryDocument")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*repository.LogEntryDocument)
		}).Return(nil)

	entry := &model.LogEntry{
		Level:      "info",
		Message:    "plan computed",
		RequestID:  "req-1",
		Actor:      "admin",
		ActionType: "calculate",
	}
	entry.WithField("stock_count", 10)

	err := svc.CreateLog(ctx, entry)
	require.NoError(t, err)
	require.NotNil(t, captured)

	// IDs and timestamps are filled in on the way down.
	assert.False(t, captured.ID.IsZero())
	assert.False(t, captured.Timestamp.IsZero())
	assert.Equal(t, "plan computed", captured.Message)
	assert.Equal(t, "admin", captured.Actor)
	assert.Equal(t, "calculate", captured.ActionType)
	assert.Equal(t, 10, captured.Fields["stock_count"])
	repo.AssertExpectations(t)
}

func TestLoggingService_CreateLogs(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockLogsRepositoryInterface)
	svc := NewLoggingService(repo)

	t.Run("empty batch is a no-op", func(t *testing.T) {
		err := svc.CreateLogs(ctx, nil)
		assert.NoError(t, err)
		repo.AssertNotCalled(t, "CreateMany")
	})

	t.Run("batch converts every entry", func(t *testing.T) {
		repo.On("CreateMany", ctx, mock.AnythingOfType("[]*repository.LogEntryDocument")).Return(nil)

		entries := []*model.LogEntry{
			{Level: "info", Message: "one"},
			{Level: "error", Message: "two"},
		}
		err := svc.CreateLogs(ctx, entries)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestLoggingService_QueryLogs(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockLogsRepositoryInterface)
	svc := NewLoggingService(repo)

	now := time.Now()
	docs := []*repository.LogEntryDocument{
		{Timestamp: now, Level: "info", Message: "found", RequestID: "req-9", Actor: "admin"},
	}
	repo.On("Query", ctx, repository.LogQueryOptions{RequestID: "req-9", Limit: 5}).Return(docs, nil)

	entries, err := svc.QueryLogs(ctx, model.LogQueryOptions{RequestID: "req-9", Limit: 5})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "found", entries[0].Message)
	assert.Equal(t, "admin", entries[0].Actor)
	repo.AssertExpectations(t)
}

func TestLoggingService_CountLogs(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockLogsRepositoryInterface)
	svc := NewLoggingService(repo)

	repo.On("Count", ctx, repository.LogQueryOptions{Level: "error"}).Return(int64(3), nil)

	count, err := svc.CountLogs(ctx, model.LogQueryOptions{Level: "error"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	repo.AssertExpectations(t)
}
