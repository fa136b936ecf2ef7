package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chasecee/cut-calc/internal/domain/model"
	"github.com/chasecee/cut-calc/internal/repository"
)

// LoggingService persists request and audit log entries and serves the
// log query endpoints. Mockable with mockery.
type LoggingService interface {
	CreateLog(ctx context.Context, entry *model.LogEntry) error
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

type loggingService struct {
	repo repository.LogsRepositoryInterface
}

// NewLoggingService returns a LoggingService backed by repo.
func NewLoggingService(repo repository.LogsRepositoryInterface) LoggingService {
	return &loggingService{repo: repo}
}

func (s *loggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	return s.repo.Create(ctx, logDocument(entry))
}

func (s *loggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]*repository.LogEntryDocument, len(entries))
	for i, entry := range entries {
		docs[i] = logDocument(entry)
	}
	return s.repo.CreateMany(ctx, docs)
}

func (s *loggingService) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	docs, err := s.repo.Query(ctx, repoQueryOptions(opts))
	if err != nil {
		return nil, err
	}
	entries := make([]model.LogEntry, len(docs))
	for i, doc := range docs {
		entries[i] = logModel(doc)
	}
	return entries, nil
}

func (s *loggingService) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return s.repo.Count(ctx, repoQueryOptions(opts))
}

func repoQueryOptions(opts model.LogQueryOptions) repository.LogQueryOptions {
	return repository.LogQueryOptions{
		RequestID:  opts.RequestID,
		Level:      opts.Level,
		Method:     opts.Method,
		Path:       opts.Path,
		ActionType: opts.ActionType,
		StartTime:  opts.StartTime,
		EndTime:    opts.EndTime,
		Limit:      opts.Limit,
		Skip:       opts.Skip,
	}
}

// logDocument maps a domain entry to its storage document, stamping the
// ID and timestamp when the caller left them unset.
func logDocument(entry *model.LogEntry) *repository.LogEntryDocument {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	return &repository.LogEntryDocument{
		ID:         entry.ID,
		Timestamp:  entry.Timestamp,
		Level:      entry.Level,
		Message:    entry.Message,
		RequestID:  entry.RequestID,
		Method:     entry.Method,
		Path:       entry.Path,
		StatusCode: entry.StatusCode,
		Duration:   entry.Duration,
		IP:         entry.IP,
		UserAgent:  entry.UserAgent,
		Error:      entry.Error,
		Actor:      entry.Actor,
		ActionType: entry.ActionType,
		Fields:     entry.Fields,
	}
}

func logModel(doc *repository.LogEntryDocument) model.LogEntry {
	return model.LogEntry{
		ID:         doc.ID,
		Timestamp:  doc.Timestamp,
		Level:      doc.Level,
		Message:    doc.Message,
		RequestID:  doc.RequestID,
		Method:     doc.Method,
		Path:       doc.Path,
		StatusCode: doc.StatusCode,
		Duration:   doc.Duration,
		IP:         doc.IP,
		UserAgent:  doc.UserAgent,
		Error:      doc.Error,
		Actor:      doc.Actor,
		ActionType: doc.ActionType,
		Fields:     doc.Fields,
	}
}
