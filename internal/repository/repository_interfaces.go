// Package repository provides interfaces for repository operations.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StockProfilesRepositoryInterface defines the interface for stock profile repository operations.
type StockProfilesRepositoryInterface interface {
	GetActive(ctx context.Context) (*StockProfileConfig, error)
	Create(ctx context.Context, fields StockProfileFields, createdBy string) (*StockProfileConfig, error)
	Update(ctx context.Context, id primitive.ObjectID, fields StockProfileFields, updatedBy string) (*StockProfileConfig, error)
	List(ctx context.Context, limit int) ([]StockProfileConfig, error)
	Activate(ctx context.Context, id primitive.ObjectID) (*StockProfileConfig, error)
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}
