package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chasecee/cut-calc/internal/circuitbreaker"
)

// guarded runs op through the breaker and returns its result.
func guarded[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, op func() (T, error)) (T, error) {
	var result T
	err := cb.Execute(ctx, func() error {
		var opErr error
		result, opErr = op()
		return opErr
	})
	return result, err
}

// StockProfilesRepositoryWithCircuitBreaker guards every stock profile
// operation behind a circuit breaker so a struggling MongoDB cannot
// stall the request path.
type StockProfilesRepositoryWithCircuitBreaker struct {
	repo *StockProfilesRepository
	cb   *circuitbreaker.CircuitBreaker
}

func NewStockProfilesRepositoryWithCircuitBreaker(repo *StockProfilesRepository, cb *circuitbreaker.CircuitBreaker) *StockProfilesRepositoryWithCircuitBreaker {
	return &StockProfilesRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

// GetActive reports no active profile while the breaker is open, which
// makes calculations fall back to request-supplied stock parameters.
func (r *StockProfilesRepositoryWithCircuitBreaker) GetActive(ctx context.Context) (*StockProfileConfig, error) {
	profile, err := guarded(ctx, r.cb, func() (*StockProfileConfig, error) {
		return r.repo.GetActive(ctx)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil, nil
	}
	return profile, err
}

func (r *StockProfilesRepositoryWithCircuitBreaker) Create(ctx context.Context, fields StockProfileFields, createdBy string) (*StockProfileConfig, error) {
	return guarded(ctx, r.cb, func() (*StockProfileConfig, error) {
		return r.repo.Create(ctx, fields, createdBy)
	})
}

func (r *StockProfilesRepositoryWithCircuitBreaker) Update(ctx context.Context, id primitive.ObjectID, fields StockProfileFields, updatedBy string) (*StockProfileConfig, error) {
	return guarded(ctx, r.cb, func() (*StockProfileConfig, error) {
		return r.repo.Update(ctx, id, fields, updatedBy)
	})
}

func (r *StockProfilesRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]StockProfileConfig, error) {
	return guarded(ctx, r.cb, func() ([]StockProfileConfig, error) {
		return r.repo.List(ctx, limit)
	})
}

func (r *StockProfilesRepositoryWithCircuitBreaker) Activate(ctx context.Context, id primitive.ObjectID) (*StockProfileConfig, error) {
	return guarded(ctx, r.cb, func() (*StockProfileConfig, error) {
		return r.repo.Activate(ctx, id)
	})
}

// GetCircuitBreaker exposes the breaker for health reporting.
func (r *StockProfilesRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}

// LogsRepositoryWithCircuitBreaker guards log persistence. Writes are
// dropped without error while the breaker is open since losing request
// logs must never fail the request itself; reads surface the open state
// to the caller.
type LogsRepositoryWithCircuitBreaker struct {
	repo *LogsRepository
	cb   *circuitbreaker.CircuitBreaker
}

func NewLogsRepositoryWithCircuitBreaker(repo *LogsRepository, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	return r.dropIfOpen(r.cb.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	}))
}

func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	return r.dropIfOpen(r.cb.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	}))
}

func (r *LogsRepositoryWithCircuitBreaker) dropIfOpen(err error) error {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	return guarded(ctx, r.cb, func() ([]*LogEntryDocument, error) {
		return r.repo.Query(ctx, opts)
	})
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return guarded(ctx, r.cb, func() (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker exposes the breaker for health reporting.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}
