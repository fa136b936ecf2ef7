package service

import (
	"context"
	"errors"

	"github.com/chasecee/cut-calc/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrRepositoryNotConfigured is returned when the repository is not configured.
var ErrRepositoryNotConfigured = errors.New("repository not configured")

// StockProfilesService provides stock profile operations.
type StockProfilesService interface {
	GetActive(ctx context.Context) (*repository.StockProfileConfig, error)
	Create(ctx context.Context, fields repository.StockProfileFields, createdBy string) (*repository.StockProfileConfig, error)
	Update(ctx context.Context, id primitive.ObjectID, fields repository.StockProfileFields, updatedBy string) (*repository.StockProfileConfig, error)
	List(ctx context.Context, limit int) ([]repository.StockProfileConfig, error)
	Activate(ctx context.Context, id primitive.ObjectID) (*repository.StockProfileConfig, error)
}

// StockProfilesServiceImpl implements StockProfilesService.
type StockProfilesServiceImpl struct {
	stockProfilesRepo repository.StockProfilesRepositoryInterface
}

// NewStockProfilesService creates a new stock profiles service.
func NewStockProfilesService(stockProfilesRepo repository.StockProfilesRepositoryInterface) StockProfilesService {
	if stockProfilesRepo == nil {
		return &StockProfilesServiceImpl{}
	}
	return &StockProfilesServiceImpl{
		stockProfilesRepo: stockProfilesRepo,
	}
}

func (s *StockProfilesServiceImpl) GetActive(ctx context.Context) (*repository.StockProfileConfig, error) {
	if s.stockProfilesRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.stockProfilesRepo.GetActive(ctx)
}

func (s *StockProfilesServiceImpl) Create(ctx context.Context, fields repository.StockProfileFields, createdBy string) (*repository.StockProfileConfig, error) {
	if s.stockProfilesRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.stockProfilesRepo.Create(ctx, fields, createdBy)
}

func (s *StockProfilesServiceImpl) Update(ctx context.Context, id primitive.ObjectID, fields repository.StockProfileFields, updatedBy string) (*repository.StockProfileConfig, error) {
	if s.stockProfilesRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.stockProfilesRepo.Update(ctx, id, fields, updatedBy)
}

func (s *StockProfilesServiceImpl) List(ctx context.Context, limit int) ([]repository.StockProfileConfig, error) {
	if s.stockProfilesRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.stockProfilesRepo.List(ctx, limit)
}

func (s *StockProfilesServiceImpl) Activate(ctx context.Context, id primitive.ObjectID) (*repository.StockProfileConfig, error) {
	if s.stockProfilesRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.stockProfilesRepo.Activate(ctx, id)
}
