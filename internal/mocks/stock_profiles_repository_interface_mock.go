// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chasecee/cut-calc/internal/repository"
)

type MockStockProfilesRepositoryInterface struct {
	mock.Mock
}

func (m *MockStockProfilesRepositoryInterface) GetActive(ctx context.Context) (*repository.StockProfileConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.StockProfileConfig), args.Error(1)
}

func (m *MockStockProfilesRepositoryInterface) Create(ctx context.Context, fields repository.StockProfileFields, createdBy string) (*repository.StockProfileConfig, error) {
	args := m.Called(ctx, fields, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.StockProfileConfig), args.Error(1)
}

func (m *MockStockProfilesRepositoryInterface) Update(ctx context.Context, id primitive.ObjectID, fields repository.StockProfileFields, updatedBy string) (*repository.StockProfileConfig, error) {
	args := m.Called(ctx, id, fields, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.StockProfileConfig), args.Error(1)
}

func (m *MockStockProfilesRepositoryInterface) List(ctx context.Context, limit int) ([]repository.StockProfileConfig, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.StockProfileConfig), args.Error(1)
}

func (m *MockStockProfilesRepositoryInterface) Activate(ctx context.Context, id primitive.ObjectID) (*repository.StockProfileConfig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.StockProfileConfig), args.Error(1)
}
