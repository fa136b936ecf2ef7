package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chasecee/cut-calc/internal/mocks"
	"github.com/chasecee/cut-calc/internal/repository"
)

func TestStockProfilesService_NilRepository(t *testing.T) {
	ctx := context.Background()
	svc := NewStockProfilesService(nil)

	_, err := svc.GetActive(ctx)
	assert.ErrorIs(t, err, ErrRepositoryNotConfigured)

	_, err = svc.Create(ctx, repository.StockProfileFields{}, "admin")
	assert.ErrorIs(t, err, ErrRepositoryNotConfigured)

	_, err = svc.Update(ctx, primitive.NewObjectID(), repository.StockProfileFields{}, "admin")
	assert.ErrorIs(t, err, ErrRepositoryNotConfigured)

	_, err = svc.List(ctx, 10)
	assert.ErrorIs(t, err, ErrRepositoryNotConfigured)

	_, err = svc.Activate(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrRepositoryNotConfigured)
}

func TestStockProfilesService_GetActive(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockStockProfilesRepositoryInterface)
	svc := NewStockProfilesService(repo)

	want := &repository.StockProfileConfig{
		Name:        "steel-2m",
		StockLength: 2000,
		LengthUnit:  "mm",
		KerfWidth:   3.2,
		KerfUnit:    "mm",
		MaxBars:     10,
		Active:      true,
	}
	repo.On("GetActive", ctx).Return(want, nil)

	got, err := svc.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	repo.AssertExpectations(t)
}

func TestStockProfilesService_Create(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockStockProfilesRepositoryInterface)
	svc := NewStockProfilesService(repo)

	fields := repository.StockProfileFields{
		Name:        "lumber-8ft",
		StockLength: 8,
		LengthUnit:  "ft",
		KerfWidth:   0.125,
		KerfUnit:    "in",
		MaxBars:     15,
	}
	created := &repository.StockProfileConfig{Name: "lumber-8ft", Active: true, Version: 1}
	repo.On("Create", ctx, fields, "admin").Return(created, nil)

	got, err := svc.Create(ctx, fields, "admin")
	require.NoError(t, err)
	assert.Equal(t, created, got)
	repo.AssertExpectations(t)
}

func TestStockProfilesService_Update(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockStockProfilesRepositoryInterface)
	svc := NewStockProfilesService(repo)

	id := primitive.NewObjectID()
	fields := repository.StockProfileFields{Name: "steel-2m", StockLength: 2500, LengthUnit: "mm", KerfUnit: "mm", MaxBars: 12}
	updated := &repository.StockProfileConfig{ID: id, Name: "steel-2m", StockLength: 2500, Version: 2}
	repo.On("Update", ctx, id, fields, "admin").Return(updated, nil)

	got, err := svc.Update(ctx, id, fields, "admin")
	require.NoError(t, err)
	assert.Equal(t, 2500.0, got.StockLength)
	assert.Equal(t, 2, got.Version)
	repo.AssertExpectations(t)
}

func TestStockProfilesService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockStockProfilesRepositoryInterface)
	svc := NewStockProfilesService(repo)

	configs := []repository.StockProfileConfig{
		{Name: "newest"},
		{Name: "older"},
	}
	repo.On("List", ctx, 10).Return(configs, nil)

	got, err := svc.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	repo.AssertExpectations(t)
}

func TestStockProfilesService_Activate(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockStockProfilesRepositoryInterface)
	svc := NewStockProfilesService(repo)

	id := primitive.NewObjectID()
	activated := &repository.StockProfileConfig{ID: id, Active: true}
	repo.On("Activate", ctx, id).Return(activated, nil)

	got, err := svc.Activate(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.Active)
	repo.AssertExpectations(t)
}
