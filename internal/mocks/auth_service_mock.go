// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/chasecee/cut-calc/internal/domain/model"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, int64, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, tokenString string) (*model.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Claims), args.Error(1)
}
