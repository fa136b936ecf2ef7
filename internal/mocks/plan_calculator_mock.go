// Code generated manually. DO NOT EDIT.

package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/chasecee/cut-calc/internal/domain/model"
)

type MockPlanCalculator struct {
	mock.Mock
}

func (m *MockPlanCalculator) ComputePlan(stock model.StockSpec, kerf model.Kerf, requests []model.CutRequest) []model.CutPlan {
	args := m.Called(stock, kerf, requests)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.CutPlan)
}

func (m *MockPlanCalculator) Compute(input model.PlanInput) model.PlanResult {
	args := m.Called(input)
	return args.Get(0).(model.PlanResult)
}

func (m *MockPlanCalculator) InvalidateCache() {
	m.Called()
}
