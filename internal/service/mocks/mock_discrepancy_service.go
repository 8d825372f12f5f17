package mocks

import (
	"context"

	"buildsafe/internal/model"
	"buildsafe/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockDiscrepancyService struct {
	mock.Mock
}

func (m *MockDiscrepancyService) Raise(ctx context.Context, in service.DiscrepancyRaiseInput) (*model.Discrepancy, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Discrepancy), args.Error(1)
}

func (m *MockDiscrepancyService) Start(ctx context.Context, id string) (*model.Discrepancy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Discrepancy), args.Error(1)
}

func (m *MockDiscrepancyService) Resolve(ctx context.Context, id, explanation string) (*model.Discrepancy, error) {
	args := m.Called(ctx, id, explanation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Discrepancy), args.Error(1)
}

func (m *MockDiscrepancyService) SetEscrowHold(ctx context.Context, id string, hold bool) (*model.Discrepancy, error) {
	args := m.Called(ctx, id, hold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Discrepancy), args.Error(1)
}

func (m *MockDiscrepancyService) ListByProject(ctx context.Context, projectID string) ([]model.Discrepancy, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Discrepancy), args.Error(1)
}
