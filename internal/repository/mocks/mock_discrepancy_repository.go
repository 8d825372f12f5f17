package mocks

import (
	"context"

	"buildsafe/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockDiscrepancyRepository struct {
	mock.Mock
}

func (m *MockDiscrepancyRepository) Create(ctx context.Context, d *model.Discrepancy) (*model.Discrepancy, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Discrepancy), args.Error(1)
}

func (m *MockDiscrepancyRepository) FindByID(ctx context.Context, id string) (*model.Discrepancy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Discrepancy), args.Error(1)
}

func (m *MockDiscrepancyRepository) ListByProject(ctx context.Context, projectID string) ([]model.Discrepancy, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Discrepancy), args.Error(1)
}

func (m *MockDiscrepancyRepository) ListOpenHoldsByMilestone(ctx context.Context, milestoneID string) ([]model.Discrepancy, error) {
	args := m.Called(ctx, milestoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Discrepancy), args.Error(1)
}

func (m *MockDiscrepancyRepository) Update(ctx context.Context, d *model.Discrepancy) (*model.Discrepancy, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Discrepancy), args.Error(1)
}
