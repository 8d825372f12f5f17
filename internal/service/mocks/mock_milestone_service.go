package mocks

import (
	"context"

	"buildsafe/internal/model"
	"buildsafe/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockMilestoneService struct {
	mock.Mock
}

func (m *MockMilestoneService) Complete(ctx context.Context, milestoneID, notes string) (*model.Milestone, error) {
	args := m.Called(ctx, milestoneID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Milestone), args.Error(1)
}

func (m *MockMilestoneService) Verify(ctx context.Context, milestoneID, verifier string, qualityScore *int) (*service.VerificationResult, error) {
	args := m.Called(ctx, milestoneID, verifier, qualityScore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.VerificationResult), args.Error(1)
}
