package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"buildsafe/internal/model"
	"buildsafe/internal/notify"
	"buildsafe/internal/repository"
)

// VerificationResult pairs the verified milestone with the escrow account
// derived in the same critical section.
type VerificationResult struct {
	Milestone *model.Milestone     `json:"milestone"`
	Escrow    *model.EscrowAccount `json:"escrow"`
}

// MilestoneService owns the milestone state machine:
// pending -> completed -> verified, verified terminal, no skipping.
type MilestoneService interface {
	// Complete marks construction work done. Payment is not released yet.
	Complete(ctx context.Context, milestoneID, notes string) (*model.Milestone, error)

	// Verify records independent confirmation and releases the milestone's
	// payment. Blocked with EscrowHeldError while any open discrepancy
	// referencing the milestone requires an escrow hold.
	Verify(ctx context.Context, milestoneID, verifier string, qualityScore *int) (*VerificationResult, error)
}

type milestoneService struct {
	projects      repository.ProjectRepository
	discrepancies repository.DiscrepancyRepository
	emitter       notify.Emitter
	locks         *projectLocks
}

// NewMilestoneService constructs a MilestoneService. The lock table must be
// the same instance the project and discrepancy services use.
func NewMilestoneService(
	projects repository.ProjectRepository,
	discrepancies repository.DiscrepancyRepository,
	emitter notify.Emitter,
	locks *projectLocks,
) MilestoneService {
	return &milestoneService{
		projects:      projects,
		discrepancies: discrepancies,
		emitter:       emitter,
		locks:         locks,
	}
}

func (s *milestoneService) Complete(ctx context.Context, milestoneID, notes string) (*model.Milestone, error) {
	if milestoneID == "" {
		return nil, ErrIDRequired
	}

	// First read is only to learn the project; the authoritative read
	// happens again under the project lock.
	probe, err := s.findMilestone(ctx, milestoneID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(probe.ProjectID)
	defer unlock()

	m, err := s.findMilestone(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	if m.State != model.MilestonePending {
		return nil, &InvalidTransitionError{MilestoneID: m.ID, From: m.State, To: model.MilestoneCompleted}
	}

	now := time.Now().UTC()
	m.State = model.MilestoneCompleted
	m.CompletedAt = &now
	m.CompletionNotes = notes

	stored, err := s.projects.UpdateMilestone(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("update milestone: %w", err)
	}

	if err := s.emitter.Emit(ctx, &model.Notification{
		ID:        uuid.New().String(),
		Type:      model.NotifyMilestoneCompleted,
		ProjectID: stored.ProjectID,
		EntityID:  stored.ID,
		Message:   fmt.Sprintf("milestone %q reported complete, awaiting verification", stored.Name),
		CreatedAt: now,
	}); err != nil {
		return nil, fmt.Errorf("emit milestone.completed: %w", err)
	}
	return stored, nil
}

func (s *milestoneService) Verify(ctx context.Context, milestoneID, verifier string, qualityScore *int) (*VerificationResult, error) {
	if milestoneID == "" {
		return nil, ErrIDRequired
	}
	if verifier == "" {
		return nil, fmt.Errorf("%w: verifier identity is required", ErrValidation)
	}

	probe, err := s.findMilestone(ctx, milestoneID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(probe.ProjectID)
	defer unlock()

	m, err := s.findMilestone(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	if m.State != model.MilestoneCompleted {
		return nil, &InvalidTransitionError{MilestoneID: m.ID, From: m.State, To: model.MilestoneVerified}
	}

	// Hold check happens here, inside the lock, so a concurrent hold toggle
	// cannot slip past a verification already in flight.
	holds, err := s.discrepancies.ListOpenHoldsByMilestone(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("list escrow holds: %w", err)
	}
	if len(holds) > 0 {
		ids := make([]string, len(holds))
		for i, d := range holds {
			ids[i] = d.ID
		}
		return nil, &EscrowHeldError{MilestoneID: m.ID, DiscrepancyIDs: ids}
	}

	project, err := s.projects.FindProjectByID(ctx, m.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}

	now := time.Now().UTC()
	m.State = model.MilestoneVerified
	m.VerifiedAt = &now
	m.VerifiedBy = verifier
	m.QualityScore = qualityScore

	// Derive the prospective escrow account before persisting anything. If
	// the ledger does not balance, the transition is aborted and the
	// milestone stays completed.
	prospective := make([]model.Milestone, len(project.Milestones))
	copy(prospective, project.Milestones)
	for i := range prospective {
		if prospective[i].ID == m.ID {
			prospective[i] = *m
		}
	}
	acct, err := deriveEscrow(project.ID, project.TotalInvestmentCentavos, prospective)
	if err != nil {
		return nil, err
	}

	stored, err := s.projects.UpdateMilestone(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("update milestone: %w", err)
	}

	if err := s.emitter.Emit(ctx, &model.Notification{
		ID:        uuid.New().String(),
		Type:      model.NotifyMilestoneVerified,
		ProjectID: stored.ProjectID,
		EntityID:  stored.ID,
		Message: fmt.Sprintf("milestone %q verified by %s; %d centavos released from escrow",
			stored.Name, verifier, stored.PaymentCentavos),
		CreatedAt: now,
	}); err != nil {
		return nil, fmt.Errorf("emit milestone.verified: %w", err)
	}

	return &VerificationResult{Milestone: stored, Escrow: acct}, nil
}

func (s *milestoneService) findMilestone(ctx context.Context, id string) (*model.Milestone, error) {
	m, err := s.projects.FindMilestoneByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMilestoneNotFound
		}
		return nil, err
	}
	return m, nil
}
