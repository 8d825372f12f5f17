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

// DiscrepancyRaiseInput carries the fields for reporting a new issue.
type DiscrepancyRaiseInput struct {
	ProjectID          string
	MilestoneID        string // optional, pins the issue to one milestone
	Category           string
	Priority           model.DiscrepancyPriority
	RequiresEscrowHold bool
	Description        string
	ReportedBy         string
}

// DiscrepancyService owns the discrepancy register. Records move
// pending -> in-progress -> resolved and are never deleted.
type DiscrepancyService interface {
	// Raise records a new issue. With RequiresEscrowHold set it immediately
	// blocks verification of the referenced milestone.
	Raise(ctx context.Context, in DiscrepancyRaiseInput) (*model.Discrepancy, error)

	// Start moves a pending discrepancy to in-progress.
	Start(ctx context.Context, id string) (*model.Discrepancy, error)

	// Resolve closes a discrepancy with an explanation. Resolution lifts the
	// escrow hold but never retroactively verifies anything; verification
	// still needs its own explicit call.
	Resolve(ctx context.Context, id, explanation string) (*model.Discrepancy, error)

	// SetEscrowHold toggles the hold flag at any status. It takes effect on
	// the next verification attempt.
	SetEscrowHold(ctx context.Context, id string, hold bool) (*model.Discrepancy, error)

	// ListByProject returns a project's discrepancies, newest first.
	ListByProject(ctx context.Context, projectID string) ([]model.Discrepancy, error)
}

type discrepancyService struct {
	repo     repository.DiscrepancyRepository
	projects repository.ProjectRepository
	emitter  notify.Emitter
	locks    *projectLocks
}

// NewDiscrepancyService constructs a DiscrepancyService sharing the
// per-project lock table with the milestone service, so hold toggles
// serialize against verification attempts.
func NewDiscrepancyService(
	repo repository.DiscrepancyRepository,
	projects repository.ProjectRepository,
	emitter notify.Emitter,
	locks *projectLocks,
) DiscrepancyService {
	return &discrepancyService{repo: repo, projects: projects, emitter: emitter, locks: locks}
}

var validPriorities = map[model.DiscrepancyPriority]bool{
	model.PriorityCritical: true,
	model.PriorityHigh:     true,
	model.PriorityMedium:   true,
	model.PriorityLow:      true,
}

func (s *discrepancyService) Raise(ctx context.Context, in DiscrepancyRaiseInput) (*model.Discrepancy, error) {
	if in.ProjectID == "" {
		return nil, ErrIDRequired
	}
	if !validPriorities[in.Priority] {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, in.Priority)
	}
	if in.ReportedBy == "" {
		return nil, fmt.Errorf("%w: reporting actor is required", ErrValidation)
	}

	if in.MilestoneID != "" {
		m, err := s.projects.FindMilestoneByID(ctx, in.MilestoneID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrMilestoneNotFound
			}
			return nil, err
		}
		if m.ProjectID != in.ProjectID {
			return nil, fmt.Errorf("%w: milestone %s does not belong to project %s", ErrValidation, in.MilestoneID, in.ProjectID)
		}
	}

	unlock := s.locks.Lock(in.ProjectID)
	defer unlock()

	now := time.Now().UTC()
	d := &model.Discrepancy{
		ID:                 uuid.New().String(),
		ProjectID:          in.ProjectID,
		MilestoneID:        in.MilestoneID,
		Category:           in.Category,
		Priority:           in.Priority,
		Status:             model.DiscrepancyPending,
		Description:        in.Description,
		RequiresEscrowHold: in.RequiresEscrowHold,
		ReportedBy:         in.ReportedBy,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	stored, err := s.repo.Create(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("create discrepancy: %w", err)
	}

	if err := s.emitter.Emit(ctx, &model.Notification{
		ID:        uuid.New().String(),
		Type:      model.NotifyDiscrepancyRaised,
		ProjectID: stored.ProjectID,
		EntityID:  stored.ID,
		Message:   fmt.Sprintf("%s discrepancy raised: %s", stored.Priority, stored.Category),
		CreatedAt: now,
	}); err != nil {
		return nil, fmt.Errorf("emit discrepancy.raised: %w", err)
	}
	return stored, nil
}

func (s *discrepancyService) Start(ctx context.Context, id string) (*model.Discrepancy, error) {
	return s.transition(ctx, id, model.DiscrepancyInProgress, "", model.NotifyDiscrepancyStarted)
}

func (s *discrepancyService) Resolve(ctx context.Context, id, explanation string) (*model.Discrepancy, error) {
	if explanation == "" {
		return nil, fmt.Errorf("%w: resolution explanation is required", ErrValidation)
	}
	return s.transition(ctx, id, model.DiscrepancyResolved, explanation, model.NotifyDiscrepancyResolved)
}

func (s *discrepancyService) transition(ctx context.Context, id string, next model.DiscrepancyStatus, explanation string, evType model.NotificationType) (*model.Discrepancy, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	probe, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(probe.ProjectID)
	defer unlock()

	d, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case d.Status == model.DiscrepancyResolved:
		return nil, ErrAlreadyResolved
	case next == model.DiscrepancyInProgress && d.Status != model.DiscrepancyPending:
		return nil, &InvalidDiscrepancyTransitionError{DiscrepancyID: d.ID, From: d.Status, To: next}
	}

	now := time.Now().UTC()
	d.Status = next
	d.UpdatedAt = now
	msg := fmt.Sprintf("discrepancy %s now %s", d.ID, next)
	if next == model.DiscrepancyResolved {
		d.Resolution = explanation
		d.ResolvedAt = &now
		msg = fmt.Sprintf("discrepancy resolved: %s", explanation)
	}

	stored, err := s.repo.Update(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("update discrepancy: %w", err)
	}

	if err := s.emitter.Emit(ctx, &model.Notification{
		ID:        uuid.New().String(),
		Type:      evType,
		ProjectID: stored.ProjectID,
		EntityID:  stored.ID,
		Message:   msg,
		CreatedAt: now,
	}); err != nil {
		return nil, fmt.Errorf("emit %s: %w", evType, err)
	}
	return stored, nil
}

func (s *discrepancyService) SetEscrowHold(ctx context.Context, id string, hold bool) (*model.Discrepancy, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	probe, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(probe.ProjectID)
	defer unlock()

	d, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	d.RequiresEscrowHold = hold
	d.UpdatedAt = now

	stored, err := s.repo.Update(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("update discrepancy: %w", err)
	}

	state := "lifted"
	if hold {
		state = "placed"
	}
	if err := s.emitter.Emit(ctx, &model.Notification{
		ID:        uuid.New().String(),
		Type:      model.NotifyEscrowHoldChanged,
		ProjectID: stored.ProjectID,
		EntityID:  stored.ID,
		Message:   fmt.Sprintf("escrow hold %s for discrepancy %s", state, stored.ID),
		CreatedAt: now,
	}); err != nil {
		return nil, fmt.Errorf("emit discrepancy.hold_changed: %w", err)
	}
	return stored, nil
}

func (s *discrepancyService) ListByProject(ctx context.Context, projectID string) ([]model.Discrepancy, error) {
	if projectID == "" {
		return nil, ErrIDRequired
	}
	return s.repo.ListByProject(ctx, projectID)
}

func (s *discrepancyService) find(ctx context.Context, id string) (*model.Discrepancy, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDiscrepancyNotFound
		}
		return nil, err
	}
	return d, nil
}
