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

// MilestoneInput describes one milestone at project definition time.
type MilestoneInput struct {
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	TargetPercentage int    `json:"target_percentage"`
	PaymentCentavos  int64  `json:"payment_centavos"`
}

// ProjectCreateInput is the service-level DTO for defining a project.
type ProjectCreateInput struct {
	DeveloperID string           `json:"developer_id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Milestones  []MilestoneInput `json:"milestones"`
}

// ProjectListResult is the service-level DTO for paginated projects.
type ProjectListResult struct {
	Items []model.Project `json:"data"`
	Total int             `json:"total"`
}

// ProjectService defines the use cases for projects and their escrow view.
type ProjectService interface {
	// Create defines a project with its ordered milestones. The total
	// investment is the sum of the milestone payments; target percentages
	// must be non-decreasing across the list.
	Create(ctx context.Context, in ProjectCreateInput) (*model.Project, error)

	// Get returns a project with its milestones.
	Get(ctx context.Context, id string) (*model.Project, error)

	// List returns projects using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*ProjectListResult, error)

	// GetEscrowAccount derives the escrow account from the milestone ledger.
	GetEscrowAccount(ctx context.Context, projectID string) (*model.EscrowAccount, error)

	// Delete removes a project. Once any payment has been released the caller
	// must pass confirmed=true; there is no cascading financial side effect.
	Delete(ctx context.Context, id string, confirmed bool) error
}

type projectService struct {
	repo    repository.ProjectRepository
	emitter notify.Emitter
	locks   *projectLocks
}

// NewProjectService constructs a ProjectService sharing the per-project lock
// table with the milestone service.
func NewProjectService(repo repository.ProjectRepository, emitter notify.Emitter, locks *projectLocks) ProjectService {
	return &projectService{repo: repo, emitter: emitter, locks: locks}
}

func (s *projectService) Create(ctx context.Context, in ProjectCreateInput) (*model.Project, error) {
	if in.DeveloperID == "" {
		return nil, fmt.Errorf("%w: developer_id is required", ErrValidation)
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(in.Milestones) == 0 {
		return nil, ErrNoMilestones
	}

	now := time.Now().UTC()
	p := &model.Project{
		ID:          uuid.New().String(),
		DeveloperID: in.DeveloperID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
	}

	prevPct := 0
	for i, mi := range in.Milestones {
		if mi.Name == "" {
			return nil, fmt.Errorf("%w: milestone %d: name is required", ErrValidation, i+1)
		}
		if mi.PaymentCentavos <= 0 {
			return nil, fmt.Errorf("%w: milestone %d: payment must be positive", ErrValidation, i+1)
		}
		if mi.TargetPercentage < 1 || mi.TargetPercentage > 100 {
			return nil, fmt.Errorf("%w: milestone %d: target percentage must be within 1..100", ErrValidation, i+1)
		}
		if mi.TargetPercentage < prevPct {
			return nil, fmt.Errorf("%w: milestone %d: target percentage must be non-decreasing", ErrValidation, i+1)
		}
		prevPct = mi.TargetPercentage

		p.Milestones = append(p.Milestones, model.Milestone{
			ID:               uuid.New().String(),
			ProjectID:        p.ID,
			Name:             mi.Name,
			Description:      mi.Description,
			Ordinal:          i + 1,
			TargetPercentage: mi.TargetPercentage,
			PaymentCentavos:  mi.PaymentCentavos,
			State:            model.MilestonePending,
			CreatedAt:        now,
		})
		p.TotalInvestmentCentavos += mi.PaymentCentavos
	}

	stored, err := s.repo.CreateProject(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	if err := s.emitter.Emit(ctx, &model.Notification{
		ID:        uuid.New().String(),
		Type:      model.NotifyProjectCreated,
		ProjectID: stored.ID,
		EntityID:  stored.ID,
		Message:   fmt.Sprintf("project %q defined with %d milestones", stored.Name, len(stored.Milestones)),
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("emit project.created: %w", err)
	}
	return stored, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*model.Project, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	p, err := s.repo.FindProjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *projectService) List(ctx context.Context, limit, offset int) (*ProjectListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.ListProjects(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ProjectListResult{Items: res.Items, Total: res.Total}, nil
}

// GetEscrowAccount derives under the project lock so a concurrent
// verification can never surface a half-applied ledger.
func (s *projectService) GetEscrowAccount(ctx context.Context, projectID string) (*model.EscrowAccount, error) {
	if projectID == "" {
		return nil, ErrIDRequired
	}
	unlock := s.locks.Lock(projectID)
	defer unlock()

	p, err := s.repo.FindProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return deriveEscrow(p.ID, p.TotalInvestmentCentavos, p.Milestones)
}

func (s *projectService) Delete(ctx context.Context, id string, confirmed bool) error {
	if id == "" {
		return ErrIDRequired
	}
	unlock := s.locks.Lock(id)
	defer unlock()

	p, err := s.repo.FindProjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProjectNotFound
		}
		return err
	}

	acct, err := deriveEscrow(p.ID, p.TotalInvestmentCentavos, p.Milestones)
	if err != nil {
		return err
	}
	if acct.ReleasedCentavos > 0 && !confirmed {
		return ErrConfirmationRequired
	}

	return s.repo.DeleteProject(ctx, id)
}
