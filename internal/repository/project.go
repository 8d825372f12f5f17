package repository

import (
	"context"

	"buildsafe/internal/model"
)

// ProjectRepository defines persistence for projects and their milestones.
// No business logic here — the milestone state machine lives in the service
// layer; this is strictly storage.
type ProjectRepository interface {
	// CreateProject inserts the project row and all of its milestone rows.
	CreateProject(ctx context.Context, p *model.Project) (*model.Project, error)

	// FindProjectByID returns a project with its milestones ordered by ordinal.
	FindProjectByID(ctx context.Context, id string) (*model.Project, error)

	// ListProjects returns a page of projects without their milestone lists.
	ListProjects(ctx context.Context, pq PageQuery) (*PageResult[model.Project], error)

	// FindMilestoneByID returns a single milestone.
	FindMilestoneByID(ctx context.Context, id string) (*model.Milestone, error)

	// ListMilestonesByProject returns all milestones of a project ordered by ordinal.
	ListMilestonesByProject(ctx context.Context, projectID string) ([]model.Milestone, error)

	// UpdateMilestone persists a milestone's state and transition metadata.
	UpdateMilestone(ctx context.Context, m *model.Milestone) (*model.Milestone, error)

	// DeleteProject removes a project and its milestones.
	DeleteProject(ctx context.Context, id string) error
}
