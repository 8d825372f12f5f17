package repository

import (
	"context"

	"buildsafe/internal/model"
)

// DiscrepancyRepository defines persistence for the discrepancy register.
// There is deliberately no Delete: the register is an audit trail.
type DiscrepancyRepository interface {
	// Create inserts a new discrepancy record.
	Create(ctx context.Context, d *model.Discrepancy) (*model.Discrepancy, error)

	// FindByID returns a discrepancy by its ID.
	FindByID(ctx context.Context, id string) (*model.Discrepancy, error)

	// ListByProject returns all discrepancies for a project, newest first.
	ListByProject(ctx context.Context, projectID string) ([]model.Discrepancy, error)

	// ListOpenHoldsByMilestone returns unresolved discrepancies that reference
	// the milestone and require an escrow hold. Queried at verification time.
	ListOpenHoldsByMilestone(ctx context.Context, milestoneID string) ([]model.Discrepancy, error)

	// Update persists status, hold flag and resolution metadata.
	Update(ctx context.Context, d *model.Discrepancy) (*model.Discrepancy, error)
}
