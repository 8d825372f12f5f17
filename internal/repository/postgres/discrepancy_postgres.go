package postgres

import (
	"context"
	"database/sql"

	"buildsafe/internal/model"
	"buildsafe/internal/repository"
)

// DiscrepancyPostgres is a PostgreSQL implementation of repository.DiscrepancyRepository.
// There is no delete statement here on purpose: the register is append-and-update only.
type DiscrepancyPostgres struct {
	db *sql.DB
}

// NewDiscrepancyPostgres creates a new DiscrepancyPostgres repository.
func NewDiscrepancyPostgres(db *sql.DB) *DiscrepancyPostgres {
	return &DiscrepancyPostgres{db: db}
}

var _ repository.DiscrepancyRepository = (*DiscrepancyPostgres)(nil)

const discrepancyColumns = `
	id, project_id, milestone_id, category, priority, status, description,
	requires_escrow_hold, reported_by, resolution, resolved_at, created_at, updated_at
`

func scanDiscrepancy(row interface{ Scan(...any) error }) (*model.Discrepancy, error) {
	var d model.Discrepancy
	var milestoneID, description, resolution sql.NullString
	var resolvedAt sql.NullTime
	if err := row.Scan(
		&d.ID,
		&d.ProjectID,
		&milestoneID,
		&d.Category,
		&d.Priority,
		&d.Status,
		&description,
		&d.RequiresEscrowHold,
		&d.ReportedBy,
		&resolution,
		&resolvedAt,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	d.MilestoneID = milestoneID.String
	d.Description = description.String
	d.Resolution = resolution.String
	if resolvedAt.Valid {
		t := resolvedAt.Time
		d.ResolvedAt = &t
	}
	return &d, nil
}

// Create inserts a new discrepancy row and returns the stored record.
func (r *DiscrepancyPostgres) Create(ctx context.Context, d *model.Discrepancy) (*model.Discrepancy, error) {
	const q = `
		INSERT INTO discrepancies (id, project_id, milestone_id, category, priority, status, description, requires_escrow_hold, reported_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + discrepancyColumns
	row := r.db.QueryRowContext(ctx, q,
		d.ID,
		d.ProjectID,
		nullString(d.MilestoneID),
		d.Category,
		d.Priority,
		d.Status,
		d.Description,
		d.RequiresEscrowHold,
		d.ReportedBy,
		d.CreatedAt,
		d.UpdatedAt,
	)
	return scanDiscrepancy(row)
}

// FindByID fetches a single discrepancy by its ID.
func (r *DiscrepancyPostgres) FindByID(ctx context.Context, id string) (*model.Discrepancy, error) {
	const q = `SELECT ` + discrepancyColumns + ` FROM discrepancies WHERE id = $1`
	return scanDiscrepancy(r.db.QueryRowContext(ctx, q, id))
}

// ListByProject returns a project's discrepancies, newest first.
func (r *DiscrepancyPostgres) ListByProject(ctx context.Context, projectID string) ([]model.Discrepancy, error) {
	const q = `
		SELECT ` + discrepancyColumns + `
		FROM discrepancies
		WHERE project_id = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.queryMany(ctx, q, projectID)
}

// ListOpenHoldsByMilestone returns unresolved hold-requiring discrepancies
// referencing the milestone.
func (r *DiscrepancyPostgres) ListOpenHoldsByMilestone(ctx context.Context, milestoneID string) ([]model.Discrepancy, error) {
	const q = `
		SELECT ` + discrepancyColumns + `
		FROM discrepancies
		WHERE milestone_id = $1
		  AND status <> 'resolved'
		  AND requires_escrow_hold
		ORDER BY created_at ASC
	`
	return r.queryMany(ctx, q, milestoneID)
}

// Update persists status, hold flag and resolution metadata.
func (r *DiscrepancyPostgres) Update(ctx context.Context, d *model.Discrepancy) (*model.Discrepancy, error) {
	const q = `
		UPDATE discrepancies
		SET status = $2,
		    requires_escrow_hold = $3,
		    resolution = $4,
		    resolved_at = $5,
		    updated_at = $6
		WHERE id = $1
		RETURNING ` + discrepancyColumns
	row := r.db.QueryRowContext(ctx, q,
		d.ID,
		d.Status,
		d.RequiresEscrowHold,
		d.Resolution,
		d.ResolvedAt,
		d.UpdatedAt,
	)
	return scanDiscrepancy(row)
}

func (r *DiscrepancyPostgres) queryMany(ctx context.Context, q string, arg any) ([]model.Discrepancy, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Discrepancy, 0)
	for rows.Next() {
		d, err := scanDiscrepancy(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
