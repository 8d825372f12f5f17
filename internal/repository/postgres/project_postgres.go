package postgres

import (
	"context"
	"database/sql"

	"buildsafe/internal/model"
	"buildsafe/internal/repository"
)

// ProjectPostgres is a PostgreSQL implementation of repository.ProjectRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ProjectPostgres struct {
	db *sql.DB
}

// NewProjectPostgres creates a new ProjectPostgres repository.
func NewProjectPostgres(db *sql.DB) *ProjectPostgres {
	return &ProjectPostgres{db: db}
}

var _ repository.ProjectRepository = (*ProjectPostgres)(nil)

const milestoneColumns = `
	id, project_id, name, description, ordinal, target_percentage,
	payment_centavos, state, completed_at, completion_notes,
	verified_at, verified_by, quality_score, created_at
`

func scanMilestone(row interface{ Scan(...any) error }) (*model.Milestone, error) {
	var m model.Milestone
	var description, completionNotes, verifiedBy sql.NullString
	var completedAt, verifiedAt sql.NullTime
	var qualityScore sql.NullInt64
	if err := row.Scan(
		&m.ID,
		&m.ProjectID,
		&m.Name,
		&description,
		&m.Ordinal,
		&m.TargetPercentage,
		&m.PaymentCentavos,
		&m.State,
		&completedAt,
		&completionNotes,
		&verifiedAt,
		&verifiedBy,
		&qualityScore,
		&m.CreatedAt,
	); err != nil {
		return nil, err
	}
	m.Description = description.String
	m.CompletionNotes = completionNotes.String
	m.VerifiedBy = verifiedBy.String
	if completedAt.Valid {
		t := completedAt.Time
		m.CompletedAt = &t
	}
	if verifiedAt.Valid {
		t := verifiedAt.Time
		m.VerifiedAt = &t
	}
	if qualityScore.Valid {
		s := int(qualityScore.Int64)
		m.QualityScore = &s
	}
	return &m, nil
}

// CreateProject inserts the project row and all milestone rows in one transaction.
func (r *ProjectPostgres) CreateProject(ctx context.Context, p *model.Project) (*model.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const qProject = `
		INSERT INTO projects (id, developer_id, name, description, total_investment_centavos, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.ExecContext(ctx, qProject,
		p.ID,
		p.DeveloperID,
		p.Name,
		p.Description,
		p.TotalInvestmentCentavos,
		p.CreatedAt,
	); err != nil {
		return nil, err
	}

	const qMilestone = `
		INSERT INTO milestones (id, project_id, name, description, ordinal, target_percentage, payment_centavos, state, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for i := range p.Milestones {
		m := &p.Milestones[i]
		if _, err := tx.ExecContext(ctx, qMilestone,
			m.ID,
			m.ProjectID,
			m.Name,
			m.Description,
			m.Ordinal,
			m.TargetPercentage,
			m.PaymentCentavos,
			m.State,
			m.CreatedAt,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

// FindProjectByID fetches a project together with its ordered milestones.
func (r *ProjectPostgres) FindProjectByID(ctx context.Context, id string) (*model.Project, error) {
	const q = `
		SELECT id, developer_id, name, description, total_investment_centavos, created_at
		FROM projects
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var p model.Project
	var description sql.NullString
	if err := row.Scan(
		&p.ID,
		&p.DeveloperID,
		&p.Name,
		&description,
		&p.TotalInvestmentCentavos,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.Description = description.String

	ms, err := r.ListMilestonesByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Milestones = ms
	return &p, nil
}

// ListProjects returns projects using LIMIT/OFFSET pagination and a total count.
func (r *ProjectPostgres) ListProjects(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Project], error) {
	const qCount = `SELECT COUNT(*) FROM projects`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, developer_id, name, description, total_investment_centavos, created_at
		FROM projects
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Project, 0)
	for rows.Next() {
		var p model.Project
		var description sql.NullString
		if err := rows.Scan(
			&p.ID,
			&p.DeveloperID,
			&p.Name,
			&description,
			&p.TotalInvestmentCentavos,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		p.Description = description.String
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Project]{Items: items, Total: total}, nil
}

// FindMilestoneByID fetches a single milestone.
func (r *ProjectPostgres) FindMilestoneByID(ctx context.Context, id string) (*model.Milestone, error) {
	const q = `SELECT ` + milestoneColumns + ` FROM milestones WHERE id = $1`
	return scanMilestone(r.db.QueryRowContext(ctx, q, id))
}

// ListMilestonesByProject returns a project's milestones ordered by ordinal.
func (r *ProjectPostgres) ListMilestonesByProject(ctx context.Context, projectID string) ([]model.Milestone, error) {
	const q = `SELECT ` + milestoneColumns + ` FROM milestones WHERE project_id = $1 ORDER BY ordinal ASC`
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Milestone, 0)
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateMilestone persists state and transition metadata for a milestone.
// Payment amount, ordinal and target percentage are fixed at creation and
// deliberately not part of the statement.
func (r *ProjectPostgres) UpdateMilestone(ctx context.Context, m *model.Milestone) (*model.Milestone, error) {
	const q = `
		UPDATE milestones
		SET state = $2,
		    completed_at = $3,
		    completion_notes = $4,
		    verified_at = $5,
		    verified_by = $6,
		    quality_score = $7
		WHERE id = $1
		RETURNING ` + milestoneColumns
	var qualityScore sql.NullInt64
	if m.QualityScore != nil {
		qualityScore = sql.NullInt64{Int64: int64(*m.QualityScore), Valid: true}
	}
	row := r.db.QueryRowContext(ctx, q,
		m.ID,
		m.State,
		m.CompletedAt,
		m.CompletionNotes,
		m.VerifiedAt,
		nullString(m.VerifiedBy),
		qualityScore,
	)
	return scanMilestone(row)
}

// DeleteProject removes a project and cascades to its milestones.
func (r *ProjectPostgres) DeleteProject(ctx context.Context, id string) error {
	const q = `DELETE FROM projects WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
