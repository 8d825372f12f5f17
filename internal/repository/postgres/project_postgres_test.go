package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"buildsafe/internal/model"
	"buildsafe/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var milestoneColumnNames = []string{
	"id", "project_id", "name", "description", "ordinal", "target_percentage",
	"payment_centavos", "state", "completed_at", "completion_notes",
	"verified_at", "verified_by", "quality_score", "created_at",
}

func milestoneRow(rows *sqlmock.Rows, id string, ordinal int, payment int64, state model.MilestoneState, created time.Time) *sqlmock.Rows {
	return rows.AddRow(id, "p-1", "Milestone", nil, ordinal, ordinal*10, payment, state, nil, nil, nil, nil, nil, created)
}

func TestProjectPostgres_CreateProject(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProjectPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	p := &model.Project{
		ID:                      "p-1",
		DeveloperID:             "dev-1",
		Name:                    "Vista Heights Tower A",
		TotalInvestmentCentavos: 1250000,
		CreatedAt:               now,
		Milestones: []model.Milestone{
			{ID: "m-1", ProjectID: "p-1", Name: "Foundation", Ordinal: 1, TargetPercentage: 15, PaymentCentavos: 500000, State: model.MilestonePending, CreatedAt: now},
			{ID: "m-2", ProjectID: "p-1", Name: "Structure", Ordinal: 2, TargetPercentage: 25, PaymentCentavos: 750000, State: model.MilestonePending, CreatedAt: now},
		},
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO projects").
			WithArgs(p.ID, p.DeveloperID, p.Name, p.Description, p.TotalInvestmentCentavos, p.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO milestones").
			WithArgs("m-1", "p-1", "Foundation", "", 1, 15, int64(500000), model.MilestonePending, now).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO milestones").
			WithArgs("m-2", "p-1", "Structure", "", 2, 25, int64(750000), model.MilestonePending, now).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		result, err := repo.CreateProject(ctx, p)

		assert.NoError(t, err)
		assert.Equal(t, p.ID, result.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("milestone insert failure rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO projects").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO milestones").
			WillReturnError(errors.New("unique violation"))
		mock.ExpectRollback()

		_, err := repo.CreateProject(ctx, p)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProjectPostgres_FindProjectByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProjectPostgres(db)
	ctx := context.Background()

	t.Run("found with ordered milestones", func(t *testing.T) {
		now := time.Now().UTC()
		projectRows := sqlmock.NewRows([]string{"id", "developer_id", "name", "description", "total_investment_centavos", "created_at"}).
			AddRow("p-1", "dev-1", "Vista Heights Tower A", nil, int64(1250000), now)
		mock.ExpectQuery("SELECT (.+) FROM projects WHERE id = ?").
			WithArgs("p-1").
			WillReturnRows(projectRows)

		rows := sqlmock.NewRows(milestoneColumnNames)
		milestoneRow(rows, "m-1", 1, 500000, model.MilestonePending, now)
		milestoneRow(rows, "m-2", 2, 750000, model.MilestonePending, now)
		mock.ExpectQuery("SELECT (.+) FROM milestones WHERE project_id = ?").
			WithArgs("p-1").
			WillReturnRows(rows)

		p, err := repo.FindProjectByID(ctx, "p-1")

		assert.NoError(t, err)
		assert.Len(t, p.Milestones, 2)
		assert.Equal(t, "m-1", p.Milestones[0].ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM projects WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		p, err := repo.FindProjectByID(ctx, "missing")

		assert.Nil(t, p)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestProjectPostgres_UpdateMilestone(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProjectPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	m := &model.Milestone{
		ID:              "m-1",
		ProjectID:       "p-1",
		State:           model.MilestoneCompleted,
		CompletedAt:     &now,
		CompletionNotes: "poured",
	}

	rows := sqlmock.NewRows(milestoneColumnNames).
		AddRow("m-1", "p-1", "Foundation", nil, 1, 15, int64(500000), model.MilestoneCompleted, now, "poured", nil, nil, nil, now)

	mock.ExpectQuery("UPDATE milestones").
		WithArgs("m-1", model.MilestoneCompleted, sqlmock.AnyArg(), "poured", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(rows)

	result, err := repo.UpdateMilestone(ctx, m)

	assert.NoError(t, err)
	assert.Equal(t, model.MilestoneCompleted, result.State)
	assert.NotNil(t, result.CompletedAt)
	assert.Equal(t, "poured", result.CompletionNotes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectPostgres_ListProjects(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProjectPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM projects").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{"id", "developer_id", "name", "description", "total_investment_centavos", "created_at"}).
		AddRow("p-1", "dev-1", "Vista Heights Tower A", nil, int64(1250000), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM projects ORDER BY").
		WithArgs(10, 0).
		WillReturnRows(rows)

	res, err := repo.ListProjects(ctx, repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
}

func TestProjectPostgres_DeleteProject(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewProjectPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM projects WHERE id = ?").
		WithArgs("p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.DeleteProject(ctx, "p-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
