package postgres

import (
	"context"
	"database/sql"

	"buildsafe/internal/model"
	"buildsafe/internal/repository"
)

// NotificationPostgres is a PostgreSQL implementation of repository.NotificationRepository.
// The table is append-only; there are no update or delete statements.
type NotificationPostgres struct {
	db *sql.DB
}

// NewNotificationPostgres creates a new NotificationPostgres repository.
func NewNotificationPostgres(db *sql.DB) *NotificationPostgres {
	return &NotificationPostgres{db: db}
}

var _ repository.NotificationRepository = (*NotificationPostgres)(nil)

// Append inserts one event row and returns the stored record.
func (r *NotificationPostgres) Append(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	const q = `
		INSERT INTO notifications (id, type, project_id, entity_id, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, type, project_id, entity_id, message, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		n.ID,
		n.Type,
		n.ProjectID,
		n.EntityID,
		n.Message,
		n.CreatedAt,
	)
	var out model.Notification
	if err := row.Scan(&out.ID, &out.Type, &out.ProjectID, &out.EntityID, &out.Message, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByProject returns a project's events, newest first, with a total count.
func (r *NotificationPostgres) ListByProject(ctx context.Context, projectID string, pq repository.PageQuery) (*repository.PageResult[model.Notification], error) {
	const qCount = `SELECT COUNT(*) FROM notifications WHERE project_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, projectID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, type, project_id, entity_id, message, created_at
		FROM notifications
		WHERE project_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, projectID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.ProjectID, &n.EntityID, &n.Message, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Notification]{Items: items, Total: total}, nil
}
