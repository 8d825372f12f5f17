package repository

import (
	"context"

	"buildsafe/internal/model"
)

// NotificationRepository persists the append-only state-change event log.
// Events are only ever inserted and read, never updated or deleted.
type NotificationRepository interface {
	// Append inserts one event.
	Append(ctx context.Context, n *model.Notification) (*model.Notification, error)

	// ListByProject returns a project's events, newest first.
	ListByProject(ctx context.Context, projectID string, pq PageQuery) (*PageResult[model.Notification], error)
}
