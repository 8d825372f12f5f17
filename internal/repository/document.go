package repository

import (
	"context"

	"buildsafe/internal/model"
)

// DocumentRepository defines persistence for buyer document records.
// File content is handled by the storage package; these are pipeline rows only.
type DocumentRepository interface {
	// Create inserts a new document record.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// ListByBuyerProject returns a buyer's documents for one project,
	// newest first.
	ListByBuyerProject(ctx context.Context, buyerID, projectID string, pq PageQuery) (*PageResult[model.Document], error)

	// UpdateStatus persists a document's pipeline state and stage timestamps.
	UpdateStatus(ctx context.Context, doc *model.Document) (*model.Document, error)

	// RollupByProject recomputes the per-category status counts for a project
	// from the document rows themselves.
	RollupByProject(ctx context.Context, projectID string) ([]model.DocumentRollup, error)
}
