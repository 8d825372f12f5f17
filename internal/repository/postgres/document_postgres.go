package postgres

import (
	"context"
	"database/sql"

	"buildsafe/internal/model"
	"buildsafe/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `
	id, buyer_id, project_id, category, status, filename, storage_path,
	size, content_type, uploaded_at, processing_at, delivered_at, created_at
`

func scanDocument(row interface{ Scan(...any) error }) (*model.Document, error) {
	var d model.Document
	var uploadedAt, processingAt, deliveredAt sql.NullTime
	if err := row.Scan(
		&d.ID,
		&d.BuyerID,
		&d.ProjectID,
		&d.Category,
		&d.Status,
		&d.Filename,
		&d.StoragePath,
		&d.Size,
		&d.ContentType,
		&uploadedAt,
		&processingAt,
		&deliveredAt,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	if uploadedAt.Valid {
		t := uploadedAt.Time
		d.UploadedAt = &t
	}
	if processingAt.Valid {
		t := processingAt.Time
		d.ProcessingAt = &t
	}
	if deliveredAt.Valid {
		t := deliveredAt.Time
		d.DeliveredAt = &t
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, buyer_id, project_id, category, status, filename, storage_path, size, content_type, uploaded_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.BuyerID,
		doc.ProjectID,
		doc.Category,
		doc.Status,
		doc.Filename,
		doc.StoragePath,
		doc.Size,
		doc.ContentType,
		doc.UploadedAt,
		doc.CreatedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// ListByBuyerProject returns a buyer's documents for one project using
// LIMIT/OFFSET pagination and a total count.
func (r *DocumentPostgres) ListByBuyerProject(ctx context.Context, buyerID, projectID string, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	const qCount = `SELECT COUNT(*) FROM documents WHERE buyer_id = $1 AND project_id = $2`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, buyerID, projectID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE buyer_id = $1 AND project_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.QueryContext(ctx, qList, buyerID, projectID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{Items: items, Total: total}, nil
}

// UpdateStatus persists pipeline state and stage timestamps.
func (r *DocumentPostgres) UpdateStatus(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		UPDATE documents
		SET status = $2,
		    uploaded_at = $3,
		    processing_at = $4,
		    delivered_at = $5
		WHERE id = $1
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Status,
		doc.UploadedAt,
		doc.ProcessingAt,
		doc.DeliveredAt,
	)
	return scanDocument(row)
}

// RollupByProject recomputes per-category status counts from the rows
// themselves. Counts are derived on every call; there are no stored counters
// to drift.
func (r *DocumentPostgres) RollupByProject(ctx context.Context, projectID string) ([]model.DocumentRollup, error) {
	const q = `
		SELECT category,
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'submitted'),
		       COUNT(*) FILTER (WHERE status = 'processing'),
		       COUNT(*) FILTER (WHERE status = 'delivered')
		FROM documents
		WHERE project_id = $1
		GROUP BY category
		ORDER BY category
	`
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentRollup, 0)
	for rows.Next() {
		var ru model.DocumentRollup
		if err := rows.Scan(&ru.Category, &ru.Pending, &ru.Submitted, &ru.Processing, &ru.Delivered); err != nil {
			return nil, err
		}
		items = append(items, ru)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
