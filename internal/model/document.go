package model

import "time"

// DocumentStatus is the closed set of pipeline states for a buyer-facing
// document. Transitions are forward-only, one step at a time:
// pending -> submitted -> processing -> delivered.
type DocumentStatus string

const (
	DocumentPending    DocumentStatus = "pending"
	DocumentSubmitted  DocumentStatus = "submitted"
	DocumentProcessing DocumentStatus = "processing"
	DocumentDelivered  DocumentStatus = "delivered"
)

// DocumentCategory tags a document with its legal/financial kind.
type DocumentCategory string

const (
	CategoryContract DocumentCategory = "contract"
	CategoryPermit   DocumentCategory = "permit"
	CategoryTitle    DocumentCategory = "title"
	CategoryReceipt  DocumentCategory = "receipt"
	CategoryOther    DocumentCategory = "other"
)

// Document is a buyer+project scoped file moving through the review pipeline.
// The file content lives in object storage under StoragePath; this record is
// the pipeline state plus metadata. The three stage timestamps are what the
// buyer-facing tracker displays.
type Document struct {
	ID        string           `json:"id"`
	BuyerID   string           `json:"buyer_id"`
	ProjectID string           `json:"project_id"`
	Category  DocumentCategory `json:"category"`
	Status    DocumentStatus   `json:"status"`

	Filename    string `json:"filename"`
	StoragePath string `json:"storage_path"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`

	UploadedAt   *time.Time `json:"uploaded_at,omitempty"`
	ProcessingAt *time.Time `json:"processing_at,omitempty"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// DocumentRollup is the per-category delivery summary for one project.
// It is always recomputed from the document rows, never kept as counters.
type DocumentRollup struct {
	Category   DocumentCategory `json:"category"`
	Pending    int              `json:"pending"`
	Submitted  int              `json:"submitted"`
	Processing int              `json:"processing"`
	Delivered  int              `json:"delivered"`
}
