package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"buildsafe/internal/model"
	"buildsafe/internal/notify"
	"buildsafe/internal/repository"
	"buildsafe/internal/storage"
)

// presignExpiry is how long a buyer's download link stays valid.
const presignExpiry = 15 * time.Minute

// DocumentUploadInput carries the metadata for a new document upload.
type DocumentUploadInput struct {
	BuyerID     string
	ProjectID   string
	Category    model.DocumentCategory
	Filename    string
	ContentType string
	Size        int64
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService owns the document delivery pipeline:
// pending -> submitted -> processing -> delivered, forward-only, one step at
// a time.
type DocumentService interface {
	// Upload streams the file to object storage, creates the pipeline record
	// in submitted state, and rolls back storage if the record write fails.
	Upload(ctx context.Context, r io.Reader, in DocumentUploadInput) (*model.Document, error)

	// Advance moves a document exactly one step forward. Regressions and
	// skipped stages fail with InvalidDocumentTransitionError.
	Advance(ctx context.Context, id string, next model.DocumentStatus) (*model.Document, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// ListByBuyer returns a buyer's documents for one project.
	ListByBuyer(ctx context.Context, buyerID, projectID string, limit, offset int) (*DocumentListResult, error)

	// Rollup recomputes the per-category status counts for a project from
	// the document rows.
	Rollup(ctx context.Context, projectID string) ([]model.DocumentRollup, error)

	// PresignDownload returns a time-limited URL for the document's file.
	PresignDownload(ctx context.Context, id string) (string, error)
}

type documentService struct {
	store   storage.Store
	repo    repository.DocumentRepository
	emitter notify.Emitter
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(store storage.Store, repo repository.DocumentRepository, emitter notify.Emitter) DocumentService {
	return &documentService{store: store, repo: repo, emitter: emitter}
}

// nextDocumentStatus is the single legal forward step from each state.
var nextDocumentStatus = map[model.DocumentStatus]model.DocumentStatus{
	model.DocumentPending:    model.DocumentSubmitted,
	model.DocumentSubmitted:  model.DocumentProcessing,
	model.DocumentProcessing: model.DocumentDelivered,
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, in DocumentUploadInput) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if in.BuyerID == "" || in.ProjectID == "" {
		return nil, fmt.Errorf("%w: buyer_id and project_id are required", ErrValidation)
	}
	if in.Category == "" {
		in.Category = model.CategoryOther
	}

	// Stored name is UUID + original extension; the original filename is
	// kept as object metadata only.
	ext := filepath.Ext(in.Filename)
	genName := uuid.New().String() + ext
	key := filepath.ToSlash(filepath.Join("documents", in.ProjectID, in.BuyerID, genName))

	objInfo, err := s.store.Upload(ctx, key, r, storage.UploadOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.Filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	now := time.Now().UTC()
	doc := &model.Document{
		ID:          uuid.New().String(),
		BuyerID:     in.BuyerID,
		ProjectID:   in.ProjectID,
		Category:    in.Category,
		Status:      model.DocumentSubmitted,
		Filename:    genName,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: objInfo.ContentType,
		UploadedAt:  &now,
		CreatedAt:   now,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Roll back the object so storage and records stay aligned.
		if delErr := s.store.Remove(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	if err := s.emitter.Emit(ctx, &model.Notification{
		ID:        uuid.New().String(),
		Type:      model.NotifyDocumentSubmitted,
		ProjectID: stored.ProjectID,
		EntityID:  stored.ID,
		Message:   fmt.Sprintf("%s document submitted for review", stored.Category),
		CreatedAt: now,
	}); err != nil {
		return nil, fmt.Errorf("emit document.submitted: %w", err)
	}
	return stored, nil
}

func (s *documentService) Advance(ctx context.Context, id string, next model.DocumentStatus) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if _, ok := nextDocumentStatus[next]; !ok && next != model.DocumentDelivered {
		return nil, fmt.Errorf("%w: unknown document status %q", ErrValidation, next)
	}

	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if nextDocumentStatus[doc.Status] != next {
		return nil, &InvalidDocumentTransitionError{DocumentID: doc.ID, From: doc.Status, To: next}
	}

	now := time.Now().UTC()
	doc.Status = next
	switch next {
	case model.DocumentSubmitted:
		doc.UploadedAt = &now
	case model.DocumentProcessing:
		doc.ProcessingAt = &now
	case model.DocumentDelivered:
		doc.DeliveredAt = &now
	}

	stored, err := s.repo.UpdateStatus(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}

	evType := model.NotifyDocumentAdvanced
	msg := fmt.Sprintf("%s document moved to %s", stored.Category, stored.Status)
	if next == model.DocumentDelivered {
		evType = model.NotifyDocumentDelivered
		msg = fmt.Sprintf("%s document delivered", stored.Category)
	}
	if err := s.emitter.Emit(ctx, &model.Notification{
		ID:        uuid.New().String(),
		Type:      evType,
		ProjectID: stored.ProjectID,
		EntityID:  stored.ID,
		Message:   msg,
		CreatedAt: now,
	}); err != nil {
		return nil, fmt.Errorf("emit %s: %w", evType, err)
	}
	return stored, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	return s.findDocument(ctx, id)
}

func (s *documentService) ListByBuyer(ctx context.Context, buyerID, projectID string, limit, offset int) (*DocumentListResult, error) {
	if buyerID == "" || projectID == "" {
		return nil, fmt.Errorf("%w: buyer_id and project_id are required", ErrValidation)
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.ListByBuyerProject(ctx, buyerID, projectID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) Rollup(ctx context.Context, projectID string) ([]model.DocumentRollup, error) {
	if projectID == "" {
		return nil, ErrIDRequired
	}
	return s.repo.RollupByProject(ctx, projectID)
}

func (s *documentService) PresignDownload(ctx context.Context, id string) (string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, doc.StoragePath, presignExpiry)
}

func (s *documentService) findDocument(ctx context.Context, id string) (*model.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}
