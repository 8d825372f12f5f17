package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"buildsafe/internal/http/middleware"
	"buildsafe/internal/model"
	"buildsafe/internal/service"
	serviceMocks "buildsafe/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/readyz", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateProject(t *testing.T) {
	mockSvc := new(serviceMocks.MockProjectService)
	app := fiber.New()
	app.Post("/projects", CreateProject(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &model.Project{ID: uuid.New().String(), Name: "Vista Heights Tower A"}
		mockSvc.On("Create", mock.Anything, mock.Anything).Return(expected, nil).Once()

		payload := `{"developer_id":"dev-1","name":"Vista Heights Tower A","milestones":[{"name":"Foundation","target_percentage":15,"payment_centavos":500000}]}`
		req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.Project
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, expected.ID, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no milestones", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrNoMilestones).Once()

		payload := `{"developer_id":"dev-1","name":"Vista Heights Tower A","milestones":[]}`
		req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "VALIDATION_ERROR", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "BAD_REQUEST", res.Error.Code)
	})
}

func TestGetProject(t *testing.T) {
	mockSvc := new(serviceMocks.MockProjectService)
	app := fiber.New()
	app.Get("/projects/:id", GetProject(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(&model.Project{ID: id}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/projects/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(nil, service.ErrProjectNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/projects/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteProject(t *testing.T) {
	mockSvc := new(serviceMocks.MockProjectService)
	app := fiber.New()
	app.Delete("/projects/:id", DeleteProject(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id, false).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/projects/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("confirmation required", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id, false).Return(service.ErrConfirmationRequired).Once()

		req := httptest.NewRequest(http.MethodDelete, "/projects/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "CONFIRMATION_REQUIRED", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("confirmed", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id, true).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/projects/"+id+"?confirmed=true", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetEscrowAccount(t *testing.T) {
	mockSvc := new(serviceMocks.MockProjectService)
	app := fiber.New()
	app.Get("/projects/:id/escrow", GetEscrowAccount(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		acct := &model.EscrowAccount{
			ProjectID:        id,
			ReleasedCentavos: 500000,
			HeldCentavos:     750000,
		}
		mockSvc.On("GetEscrowAccount", mock.Anything, id).Return(acct, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/projects/"+id+"/escrow", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.EscrowAccount
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, int64(500000), result.ReleasedCentavos)
		assert.Equal(t, int64(750000), result.HeldCentavos)
		mockSvc.AssertExpectations(t)
	})

	t.Run("ledger invariant", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("GetEscrowAccount", mock.Anything, id).Return(nil, service.ErrLedgerInvariant).Once()

		req := httptest.NewRequest(http.MethodGet, "/projects/"+id+"/escrow", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "LEDGER_INVARIANT", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestCompleteMilestone(t *testing.T) {
	mockSvc := new(serviceMocks.MockMilestoneService)
	app := fiber.New()
	app.Post("/milestones/:id/complete", CompleteMilestone(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Complete", mock.Anything, id, "poured and cured").
			Return(&model.Milestone{ID: id, State: model.MilestoneCompleted}, nil).Once()

		payload := `{"notes":"poured and cured"}`
		req := httptest.NewRequest(http.MethodPost, "/milestones/"+id+"/complete", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.Milestone
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, model.MilestoneCompleted, result.State)
		mockSvc.AssertExpectations(t)
	})

	t.Run("already completed", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Complete", mock.Anything, id, "").
			Return(nil, &service.InvalidTransitionError{
				MilestoneID: id,
				From:        model.MilestoneCompleted,
				To:          model.MilestoneCompleted,
			}).Once()

		req := httptest.NewRequest(http.MethodPost, "/milestones/"+id+"/complete", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_TRANSITION", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestVerifyMilestone(t *testing.T) {
	mockSvc := new(serviceMocks.MockMilestoneService)
	app := fiber.New()
	app.Use(middleware.Actor())
	app.Post("/milestones/:id/verify", VerifyMilestone(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		res := &service.VerificationResult{
			Milestone: &model.Milestone{ID: id, State: model.MilestoneVerified},
			Escrow:    &model.EscrowAccount{ReleasedCentavos: 500000},
		}
		mockSvc.On("Verify", mock.Anything, id, "inspector-7", (*int)(nil)).Return(res, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/milestones/"+id+"/verify", nil)
		req.Header.Set(middleware.ActorHeader, "inspector-7")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.VerificationResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, model.MilestoneVerified, result.Milestone.State)
		assert.Equal(t, int64(500000), result.Escrow.ReleasedCentavos)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing actor", func(t *testing.T) {
		id := uuid.New().String()
		req := httptest.NewRequest(http.MethodPost, "/milestones/"+id+"/verify", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "VALIDATION_ERROR", res.Error.Code)
	})

	t.Run("escrow held", func(t *testing.T) {
		id := uuid.New().String()
		blocking := []string{uuid.New().String(), uuid.New().String()}
		mockSvc.On("Verify", mock.Anything, id, "inspector-7", (*int)(nil)).
			Return(nil, &service.EscrowHeldError{MilestoneID: id, DiscrepancyIDs: blocking}).Once()

		req := httptest.NewRequest(http.MethodPost, "/milestones/"+id+"/verify", nil)
		req.Header.Set(middleware.ActorHeader, "inspector-7")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "ESCROW_HELD", res.Error.Code)
		assert.Equal(t, blocking, res.Error.BlockingDiscrepancyIDs)
		mockSvc.AssertExpectations(t)
	})

	t.Run("quality score out of range", func(t *testing.T) {
		id := uuid.New().String()
		payload := `{"quality_score":9}`
		req := httptest.NewRequest(http.MethodPost, "/milestones/"+id+"/verify", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.ActorHeader, "inspector-7")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("not completed yet", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Verify", mock.Anything, id, "inspector-7", (*int)(nil)).
			Return(nil, &service.InvalidTransitionError{
				MilestoneID: id,
				From:        model.MilestonePending,
				To:          model.MilestoneVerified,
			}).Once()

		req := httptest.NewRequest(http.MethodPost, "/milestones/"+id+"/verify", nil)
		req.Header.Set(middleware.ActorHeader, "inspector-7")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_TRANSITION", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestUploadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/documents", UploadDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		writer.WriteField("buyer_id", "buyer-1")
		writer.WriteField("project_id", "proj-1")
		writer.WriteField("category", "contract")
		part, _ := writer.CreateFormFile("file", "contract.pdf")
		part.Write([]byte("%PDF-1.4"))
		writer.Close()

		expected := &model.Document{ID: uuid.New().String(), Status: model.DocumentSubmitted}
		mockSvc.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/documents", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, expected.ID, result.ID)
		assert.Equal(t, model.DocumentSubmitted, result.Status)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "BAD_REQUEST", res.Error.Code)
	})
}

func TestAdvanceDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/documents/:id/advance", AdvanceDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Advance", mock.Anything, id, model.DocumentProcessing).
			Return(&model.Document{ID: id, Status: model.DocumentProcessing}, nil).Once()

		payload := `{"status":"processing"}`
		req := httptest.NewRequest(http.MethodPost, "/documents/"+id+"/advance", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("skipped stage", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Advance", mock.Anything, id, model.DocumentDelivered).
			Return(nil, &service.InvalidDocumentTransitionError{
				DocumentID: id,
				From:       model.DocumentSubmitted,
				To:         model.DocumentDelivered,
			}).Once()

		payload := `{"status":"delivered"}`
		req := httptest.NewRequest(http.MethodPost, "/documents/"+id+"/advance", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_DOCUMENT_TRANSITION", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestDownloadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents/:id/download", DownloadDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("PresignDownload", mock.Anything, id).
			Return("https://storage.local/documents/x?sig=abc", nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id+"/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Contains(t, body["url"], "sig=abc")
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("PresignDownload", mock.Anything, id).Return("", service.ErrDocumentNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id+"/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDocumentRollup(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/projects/:id/documents/rollup", DocumentRollup(mockSvc))

	id := uuid.New().String()
	rollup := []model.DocumentRollup{
		{Category: model.CategoryContract, Submitted: 1, Processing: 1, Delivered: 1},
	}
	mockSvc.On("Rollup", mock.Anything, id).Return(rollup, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/projects/"+id+"/documents/rollup", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data []model.DocumentRollup `json:"data"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	require.Len(t, body.Data, 1)
	assert.Equal(t, 1, body.Data[0].Delivered)
	mockSvc.AssertExpectations(t)
}

func TestRaiseDiscrepancy(t *testing.T) {
	mockSvc := new(serviceMocks.MockDiscrepancyService)
	app := fiber.New()
	app.Use(middleware.Actor())
	app.Post("/discrepancies", RaiseDiscrepancy(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &model.Discrepancy{ID: uuid.New().String(), Status: model.DiscrepancyPending}
		mockSvc.On("Raise", mock.Anything, mock.MatchedBy(func(in service.DiscrepancyRaiseInput) bool {
			return in.ReportedBy == "inspector-7" && in.RequiresEscrowHold
		})).Return(expected, nil).Once()

		payload := `{"project_id":"proj-1","category":"structural","priority":"critical","requires_escrow_hold":true,"description":"hairline cracks"}`
		req := httptest.NewRequest(http.MethodPost, "/discrepancies", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.ActorHeader, "inspector-7")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing actor", func(t *testing.T) {
		payload := `{"project_id":"proj-1","priority":"high"}`
		req := httptest.NewRequest(http.MethodPost, "/discrepancies", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestResolveDiscrepancy(t *testing.T) {
	mockSvc := new(serviceMocks.MockDiscrepancyService)
	app := fiber.New()
	app.Post("/discrepancies/:id/resolve", ResolveDiscrepancy(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Resolve", mock.Anything, id, "rebar replaced and re-inspected").
			Return(&model.Discrepancy{ID: id, Status: model.DiscrepancyResolved}, nil).Once()

		payload := `{"explanation":"rebar replaced and re-inspected"}`
		req := httptest.NewRequest(http.MethodPost, "/discrepancies/"+id+"/resolve", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("already resolved", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Resolve", mock.Anything, id, "done").Return(nil, service.ErrAlreadyResolved).Once()

		payload := `{"explanation":"done"}`
		req := httptest.NewRequest(http.MethodPost, "/discrepancies/"+id+"/resolve", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "ALREADY_RESOLVED", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestSetEscrowHold(t *testing.T) {
	mockSvc := new(serviceMocks.MockDiscrepancyService)
	app := fiber.New()
	app.Put("/discrepancies/:id/escrow-hold", SetEscrowHold(mockSvc))

	id := uuid.New().String()
	mockSvc.On("SetEscrowHold", mock.Anything, id, true).
		Return(&model.Discrepancy{ID: id, RequiresEscrowHold: true}, nil).Once()

	payload := `{"hold":true}`
	req := httptest.NewRequest(http.MethodPut, "/discrepancies/"+id+"/escrow-hold", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result model.Discrepancy
	json.NewDecoder(resp.Body).Decode(&result)
	assert.True(t, result.RequiresEscrowHold)
	mockSvc.AssertExpectations(t)
}

func TestComputeProgress(t *testing.T) {
	app := fiber.New()
	app.Post("/applications/progress", ComputeProgress())

	cases := []struct {
		name     string
		payload  string
		expected int
	}{
		{
			name:     "empty profile",
			payload:  `{}`,
			expected: 0,
		},
		{
			name:     "married with marriage certificate only",
			payload:  `{"civil_status":"married","has_marriage_certificate":true}`,
			expected: 33,
		},
		{
			name:     "employed with tin only",
			payload:  `{"employment_type":"employed","tin_number":"123-456-789-000"}`,
			expected: 20,
		},
		{
			name:     "complete single employed",
			payload:  `{"civil_status":"single","employment_type":"employed","tin_number":"123-456-789-000","has_government_id":true,"has_birth_certificate":true,"has_employment_docs":true,"has_income_docs":true}`,
			expected: 100,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/applications/progress", strings.NewReader(tc.payload))
			req.Header.Set("Content-Type", "application/json")
			resp, _ := app.Test(req)

			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var body map[string]int
			json.NewDecoder(resp.Body).Decode(&body)
			assert.Equal(t, tc.expected, body["progress"])
		})
	}
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	RegisterRoutes(app, nil, Services{
		Projects:      new(serviceMocks.MockProjectService),
		Milestones:    new(serviceMocks.MockMilestoneService),
		Documents:     new(serviceMocks.MockDocumentService),
		Discrepancies: new(serviceMocks.MockDiscrepancyService),
	})

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/healthz", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})
}
