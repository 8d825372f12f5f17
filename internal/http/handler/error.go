package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"buildsafe/internal/http/middleware"
	"buildsafe/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`

	// BlockingDiscrepancyIDs is set only for ESCROW_HELD responses so the
	// caller knows exactly what to resolve.
	BlockingDiscrepancyIDs []string `json:"blocking_discrepancy_ids,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps the service error taxonomy onto HTTP responses.
// State machine violations are conflicts the caller can correct; the ledger
// invariant is the one internal failure surfaced as a 500.
func writeServiceError(c *fiber.Ctx, err error) error {
	var (
		transitionErr  *service.InvalidTransitionError
		heldErr        *service.EscrowHeldError
		docErr         *service.InvalidDocumentTransitionError
		discrepancyErr *service.InvalidDiscrepancyTransitionError
	)

	switch {
	case errors.As(err, &heldErr):
		res := errorPayload{
			RequestID: requestIDFromCtx(c),
			Error: errorEnvelope{
				Code:                   "ESCROW_HELD",
				Message:                heldErr.Error(),
				BlockingDiscrepancyIDs: heldErr.DiscrepancyIDs,
			},
		}
		return c.Status(fiber.StatusConflict).JSON(res)
	case errors.As(err, &transitionErr):
		return writeError(c, fiber.StatusConflict, "INVALID_TRANSITION", transitionErr.Error())
	case errors.As(err, &docErr):
		return writeError(c, fiber.StatusConflict, "INVALID_DOCUMENT_TRANSITION", docErr.Error())
	case errors.As(err, &discrepancyErr):
		return writeError(c, fiber.StatusConflict, "INVALID_DISCREPANCY_TRANSITION", discrepancyErr.Error())
	case errors.Is(err, service.ErrValidation):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, service.ErrAlreadyResolved):
		return writeError(c, fiber.StatusConflict, "ALREADY_RESOLVED", "discrepancy already resolved")
	case errors.Is(err, service.ErrConfirmationRequired):
		return writeError(c, fiber.StatusConflict, "CONFIRMATION_REQUIRED", err.Error())
	case errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrMilestoneNotFound),
		errors.Is(err, service.ErrDocumentNotFound),
		errors.Is(err, service.ErrDiscrepancyNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrLedgerInvariant):
		return writeError(c, fiber.StatusInternalServerError, "LEDGER_INVARIANT", "escrow ledger invariant violated")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
