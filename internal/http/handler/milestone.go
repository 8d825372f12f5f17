package handler

import (
	"github.com/gofiber/fiber/v2"

	"buildsafe/internal/http/middleware"
	"buildsafe/internal/service"
)

type completeMilestoneRequest struct {
	Notes string `json:"notes,omitempty"`
}

type verifyMilestoneRequest struct {
	QualityScore *int `json:"quality_score,omitempty"`
}

// CompleteMilestone marks construction work on a milestone as done. No payment
// moves until verification.
func CompleteMilestone(svc service.MilestoneService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req completeMilestoneRequest
		// An empty body is fine; notes are optional.
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
			}
		}

		m, err := svc.Complete(c.UserContext(), c.Params("id"), req.Notes)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(m)
	}
}

// VerifyMilestone records independent verification and releases the
// milestone's payment. The verifier identity comes from the X-Actor-ID header.
func VerifyMilestone(svc service.MilestoneService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		verifier := middleware.ActorFromCtx(c)
		if verifier == "" {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "X-Actor-ID header is required")
		}

		var req verifyMilestoneRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
			}
		}
		if req.QualityScore != nil && (*req.QualityScore < 1 || *req.QualityScore > 5) {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "quality_score must be within 1..5")
		}

		res, err := svc.Verify(c.UserContext(), c.Params("id"), verifier, req.QualityScore)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(res)
	}
}
