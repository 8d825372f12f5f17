package handler

import (
	"github.com/gofiber/fiber/v2"

	"buildsafe/internal/http/middleware"
	"buildsafe/internal/model"
	"buildsafe/internal/service"
)

type raiseDiscrepancyRequest struct {
	ProjectID          string                    `json:"project_id"`
	MilestoneID        string                    `json:"milestone_id,omitempty"`
	Category           string                    `json:"category"`
	Priority           model.DiscrepancyPriority `json:"priority"`
	RequiresEscrowHold bool                      `json:"requires_escrow_hold"`
	Description        string                    `json:"description"`
}

type resolveDiscrepancyRequest struct {
	Explanation string `json:"explanation"`
}

type escrowHoldRequest struct {
	Hold bool `json:"hold"`
}

// RaiseDiscrepancy records a new issue against a project. The reporting actor
// comes from the X-Actor-ID header.
func RaiseDiscrepancy(svc service.DiscrepancyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reporter := middleware.ActorFromCtx(c)
		if reporter == "" {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "X-Actor-ID header is required")
		}

		var req raiseDiscrepancyRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		d, err := svc.Raise(c.UserContext(), service.DiscrepancyRaiseInput{
			ProjectID:          req.ProjectID,
			MilestoneID:        req.MilestoneID,
			Category:           req.Category,
			Priority:           req.Priority,
			RequiresEscrowHold: req.RequiresEscrowHold,
			Description:        req.Description,
			ReportedBy:         reporter,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(d)
	}
}

// StartDiscrepancy moves a pending discrepancy to in-progress.
func StartDiscrepancy(svc service.DiscrepancyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := svc.Start(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(d)
	}
}

// ResolveDiscrepancy closes a discrepancy with an explanation. Any escrow hold
// it carried stops blocking verification; verification itself still needs its
// own call.
func ResolveDiscrepancy(svc service.DiscrepancyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req resolveDiscrepancyRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		d, err := svc.Resolve(c.UserContext(), c.Params("id"), req.Explanation)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(d)
	}
}

// SetEscrowHold toggles a discrepancy's escrow hold flag.
func SetEscrowHold(svc service.DiscrepancyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req escrowHoldRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		d, err := svc.SetEscrowHold(c.UserContext(), c.Params("id"), req.Hold)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(d)
	}
}

// ListDiscrepancies returns a project's discrepancies, newest first.
func ListDiscrepancies(svc service.DiscrepancyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListByProject(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": items})
	}
}
