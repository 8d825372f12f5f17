package handler

import (
	"github.com/gofiber/fiber/v2"

	"buildsafe/internal/model"
	"buildsafe/internal/service"
)

// ComputeProgress calculates a buyer's application progress percentage from
// the submitted profile. Nothing is persisted; the same input always yields
// the same output.
func ComputeProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var profile model.BuyerApplicationProfile
		if err := c.BodyParser(&profile); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"progress": service.ComputeApplicationProgress(profile),
		})
	}
}
