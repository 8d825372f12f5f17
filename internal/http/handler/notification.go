package handler

import (
	"github.com/gofiber/fiber/v2"

	"buildsafe/internal/repository"
)

// ListNotifications returns a project's state-change event log, newest first.
func ListNotifications(repo repository.NotificationRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 20)
		if limit <= 0 {
			limit = 20
		}
		offset := c.QueryInt("offset", 0)
		if offset < 0 {
			offset = 0
		}

		res, err := repo.ListByProject(c.UserContext(), c.Params("id"), repository.PageQuery{Limit: limit, Offset: offset})
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": res.Items, "total": res.Total})
	}
}
