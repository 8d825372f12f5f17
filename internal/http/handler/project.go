package handler

import (
	"github.com/gofiber/fiber/v2"

	"buildsafe/internal/service"
)

// CreateProject defines a project with its milestone ledger.
func CreateProject(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ProjectCreateInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		p, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// GetProject returns a project with its milestones.
func GetProject(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(p)
	}
}

// ListProjects returns a paginated project list.
func ListProjects(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 10)
		offset := c.QueryInt("offset", 0)

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(res)
	}
}

// DeleteProject removes a project. Projects with released payments require
// ?confirmed=true.
func DeleteProject(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		confirmed := c.QueryBool("confirmed", false)
		if err := svc.Delete(c.UserContext(), c.Params("id"), confirmed); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetEscrowAccount returns the escrow account derived from the milestone
// ledger.
func GetEscrowAccount(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		acct, err := svc.GetEscrowAccount(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(acct)
	}
}
