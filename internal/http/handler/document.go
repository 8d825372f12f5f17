package handler

import (
	"github.com/gofiber/fiber/v2"

	"buildsafe/internal/model"
	"buildsafe/internal/service"
)

type advanceDocumentRequest struct {
	Status model.DocumentStatus `json:"status"`
}

// UploadDocument accepts a multipart upload and registers the document in the
// delivery pipeline.
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "file is required")
		}

		f, err := fileHeader.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "unable to read file")
		}
		defer f.Close()

		in := service.DocumentUploadInput{
			BuyerID:     c.FormValue("buyer_id"),
			ProjectID:   c.FormValue("project_id"),
			Category:    model.DocumentCategory(c.FormValue("category")),
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
		}

		doc, err := svc.Upload(c.UserContext(), f, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// AdvanceDocument moves a document one step forward in the pipeline.
func AdvanceDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req advanceDocumentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		doc, err := svc.Advance(c.UserContext(), c.Params("id"), req.Status)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(doc)
	}
}

// GetDocument returns a document's pipeline record.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(doc)
	}
}

// ListBuyerDocuments returns a buyer's documents for one project.
func ListBuyerDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 10)
		offset := c.QueryInt("offset", 0)

		res, err := svc.ListByBuyer(c.UserContext(), c.Query("buyer_id"), c.Params("id"), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(res)
	}
}

// DocumentRollup returns per-category status counts for a project, recomputed
// from the document rows on every call.
func DocumentRollup(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rollup, err := svc.Rollup(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": rollup})
	}
}

// DownloadDocument returns a time-limited presigned URL for the stored file.
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		url, err := svc.PresignDownload(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"url": url})
	}
}
