package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"buildsafe/internal/repository"
	"buildsafe/internal/service"
)

// Services bundles the dependencies the route table needs.
type Services struct {
	Projects      service.ProjectService
	Milestones    service.MilestoneService
	Documents     service.DocumentService
	Discrepancies service.DiscrepancyService
	Notifications repository.NotificationRepository
}

// RegisterRoutes mounts all HTTP endpoints on the app.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	app.Get("/healthz", LivenessProbe())
	app.Get("/readyz", HealthCheck(db))

	v1 := app.Group("/api/v1")

	projects := v1.Group("/projects")
	projects.Post("/", CreateProject(svcs.Projects))
	projects.Get("/", ListProjects(svcs.Projects))
	projects.Get("/:id", GetProject(svcs.Projects))
	projects.Delete("/:id", DeleteProject(svcs.Projects))
	projects.Get("/:id/escrow", GetEscrowAccount(svcs.Projects))
	projects.Get("/:id/documents", ListBuyerDocuments(svcs.Documents))
	projects.Get("/:id/documents/rollup", DocumentRollup(svcs.Documents))
	projects.Get("/:id/discrepancies", ListDiscrepancies(svcs.Discrepancies))
	projects.Get("/:id/notifications", ListNotifications(svcs.Notifications))

	milestones := v1.Group("/milestones")
	milestones.Post("/:id/complete", CompleteMilestone(svcs.Milestones))
	milestones.Post("/:id/verify", VerifyMilestone(svcs.Milestones))

	documents := v1.Group("/documents")
	documents.Post("/", UploadDocument(svcs.Documents))
	documents.Get("/:id", GetDocument(svcs.Documents))
	documents.Post("/:id/advance", AdvanceDocument(svcs.Documents))
	documents.Get("/:id/download", DownloadDocument(svcs.Documents))

	discrepancies := v1.Group("/discrepancies")
	discrepancies.Post("/", RaiseDiscrepancy(svcs.Discrepancies))
	discrepancies.Post("/:id/start", StartDiscrepancy(svcs.Discrepancies))
	discrepancies.Post("/:id/resolve", ResolveDiscrepancy(svcs.Discrepancies))
	discrepancies.Put("/:id/escrow-hold", SetEscrowHold(svcs.Discrepancies))

	v1.Post("/applications/progress", ComputeProgress())
}
