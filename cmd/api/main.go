package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"buildsafe/docs"
	"buildsafe/internal/config"
	"buildsafe/internal/database"
	"buildsafe/internal/database/migration"
	handlers "buildsafe/internal/http/handler"
	"buildsafe/internal/http/middleware"
	"buildsafe/internal/notify"
	"buildsafe/internal/otel"
	"buildsafe/internal/repository/postgres"
	"buildsafe/internal/service"
	"buildsafe/internal/storage"
)

// @title BuildSafe API
// @version 1.0
// @BasePath /
func main() {
	loc := time.UTC
	ctx := context.Background()

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Initialize repositories
	projectRepo := postgres.NewProjectPostgres(db)
	documentRepo := postgres.NewDocumentPostgres(db)
	discrepancyRepo := postgres.NewDiscrepancyPostgres(db)
	notificationRepo := postgres.NewNotificationPostgres(db)

	// Every state change lands in the durable notification log; with a broker
	// configured it is additionally published to the buildsafe.events exchange.
	var emitter notify.Emitter = notify.NewStoreEmitter(notificationRepo)
	if cfg.AMQP.URL != "" {
		broker, err := notify.NewAMQPEmitter(cfg.AMQP.URL)
		if err != nil {
			log.Fatalf("failed to connect to event broker: %v", err)
		}
		defer broker.Close()
		emitter = notify.NewMultiEmitter(notify.NewStoreEmitter(notificationRepo), broker)
	}

	// Services share one lock table so milestone, escrow and discrepancy
	// mutations on the same project serialize.
	locks := service.NewProjectLocks()
	projectSvc := service.NewProjectService(projectRepo, emitter, locks)
	milestoneSvc := service.NewMilestoneService(projectRepo, discrepancyRepo, emitter, locks)
	documentSvc := service.NewDocumentService(objStore, documentRepo, emitter)
	discrepancySvc := service.NewDiscrepancyService(discrepancyRepo, projectRepo, emitter, locks)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(middleware.Actor())
	app.Use(otelfiber.Middleware())

	prom, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(prom.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, handlers.Services{
		Projects:      projectSvc,
		Milestones:    milestoneSvc,
		Documents:     documentSvc,
		Discrepancies: discrepancySvc,
		Notifications: notificationRepo,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
