package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_projects",
		SQL: `CREATE TABLE IF NOT EXISTS projects (
  id                        UUID        PRIMARY KEY,
  developer_id              TEXT        NOT NULL,
  name                      TEXT        NOT NULL,
  description               TEXT,
  total_investment_centavos BIGINT      NOT NULL CHECK (total_investment_centavos > 0),
  created_at                TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_milestones",
		SQL: `CREATE TABLE IF NOT EXISTS milestones (
  id                UUID        PRIMARY KEY,
  project_id        UUID        NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
  name              TEXT        NOT NULL,
  description       TEXT,
  ordinal           INT         NOT NULL CHECK (ordinal >= 1),
  target_percentage INT         NOT NULL CHECK (target_percentage BETWEEN 1 AND 100),
  payment_centavos  BIGINT      NOT NULL CHECK (payment_centavos > 0),
  state             TEXT        NOT NULL CHECK (state IN ('pending', 'completed', 'verified')),
  completed_at      TIMESTAMPTZ,
  completion_notes  TEXT,
  verified_at       TIMESTAMPTZ,
  verified_by       TEXT,
  quality_score     INT,
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (project_id, ordinal)
);`,
	},
	{
		Name: "create_index_milestones_project",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_milestones_project ON milestones (project_id, ordinal);`,
	},
	{
		Name: "create_table_discrepancies",
		SQL: `CREATE TABLE IF NOT EXISTS discrepancies (
  id                   UUID        PRIMARY KEY,
  project_id           UUID        NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
  milestone_id         UUID        REFERENCES milestones (id),
  category             TEXT        NOT NULL,
  priority             TEXT        NOT NULL CHECK (priority IN ('critical', 'high', 'medium', 'low')),
  status               TEXT        NOT NULL CHECK (status IN ('pending', 'in-progress', 'resolved')),
  description          TEXT,
  requires_escrow_hold BOOLEAN     NOT NULL DEFAULT FALSE,
  reported_by          TEXT        NOT NULL,
  resolution           TEXT,
  resolved_at          TIMESTAMPTZ,
  created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_discrepancies_milestone_holds",
		SQL: `CREATE INDEX IF NOT EXISTS idx_discrepancies_milestone_holds
  ON discrepancies (milestone_id) WHERE status <> 'resolved' AND requires_escrow_hold;`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id            UUID        PRIMARY KEY,
  buyer_id      TEXT        NOT NULL,
  project_id    UUID        NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
  category      TEXT        NOT NULL,
  status        TEXT        NOT NULL CHECK (status IN ('pending', 'submitted', 'processing', 'delivered')),
  filename      TEXT        NOT NULL,
  storage_path  TEXT        NOT NULL UNIQUE,
  size          BIGINT      NOT NULL CHECK (size >= 0),
  content_type  TEXT        NOT NULL,
  uploaded_at   TIMESTAMPTZ,
  processing_at TIMESTAMPTZ,
  delivered_at  TIMESTAMPTZ,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_buyer_project",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_buyer_project ON documents (buyer_id, project_id);`,
	},
	{
		Name: "create_index_documents_project_category",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_project_category ON documents (project_id, category);`,
	},
	{
		Name: "create_table_notifications",
		SQL: `CREATE TABLE IF NOT EXISTS notifications (
  id         UUID        PRIMARY KEY,
  type       TEXT        NOT NULL,
  project_id UUID        NOT NULL,
  entity_id  UUID        NOT NULL,
  message    TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_notifications_project",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_notifications_project ON notifications (project_id, created_at DESC);`,
	},
}

// EnsureMigrated checks if the 'projects' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.projects') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
