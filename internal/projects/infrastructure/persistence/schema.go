package persistence

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database"
)

// Dates are stored as RFC3339 TEXT and booleans as INTEGER 0/1 so the same
// schema works on SQLite and PostgreSQL.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		calculation_type TEXT NOT NULL,
		manual_color TEXT,
		manual_percentage INTEGER,
		start_date TEXT,
		end_date TEXT,
		dates_overridden INTEGER NOT NULL DEFAULT 0,
		health_color TEXT,
		health_percentage INTEGER,
		health_reasoning TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_user_id ON projects (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_user_status ON projects (user_id, status)`,
	`CREATE TABLE IF NOT EXISTS milestones (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects (id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date TEXT,
		end_date TEXT,
		completion INTEGER NOT NULL DEFAULT 0,
		weight INTEGER NOT NULL DEFAULT 3,
		status TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_milestones_project_id ON milestones (project_id)`,
}

// Migrate creates the project tables if they do not exist yet.
func Migrate(ctx context.Context, conn database.Connection) error {
	for _, stmt := range schemaStatements {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
