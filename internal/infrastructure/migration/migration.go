package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	for _, m := range Migrations() {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// Migration represents an idempotent schema change.
type Migration struct {
	Name string
	SQL  string
}

// Migrations lists the schema steps in application order.
func Migrations() []Migration {
	return []Migration{
		{
			Name: "create_resumes",
			SQL: `
				CREATE TABLE IF NOT EXISTS resumes (
					id UUID PRIMARY KEY,
					user_id TEXT NOT NULL,
					title TEXT NOT NULL DEFAULT '',
					template TEXT NOT NULL DEFAULT 'modern',
					section_order JSONB NOT NULL DEFAULT '[]'::jsonb,
					document JSONB NOT NULL DEFAULT '{}'::jsonb,
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				);
			`,
		},
		{
			Name: "add_resumes_user_index",
			SQL:  `CREATE INDEX IF NOT EXISTS resumes_user_updated_idx ON resumes (user_id, updated_at DESC);`,
		},
	}
}
