package cli

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"trivia-game-service/internal/config"
	"trivia-game-service/internal/infra/memory"
	"trivia-game-service/internal/infra/postgres"
	pgmigrations "trivia-game-service/internal/infra/postgres/migrations"
)

// NewMigrateCmd applies database migrations and optionally seeds the question bank.
func NewMigrateCmd(configPath *string) *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			db, err := openBun(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := runMigrations(cmd.Context(), db); err != nil {
				return err
			}
			if !seed {
				return nil
			}
			questions := memory.SampleQuestions()
			if err := postgres.SeedQuestions(cmd.Context(), db, questions); err != nil {
				return err
			}
			slog.Info("questions seeded", "count", len(questions))
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "load the built-in question bank after migrating")
	return cmd
}

func openBun(cfg config.Config) (*bun.DB, error) {
	if cfg.Postgres.URL == "" {
		return nil, errors.New("postgres url not configured")
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

func runMigrations(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return err
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return err
	}
	if group.IsZero() {
		slog.Info("no new migrations")
		return nil
	}
	slog.Info("migrations applied", "group", group.String())
	return nil
}
