package migrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the schema for questions and high scores.
var Migrations = migrate.NewMigrations()
