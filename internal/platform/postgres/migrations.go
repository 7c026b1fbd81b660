package postgres

import "embed"

// MigrationsFS carries the goose SQL migrations so the server binary can
// run them without a checkout of the source tree.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS

// MigrationsDir is the path of the migrations inside MigrationsFS.
const MigrationsDir = "migrations"
