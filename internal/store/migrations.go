package store

import "embed"

// Migrations holds the schema migrations, applied with golang-migrate.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory of Migrations that contains the SQL files.
const MigrationsDir = "migrations"
