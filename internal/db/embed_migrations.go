package db

import "embed"

// MigrationFS holds the sales_reports schema applied by cmd/migrate.
//
//go:embed migrations/*.sql
var MigrationFS embed.FS
