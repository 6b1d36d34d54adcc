package main

import (
	"booklend/internal/config"
)

// postgresConfig points cfg at the Postgres row backend. Schema commands act
// on Postgres whatever STORE_BACKEND selects, and "up" initializes the table
// headers there once sheet_rows exists.
func postgresConfig(cfg config.Config) config.Config {
	cfg.StoreBackend = config.BackendPostgres
	return cfg
}

// migrationsDir returns the configured goose directory, or the repository
// default when cfg leaves it empty.
func migrationsDir(cfg config.Config) string {
	if cfg.MigrationsDir != "" {
		return cfg.MigrationsDir
	}
	return "db/migrations"
}
