package main

import (
	"context"
	"testing"

	"booklend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMigrationsDir(t *testing.T) {
	if got := migrationsDir(config.Config{MigrationsDir: "/custom/migrations"}); got != "/custom/migrations" {
		t.Fatalf("expected MIGRATIONS_DIR override, got %q", got)
	}
	if got := migrationsDir(config.Config{}); got != "db/migrations" {
		t.Fatalf("expected default migrations dir, got %q", got)
	}
}

func TestPostgresConfig(t *testing.T) {
	cfg := config.Config{StoreBackend: config.BackendSheets, DBDSN: "postgres://localhost/booklend"}

	pg := postgresConfig(cfg)
	assert.Equal(t, config.BackendPostgres, pg.StoreBackend)
	assert.Equal(t, cfg.DBDSN, pg.DBDSN)
	assert.Equal(t, config.BackendSheets, cfg.StoreBackend, "caller's config is left alone")
}

func TestRun_CommandErrors(t *testing.T) {
	ctx := context.Background()

	err := run(ctx, "sideways", "", config.Config{}, zap.NewNop())
	assert.EqualError(t, err, "unknown command: sideways. Use: up, down, status, create, headers")

	err = run(ctx, "create", "", config.Config{}, zap.NewNop())
	assert.EqualError(t, err, "name is required for 'create' command")
}

func TestRun_HeadersOnMemoryBackend(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	err := run(context.Background(), "headers", "", config.Config{StoreBackend: config.BackendMemory}, zap.New(core))
	require.NoError(t, err)

	entries := logs.FilterMessage("table headers ensured").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "memory", entries[0].ContextMap()["store"])
	assert.Len(t, entries[0].ContextMap()["written"], 4)
}
