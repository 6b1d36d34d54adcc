package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"booklend/internal/app"
	"booklend/internal/config"
	"booklend/internal/platform/logging"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create, headers")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	config.LoadEnvFiles()
	cfg := config.Load()

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(context.Background(), *command, *name, cfg, log); err != nil {
		log.Fatal("migrate failed", zap.String("command", *command), zap.Error(err))
	}
}

func run(ctx context.Context, command, name string, cfg config.Config, log *zap.Logger) error {
	switch command {
	case "headers":
		return writeHeaders(ctx, cfg, log)
	case "create":
		if name == "" {
			return fmt.Errorf("name is required for 'create' command")
		}
		if err := goose.Create(nil, migrationsDir(cfg), name, "sql"); err != nil {
			return fmt.Errorf("create migration: %w", err)
		}
		log.Info("migration created", zap.String("name", name))
		return nil
	case "up":
		if err := runGoose(ctx, command, cfg, log); err != nil {
			return err
		}
		return writeHeaders(ctx, postgresConfig(cfg), log)
	case "down", "status":
		return runGoose(ctx, command, cfg, log)
	}
	return fmt.Errorf("unknown command: %s. Use: up, down, status, create, headers", command)
}

func runGoose(ctx context.Context, command string, cfg config.Config, log *zap.Logger) error {
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	dir := migrationsDir(cfg)
	switch command {
	case "up":
		if err := goose.Up(db, dir); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		log.Info("migrations applied", zap.String("dir", dir))
	case "down":
		if err := goose.Down(db, dir); err != nil {
			return fmt.Errorf("rollback migrations: %w", err)
		}
		log.Info("migrations rolled back", zap.String("dir", dir))
	case "status":
		if err := goose.Status(db, dir); err != nil {
			return fmt.Errorf("check migration status: %w", err)
		}
	}
	return nil
}

// writeHeaders opens the configured store backend, which initializes the
// header row of every empty table, and reports what it wrote.
func writeHeaders(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	backend, err := app.OpenBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer backend.Close()

	log.Info("table headers ensured",
		zap.String("store", cfg.StoreBackend),
		zap.Strings("written", backend.Initialized),
	)
	return nil
}
