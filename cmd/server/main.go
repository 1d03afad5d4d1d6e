// Package main implements the entry point for the gabinete API server, the
// REST backend used by parliamentary offices to manage their contacts,
// documents, amendments and publications.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/gabinete-digital/gabinete-api/internal/config"
	"github.com/gabinete-digital/gabinete-api/internal/platform/logger"
	"github.com/gabinete-digital/gabinete-api/internal/platform/postgres"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-migrate] [migrate]\n", os.Args[0])
		flag.PrintDefaults()
	}
	migrate := flag.Bool("migrate", false, "apply pending database migrations before serving")
	flag.Parse()

	migrateOnly := flag.Arg(0) == "migrate"

	if err := run(context.Background(), *migrate || migrateOnly, migrateOnly); err != nil {
		log.Fatalf("gabinete-api: %v", err)
	}
}

// run loads configuration, connects to the database and either applies the
// migrations or serves HTTP until interrupted.
func run(ctx context.Context, migrate, migrateOnly bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("development", cfg.Server.Development))

	db, err := setupAppDatabase(ctx, cfg, l)
	if err != nil {
		return err
	}

	if migrate {
		if err := postgres.Migrate(ctx, db, l); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}
	if migrateOnly {
		return db.Close()
	}

	app, err := newApplication(cfg, l, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
