package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"wageengine/internal/cli"
	"wageengine/internal/db"
	"wageengine/internal/domain/wage"
	"wageengine/internal/platform/config"
	"wageengine/internal/platform/pgstore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("db connect failed: %w", err)
	}
	defer pool.Close()

	app := &cli.App{
		Engine: wage.NewEngine(logger),
		Store:  pgstore.NewStore(pool),
	}

	return cli.NewRootCmd(app).Execute()
}
