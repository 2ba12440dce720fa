package main

// Run database migrations:
//   go run ./cmd/migrate [up|down|version]

import (
	"context"
	"fmt"
	"os"

	"cvscore-api/internal/shared/config"
	"cvscore-api/internal/shared/storage/db"
	"cvscore-api/internal/shared/telemetry"
)

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if err := run(context.Background(), cmd); err != nil {
		fmt.Fprintf(os.Stderr, "migrate %s: %v\n", cmd, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := telemetry.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer telemetry.SetLogger(logger)()
	defer telemetry.Sync()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer sqlDB.Close()

	switch cmd {
	case "up":
		return db.RunMigrations(ctx, sqlDB)
	case "down":
		return db.RollbackLast(ctx, sqlDB)
	case "version":
		v, err := db.MigrationVersion(ctx, sqlDB)
		if err != nil {
			return err
		}
		fmt.Println(v)
		return nil
	default:
		return fmt.Errorf("unknown command %q (want up, down or version)", cmd)
	}
}
