package main

// Run database migrations:
//   go run ./cmd/migrate
//   go run ./cmd/migrate status

import (
	"context"
	"log"
	"os"

	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/storage/db"
	"resume-screener/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	if err := telemetry.Init(cfg.LogJSON, cfg.LogLevel); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer telemetry.Sync()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	ctx := context.Background()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultCLIOptions()))
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	run := db.RunMigrations
	if len(os.Args) > 1 && os.Args[1] == "status" {
		run = db.MigrationStatus
	}
	if err := run(ctx, sqlDB); err != nil {
		log.Printf("migrate: %v", err)
		sqlDB.Close()
		os.Exit(1)
	}
}
