package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"SignalScanner/internal/app"
	"SignalScanner/internal/config"
	"SignalScanner/internal/logging"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("ping database", "error", err)
		os.Exit(1)
	}

	application := app.New(cfg, db, logger)

	results, err := application.Run(ctx)
	if err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}

	for _, res := range results {
		logger.Info("pass summary", "source", res.Source,
			"searched", res.CompaniesSearched, "found", res.SignalsFound,
			"new", res.SignalsNew, "duration_ms", res.DurationMs)
	}
}
