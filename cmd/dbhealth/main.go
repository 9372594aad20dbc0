package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/expensewise/bill-digitizer/internal/common"
	repo "github.com/expensewise/bill-digitizer/internal/repository"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	db, err := repo.Open(ctx, repo.Config{
		Path:        cfg.Database.Path,
		BusyTimeout: cfg.Database.BusyTimeout,
	}, logger)
	if err != nil {
		log.Fatalf("opening DB: %v", err)
	}
	defer repo.Close(db, logger)

	if err := repo.HealthCheck(ctx, db, 1*time.Second, logger); err != nil {
		log.Fatalf("DB health: FAIL (%v)", err)
	}
	log.Println("DB health: OK")

	records, err := repo.NewBillRecordRepository(db, logger).List(ctx, repo.ListFilter{})
	if err != nil {
		log.Fatalf("listing bill records: %v", err)
	}
	log.Printf("bill records count: %d", len(records))
}
