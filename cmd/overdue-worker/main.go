package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"carbon-trade/trading-portal/trading-portal-backend/internal/config"
	"carbon-trade/trading-portal/trading-portal-backend/internal/requests"
)

// OverdueWorker periodically scans the request store and reports PENDING
// requests that have crossed the overdue threshold. The flag itself is never
// persisted; this sweep feeds the ops alert surface only.
type OverdueWorker struct {
	store     requests.Store
	logger    *zap.Logger
	threshold time.Duration
}

func (w *OverdueWorker) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	records, err := w.store.List(ctx)
	if err != nil {
		w.logger.Error("Overdue sweep failed to list requests", zap.Error(err))
		return
	}

	now := time.Now()
	byCounterparty := make(map[string]int)
	total := 0
	for _, r := range records {
		if requests.IsOverdue(r, now, w.threshold) {
			byCounterparty[r.CounterpartyCompany]++
			total++
		}
	}

	if total == 0 {
		w.logger.Info("Overdue sweep complete, nothing overdue")
		return
	}

	for company, count := range byCounterparty {
		w.logger.Warn("Company has overdue pending requests",
			zap.String("counterparty", company),
			zap.Int("overdue_count", count))
	}
	w.logger.Info("Overdue sweep complete",
		zap.Int("overdue_total", total),
		zap.Int("scanned", len(records)))
}

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := sqlx.Connect("postgres", cfg.Database.GetDatabaseURL())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	worker := &OverdueWorker{
		store:     requests.NewPostgresStore(db, cfg.Database.QueryTimeout),
		logger:    logger,
		threshold: cfg.Trading.OverdueThreshold(),
	}

	schedule := os.Getenv("OVERDUE_SWEEP_SCHEDULE")
	if schedule == "" {
		schedule = "@hourly"
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, worker.sweep); err != nil {
		logger.Fatal("Invalid sweep schedule", zap.String("schedule", schedule), zap.Error(err))
	}
	c.Start()

	logger.Info("Overdue worker started", zap.String("schedule", schedule))

	// Run once at startup so a fresh deploy reports immediately
	worker.sweep()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down overdue worker...")
	<-c.Stop().Done()
	logger.Info("Overdue worker exiting")
}
