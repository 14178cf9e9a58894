// cmd/historian pops match actions from the Redis journal and persists them to PostgreSQL.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/cinquillo/internal/cache"
	"github.com/jason-s-yu/cinquillo/internal/config"
	"github.com/jason-s-yu/cinquillo/internal/database"
	"github.com/jason-s-yu/cinquillo/internal/historian"
)

func main() {
	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("loading config")
	}
	if err := cfg.ParseFlags("historian", os.Args[1:]); err != nil {
		logger.WithError(err).Fatal("parsing flags")
	}
	logger.SetLevel(cfg.LogLevel)

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}
	redisAddr := cfg.RedisAddr
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("connecting to database")
	}
	defer store.Close()
	if err := store.EnsureSchema(ctx); err != nil {
		logger.WithError(err).Fatal("preparing schema")
	}

	rdb, err := cache.ConnectRedis(ctx, redisAddr, cfg.RedisDB)
	if err != nil {
		logger.WithError(err).Fatal("connecting to redis")
	}
	journal := cache.NewJournal(rdb, cfg.QueueName)
	defer journal.Close()

	svc := historian.New(journal, store, logger.WithField("queue", journal.Queue()), historian.Settings{
		BatchSize:  cfg.HistorianBatchSize,
		FlushDelay: time.Duration(cfg.HistorianFlushMs) * time.Millisecond,
		Inactivity: time.Duration(cfg.HistorianInactivitySec) * time.Second,
	})
	if err := svc.Run(ctx); err != nil {
		logger.WithError(err).Error("historian stopped")
	}
}
