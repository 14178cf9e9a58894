package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/cinquillo/internal/cache"
	"github.com/jason-s-yu/cinquillo/internal/config"
	"github.com/jason-s-yu/cinquillo/internal/console"
	"github.com/jason-s-yu/cinquillo/internal/database"
	"github.com/jason-s-yu/cinquillo/internal/game"
	"github.com/jason-s-yu/cinquillo/internal/middleware"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
			fmt.Fprintf(os.Stderr, "cinquillo: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ParseFlags("cinquillo", args); err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(cfg.LogLevel)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.WithField("seed", seed).Debug("random source seeded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []game.Option{game.WithLogger(logger)}
	if len(cfg.Players) > 0 {
		opts = append(opts, game.WithPlayerNames(cfg.Players...))
	}

	if cfg.RedisAddr != "" {
		rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			// The match is still playable without a journal.
			logger.WithError(err).Warn("action journal disabled")
		} else {
			journal := cache.NewJournal(rdb, cfg.QueueName)
			defer journal.Close()
			opts = append(opts, game.WithJournal(journal))
		}
	}

	presenter := middleware.LogPresenter(logger, console.New(in, out, !cfg.NoColor))
	match := game.NewMatch(presenter, rand.New(rand.NewSource(seed)), opts...)

	summary, err := match.Play(ctx)
	if err != nil {
		return err
	}

	if cfg.DatabaseURL != "" {
		if err := recordResults(ctx, cfg.DatabaseURL, summary); err != nil {
			logger.WithError(err).Error("failed to record match results")
		}
	}
	return nil
}

func recordResults(ctx context.Context, url string, summary *game.Summary) error {
	store, err := database.Connect(ctx, url)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}
	return store.RecordMatch(ctx, summary)
}
