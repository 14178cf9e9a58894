// internal/config/config.go
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config holds everything the CLI and the historian need to start.
type Config struct {
	// Seed for the shared random source; 0 means seed from the clock.
	Seed     int64
	LogLevel logrus.Level
	NoColor  bool
	// Players, when set, seats these names instead of prompting.
	Players []string

	// RedisAddr enables the action journal when non-empty.
	RedisAddr string
	RedisDB   int
	QueueName string

	// DatabaseURL enables results storage when non-empty.
	DatabaseURL string

	HistorianBatchSize int
	HistorianFlushMs   int
	// HistorianInactivitySec is how long a match may go silent before it is reported abandoned.
	HistorianInactivitySec int
}

// Load reads the configuration from environment variables.
//   - CINQUILLO_SEED (default 0)
//   - CINQUILLO_LOG_LEVEL (default "info")
//   - CINQUILLO_NO_COLOR (default false)
//   - CINQUILLO_PLAYERS (comma separated, optional)
//   - REDIS_ADDR, REDIS_DB, HISTORIAN_QUEUE_NAME
//   - DATABASE_URL
//   - HISTORIAN_BATCH_SIZE (default 20), HISTORIAN_FLUSH_MS (default 500)
//   - MATCH_INACTIVITY_TIMEOUT_SEC (default 600)
func Load() (Config, error) {
	level, err := logrus.ParseLevel(getEnv("CINQUILLO_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("CINQUILLO_LOG_LEVEL: %w", err)
	}
	seed, err := strconv.ParseInt(getEnv("CINQUILLO_SEED", "0"), 10, 64)
	if err != nil {
		return Config{}, fmt.Errorf("CINQUILLO_SEED: %w", err)
	}

	return Config{
		Seed:                   seed,
		LogLevel:               level,
		NoColor:                getEnvBool("CINQUILLO_NO_COLOR", false),
		Players:                splitNames(os.Getenv("CINQUILLO_PLAYERS")),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisDB:                getEnvInt("REDIS_DB", 0),
		QueueName:              getEnv("HISTORIAN_QUEUE_NAME", "cinquillo_actions"),
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		HistorianBatchSize:     getEnvInt("HISTORIAN_BATCH_SIZE", 20),
		HistorianFlushMs:       getEnvInt("HISTORIAN_FLUSH_MS", 500),
		HistorianInactivitySec: getEnvInt("MATCH_INACTIVITY_TIMEOUT_SEC", 600),
	}, nil
}

// ParseFlags applies command line overrides on top of the environment.
func (c *Config) ParseFlags(name string, args []string) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	verbose := fs.Bool("v", false, "verbose (debug) logging")
	seed := fs.Int64("seed", c.Seed, "random seed, 0 for time based")
	noColor := fs.Bool("no-color", c.NoColor, "disable ANSI colours")
	players := fs.String("players", strings.Join(c.Players, ","), "comma separated player names (3 or 4)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *verbose {
		c.LogLevel = logrus.DebugLevel
	}
	c.Seed = *seed
	c.NoColor = *noColor
	c.Players = splitNames(*players)
	return nil
}

func splitNames(s string) []string {
	var names []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
