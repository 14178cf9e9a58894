package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"CINQUILLO_SEED", "CINQUILLO_LOG_LEVEL", "CINQUILLO_NO_COLOR", "CINQUILLO_PLAYERS",
		"REDIS_ADDR", "REDIS_DB", "HISTORIAN_QUEUE_NAME", "DATABASE_URL", "HISTORIAN_BATCH_SIZE", "HISTORIAN_FLUSH_MS",
		"MATCH_INACTIVITY_TIMEOUT_SEC"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.Seed)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.False(t, cfg.NoColor)
	assert.Empty(t, cfg.Players)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, "cinquillo_actions", cfg.QueueName)
	assert.Equal(t, 20, cfg.HistorianBatchSize)
	assert.Equal(t, 500, cfg.HistorianFlushMs)
	assert.Equal(t, 600, cfg.HistorianInactivitySec)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CINQUILLO_SEED", "42")
	t.Setenv("CINQUILLO_LOG_LEVEL", "warn")
	t.Setenv("CINQUILLO_NO_COLOR", "true")
	t.Setenv("CINQUILLO_PLAYERS", "Ana, Luis,,Marta")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, logrus.WarnLevel, cfg.LogLevel)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, []string{"Ana", "Luis", "Marta"}, cfg.Players)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Zero(t, cfg.RedisDB)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("CINQUILLO_LOG_LEVEL", "loud")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("CINQUILLO_LOG_LEVEL", "")
	t.Setenv("CINQUILLO_SEED", "abc")
	_, err = Load()
	assert.Error(t, err)
}

func TestParseFlagsOverridesEnv(t *testing.T) {
	cfg := Config{Seed: 1, LogLevel: logrus.InfoLevel, Players: []string{"X", "Y", "Z"}}

	require.NoError(t, cfg.ParseFlags("cinquillo", []string{"-v", "-seed", "9", "-players", "Ana,Luis,Marta,Pepe", "-no-color"}))
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, []string{"Ana", "Luis", "Marta", "Pepe"}, cfg.Players)

	keep := Config{Seed: 3, Players: []string{"X", "Y", "Z"}}
	require.NoError(t, keep.ParseFlags("cinquillo", nil))
	assert.Equal(t, int64(3), keep.Seed)
	assert.Equal(t, []string{"X", "Y", "Z"}, keep.Players)
}
