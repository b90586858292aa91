package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := parse(env.Options{Environment: map[string]string{}})
	require.NoError(t, err)

	assert.Equal(t, "data/datastore.json", cfg.StoragePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 2, cfg.SyncWorkers)
	assert.Equal(t, 5, cfg.SyncMaxAttempts)
	assert.Equal(t, 25*time.Millisecond, cfg.SyncDelay)
	assert.Empty(t, cfg.GuildIDs)
	assert.EqualError(t, cfg.Validate(), "DISCORD_TOKEN is not set")
}

func TestFromEnvironment(t *testing.T) {
	cfg, err := parse(env.Options{Environment: map[string]string{
		"DISCORD_TOKEN":     "token",
		"GUILD_IDS":         "1,2",
		"STORAGE_PATH":      "/tmp/store.json",
		"LOG_LEVEL":         "debug",
		"LOG_FILE":          "/tmp/bot.log",
		"SYNC_WORKERS":      "0",
		"SYNC_MAX_ATTEMPTS": "3",
		"SYNC_DELAY":        "1s",
	}})
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2"}, cfg.GuildIDs)
	assert.Equal(t, "/tmp/store.json", cfg.StoragePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/bot.log", cfg.LogFile)
	assert.Equal(t, 1, cfg.SyncWorkers, "clamped to at least one worker")
	assert.Equal(t, 3, cfg.SyncMaxAttempts)
	assert.Equal(t, time.Second, cfg.SyncDelay)
	assert.NoError(t, cfg.Validate())
}

func TestInvalidValue(t *testing.T) {
	_, err := parse(env.Options{Environment: map[string]string{"SYNC_WORKERS": "many"}})
	assert.Error(t, err)
}
