package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("SERVER_ADDRESS", "https://sched.example.org/")
	t.Setenv("HEALTH_INTERVAL", "10s")
	t.Setenv("SYNC_POLICY", "HALT")
	t.Setenv("TOKEN", "")
	t.Setenv("QUEUE_PASSPHRASE", "s3cret")

	cfg := MustLoad()

	assert.Equal(t, filepath.Join(dir, "queue.db"), cfg.DataPath)
	assert.Equal(t, 10*time.Second, cfg.HealthInterval)
	assert.Equal(t, 5*time.Second, cfg.HealthTimeout)
	assert.Equal(t, "halt", cfg.SyncPolicy)
	assert.Equal(t, "s3cret", cfg.QueuePassphrase)
	assert.Equal(t, "https://sched.example.org", cfg.BaseURL())
	assert.Equal(t, "wss://sched.example.org/ws", cfg.WebSocketURL())
}

func TestMustLoad_BadPolicy(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("SYNC_POLICY", "retry")

	assert.Panics(t, func() { MustLoad() })
}

func TestConfig_URLs(t *testing.T) {
	cfg := &Config{ServerAddress: "localhost:8080"}
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL())
	assert.Equal(t, "ws://localhost:8080/ws", cfg.WebSocketURL())
}

func TestConfig_Token(t *testing.T) {
	cfg := &Config{TokenPath: filepath.Join(t.TempDir(), "token")}
	assert.Empty(t, cfg.LoadToken())

	require.NoError(t, cfg.SaveToken("abc"))
	assert.Equal(t, "abc", (&Config{TokenPath: cfg.TokenPath}).LoadToken())

	cfg.Token = "env-token"
	assert.Equal(t, "env-token", cfg.LoadToken())
}
