package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMustLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URI", "")

	cfg := MustLoad()

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, ":8080", cfg.Server.RunAddress)
	assert.Equal(t, 256, cfg.Broadcast.Buffer)
	assert.Equal(t, time.Duration(0), cfg.AutoGen.Interval)
	assert.False(t, cfg.UsesPostgres())
}

func TestMustLoad_FromEnv(t *testing.T) {
	t.Setenv("ENV", EnvProd)
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("DATABASE_URI", "postgres://u:p@localhost:5432/sched")
	t.Setenv("AUTOGEN_INTERVAL", "10s")
	t.Setenv("BROADCAST_BUFFER", "16")

	cfg := MustLoad()

	assert.Equal(t, EnvProd, cfg.Env)
	assert.Equal(t, ":9090", cfg.Server.RunAddress)
	assert.Equal(t, 10*time.Second, cfg.AutoGen.Interval)
	assert.Equal(t, 16, cfg.Broadcast.Buffer)
	assert.True(t, cfg.UsesPostgres())
}
