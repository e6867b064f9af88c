package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerAddr)
	assert.Equal(t, "admin", c.Username)
	assert.Equal(t, "en-US", c.Language)
	assert.Equal(t, 10*time.Second, c.Timeout)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("ROLLCALL_SERVER_ADDR", "ledger:9000")
	t.Setenv("ROLLCALL_USER", "alice")
	t.Setenv("ROLLCALL_TIMEOUT", "3s")

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "ledger:9000", cfg.ServerAddr)
	assert.Equal(t, "alice", cfg.Username)
	assert.Equal(t, "en-US", cfg.Language)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestLoadConfig_BadEnvPanics(t *testing.T) {
	t.Setenv("ROLLCALL_TIMEOUT", "soon")
	assert.Panics(t, func() { LoadConfig() })
}
