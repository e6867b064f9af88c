package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/rollcall/internal/voice"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "ROLLCALL_"

// Config holds runtime settings for the rollcall CLI.
type Config struct {
	ServerAddr string `env:"SERVER_ADDR"`
	// Username logs in before each command.
	Username string `env:"USER"`
	// Password, when set, is used instead of prompting. Meant for scripts.
	Password string `env:"PASSWORD"`
	// Language is the speech recognition language for mark-voice.
	Language string `env:"LANGUAGE"`
	// Timeout bounds every server call.
	Timeout time.Duration `env:"TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "127.0.0.1:50051"
	c.Username = "admin"
	c.Language = voice.DefaultLanguage
	c.Timeout = 10 * time.Second
}

// LoadConfig constructs a Config from defaults overlaid with the
// environment. It panics on malformed values.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}
	return cfg
}
