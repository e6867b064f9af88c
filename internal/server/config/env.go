package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment variable read into Config.
const EnvPrefix = "ROLLCALL_"

// parseEnv overlays ROLLCALL_* environment variables onto config. Unset
// variables keep the current value.
func parseEnv(config *Config) {
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}
}
