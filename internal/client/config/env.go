package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays Config with values from UIKART_* environment variables.
// Unset variables leave the existing values alone.
func parseEnv(cfg *Config) error {
	return env.Parse(cfg)
}
