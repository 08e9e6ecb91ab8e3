package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from the given environment into target.
// Fields whose variable is unset or empty keep their current value.
func ParseEnv(target any, environ map[string]string) error {
	if err := env.ParseWithOptions(target, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// FromEnv overlays environ on cfg and validates the result.
func FromEnv(cfg *Config, environ map[string]string) error {
	if err := ParseEnv(cfg, environ); err != nil {
		return err
	}
	return cfg.Validate()
}

// Environ converts os.Environ style "KEY=value" pairs into a map.
func Environ(pairs []string) map[string]string {
	return env.ToMap(pairs)
}
