package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "./config.yaml"

// Load reads configuration with priority ENV > YAML > env-default tags.
// The YAML path comes from CONFIG_PATH, falling back to ./config.yaml; a
// missing fallback file means ENV and defaults only, while a missing
// explicit path is an error. The result is normalized, then validated.
func Load() (*Config, error) {
	var cfg Config

	path, explicit := os.LookupEnv("CONFIG_PATH")
	if path == "" {
		path, explicit = defaultConfigPath, false
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// normalize folds case and whitespace on enumerated settings so that
// "Auto_Reset" or " JSON " from an env file validate the same as the
// canonical spelling.
func (c *Config) normalize() {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.Check.LoadPolicy = strings.ToLower(strings.TrimSpace(c.Check.LoadPolicy))
	c.Presence.PurgeSchedule = strings.TrimSpace(c.Presence.PurgeSchedule)
	c.Redis.URL = strings.TrimSpace(c.Redis.URL)
	c.Metrics.Path = strings.TrimSpace(c.Metrics.Path)
}
