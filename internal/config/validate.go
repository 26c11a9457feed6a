package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}

	if err := c.Check.validate(); err != nil {
		return fmt.Errorf("check: %w", err)
	}
	if err := c.Presence.validate(); err != nil {
		return fmt.Errorf("presence: %w", err)
	}

	if c.Notify.Buffer <= 0 {
		return fmt.Errorf("notify.buffer must be > 0 (got %d)", c.Notify.Buffer)
	}
	if c.Public.RateLimitPerMinute <= 0 {
		return fmt.Errorf("public.rate_limit_per_minute must be > 0 (got %d)", c.Public.RateLimitPerMinute)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	return nil
}

func (c *CheckConfig) validate() error {
	switch c.LoadPolicy {
	case "sticky", "auto_reset":
	default:
		return fmt.Errorf("load_policy must be sticky or auto_reset (got %q)", c.LoadPolicy)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be >= 1 (got %d)", c.MaxDepth)
	}
	if c.HistoryLimit < 1 {
		return fmt.Errorf("history_limit must be >= 1 (got %d)", c.HistoryLimit)
	}
	return nil
}

func (p *PresenceConfig) validate() error {
	if p.Window <= 0 {
		return fmt.Errorf("window must be > 0 (got %v)", p.Window)
	}
	if p.Retention < p.Window {
		return fmt.Errorf("retention (%v) must not be shorter than window (%v)", p.Retention, p.Window)
	}
	if p.PurgeSchedule != "" {
		if _, err := cron.ParseStandard(p.PurgeSchedule); err != nil {
			return fmt.Errorf("purge_schedule: %w", err)
		}
	}
	return nil
}
