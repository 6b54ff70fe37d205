package module

import (
	"time"

	"minishop/internal/platform/config"
)

// Options controls the miniapp routes
type Options struct {
	// RateLimit is requests per RateWindow per client IP, 0 disables
	RateLimit  int
	RateWindow time.Duration
}

// FromConfig reads CORE_API_RATE_* values
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_API_")
	return Options{
		RateLimit:  c.MayInt("RATE_LIMIT", 60),
		RateWindow: c.MayDuration("RATE_WINDOW", time.Minute),
	}
}
