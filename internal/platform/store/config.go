package store

import (
	"time"

	"minishop/internal/platform/config"
	"minishop/internal/platform/logger"
)

// Config lists the backends Open connects, disabled ones stay nil
type Config struct {
	AppName string

	PG    PGConfig
	Redis RedisConfig
}

// PGConfig configures the pool and statement tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// ConnectRetries bounds the boot ping loop, zero means 20
	ConnectRetries int
	// PingTimeout bounds each boot ping, zero means 3s
	PingTimeout time.Duration
}

// RedisConfig takes a redis:// or rediss:// url
type RedisConfig struct {
	Enabled bool
	URL     string
}

// ConfigFrom reads SERVICE_PGSQL_* and SERVICE_REDIS_* under root
// postgres is only opened when withPG, its DBURL is then required
// redis is enabled by a non empty SERVICE_REDIS_URL
func ConfigFrom(root config.Conf, app string, withPG bool) Config {
	out := Config{AppName: app}
	if url := root.Prefix("SERVICE_REDIS_").MayString("URL", ""); url != "" {
		out.Redis = RedisConfig{Enabled: true, URL: url}
	}
	if !withPG {
		return out
	}
	pg := root.Prefix("SERVICE_PGSQL_")
	out.PG = PGConfig{
		Enabled:        true,
		URL:            pg.MustString("DBURL"),
		MaxConns:       int32(pg.MayInt("MAX_CONNS", 4)),
		SlowQueryMs:    pg.MayInt("SLOW_MS", 500),
		LogSQL:         pg.MayBool("LOG_SQL", false),
		ConnectRetries: pg.MayInt("CONNECT_RETRIES", 0),
		PingTimeout:    pg.MayDuration("PING_TIMEOUT", 0),
	}
	return out
}

// Option configures Open
type Option func(*Store) error

// WithLogger is the logger for boot retries and the SQL tracer
func WithLogger(l logger.Logger) Option {
	return func(s *Store) error {
		s.Log = l.With().Str("component", "store").Logger()
		return nil
	}
}
