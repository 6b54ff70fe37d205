// Package module wires the miniapp endpoints into the API using modkit
package module

import (
	modkit "minishop/internal/modkit"
	"minishop/internal/modkit/httpkit"
	"minishop/internal/platform/logger"
	"minishop/internal/platform/ratelimit"

	mhttp "minishop/internal/services/api/miniapp/http"
	gate "minishop/internal/services/gate/domain"
)

// Ports declares the injected gate port
type Ports struct {
	Gate gate.ServicePort
}

// Module serves the Mini App endpoints behind the per client limiter
type Module struct {
	*modkit.Base
}

// New panics without the gate port
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build("miniapp", "/miniapp", opts...)
	p, _ := modkit.Injected[Ports](b)
	if p.Gate == nil {
		panic("miniapp API module requires the Gate port (from services/gate)")
	}

	cfg := FromConfig(deps.Cfg)
	b.Use(httpkit.RateLimit(newLimiter(deps, cfg), cfg.RateLimit))
	b.Routes(func(r httpkit.Router) { mhttp.Register(r, p.Gate) })
	return &Module{Base: b}
}

// newLimiter shares counters through redis when configured
func newLimiter(deps modkit.Deps, o Options) ratelimit.Limiter {
	if o.RateLimit <= 0 {
		return nil
	}
	log := logger.Named("miniapp")
	if deps.Redis == nil {
		log.Info().Int("limit", o.RateLimit).Dur("window", o.RateWindow).Msg("rate limiter in memory")
		return ratelimit.NewMemory(o.RateWindow)
	}
	log.Info().Int("limit", o.RateLimit).Dur("window", o.RateWindow).Msg("rate limiter on redis")
	return ratelimit.NewRedis(deps.Redis, o.RateWindow)
}
