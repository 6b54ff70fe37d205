// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"context"
	"time"

	modkit "minishop/internal/modkit"
	"minishop/internal/modkit/httpkit"

	metahttp "minishop/internal/services/api/meta/http"

	"github.com/redis/go-redis/v9"
)

// Ports are the optional collaborators probed by readiness
type Ports struct {
	RowStore metahttp.Pinger
	Shop     metahttp.Pinger
}

// Module serves liveness, readiness and build info
type Module struct {
	*modkit.Base
}

// New probes whatever collaborators are injected, none are required
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build("meta", "/meta", opts...)
	p, _ := modkit.Injected[Ports](b)
	started := time.Now()
	b.Routes(func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: "minishop-api",
			StartedAt:   started,
			Checks:      checks(deps, p),
		})
	})
	return &Module{Base: b}
}

// checks lists readiness probes. A nil collaborator is reported as skipped
func checks(deps modkit.Deps, p Ports) []metahttp.Check {
	out := []metahttp.Check{
		{Name: "rowstore", Pinger: p.RowStore},
		{Name: "shop", Pinger: p.Shop},
	}
	if pg, ok := deps.PG.(metahttp.Pinger); ok {
		out = append(out, metahttp.Check{Name: "pg", Pinger: pg})
	} else {
		out = append(out, metahttp.Check{Name: "pg"})
	}
	// the limiter falls back to memory, so redis only degrades
	rc := metahttp.Check{Name: "redis", Optional: true}
	if deps.Redis != nil {
		rc.Pinger = redisPinger{deps.Redis}
	}
	return append(out, rc)
}

type redisPinger struct{ c redis.UniversalClient }

func (r redisPinger) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }
