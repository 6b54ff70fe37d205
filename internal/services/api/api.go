// Package api provides the HTTP API for the application
package api

import (
	"context"

	"minishop/internal/platform/config"
	"minishop/internal/platform/logger"
	phttp "minishop/internal/platform/net/http"
	"minishop/internal/platform/store"

	"minishop/internal/modkit"
	"minishop/internal/modkit/httpkit"
	"minishop/internal/modkit/module"
	"minishop/internal/modkit/swaggerkit"

	metamod "minishop/internal/services/api/meta/module"
	miniappmod "minishop/internal/services/api/miniapp/module"

	// Gate module (owns the Service port)
	gatemod "minishop/internal/services/gate/module"
)

// Options are the API options
type Options struct {
	// Config is the CORE_API_ scope, Root the unprefixed one the gate reads
	Config         config.Conf
	Root           config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool

	// CORSOrigins are the Mini App web origins, empty allows any
	CORSOrigins []string

	// TrustedProxies may set the client address through X-Forwarded-For
	TrustedProxies []string
}

// Mount builds the modules and mounts them onto the given router
func Mount(ctx context.Context, r phttp.Router, opt Options) error {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.Redis = opt.Store.Redis
	}

	// Construct the gate first and extract its ports
	gateDeps := deps
	gateDeps.Cfg = opt.Root
	gate, err := gatemod.New(ctx, gateDeps, gatemod.Options{})
	if err != nil {
		return err
	}
	gp := module.MustFind[gatemod.Ports](gate)

	set, err := module.NewSet(
		metamod.New(deps, modkit.WithPorts(metamod.Ports{
			RowStore: gp.RowStore,
			Shop:     gp.Shop,
		})),
		gate,
		miniappmod.New(deps, modkit.WithPorts(miniappmod.Ports{
			Gate: gp.Service,
		})),
	)
	if err != nil {
		return err
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(httpkit.StackOptions{Origins: opt.CORSOrigins, TrustedProxies: opt.TrustedProxies}), func(api httpkit.Router) {
		swaggerkit.Mount(r, swaggerkit.Options{
			Enabled:     opt.EnableSwagger,
			TitleSuffix: opt.Config.MayString("DOCS_TITLE_SUFFIX", ""),
		})
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
		set.Mount(api)
	})
	logger.Named("api").Info().Strs("modules", set.Names()).Msg("modules mounted")
	return nil
}
