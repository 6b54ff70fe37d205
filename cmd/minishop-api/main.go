// @title         minishop API
// @version       0.1.0
// @description   Telegram Mini App gate over the shop and the row store

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"minishop/internal/modkit/repokit"
	"minishop/internal/platform/config"
	"minishop/internal/platform/logger"
	phttp "minishop/internal/platform/net/http"
	"minishop/internal/platform/store"

	"minishop/internal/services/api"
	gatemod "minishop/internal/services/gate/module"

	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	logger.Init(logger.FromEnv())
	l := logger.Get()

	// postgres only backs the row store when the pg driver is picked
	driver := root.MayEnum("ROWSTORE_DRIVER", gatemod.DriverSheets, gatemod.DriverSheets, gatemod.DriverPG)
	cfg := store.ConfigFrom(root, "minishop-api", driver == gatemod.DriverPG)

	st, err := store.Open(ctx, cfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	err = api.Mount(ctx, srv.Router(), api.Options{
		Config:         apiCfg,
		Root:           root,
		Store:          st,
		Logger:         l,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
		TrustedProxies: apiCfg.MayCSV("TRUSTED_PROXIES", nil),
	})
	if err != nil {
		l.Panic().Err(err).Msg("api.Mount failed")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), apiCfg.MayDuration("SHUTDOWN_TIMEOUT", 10*time.Second))
		defer cancel()
		l.Info().Msg("http shutting down")
		return srv.Shutdown(sctx)
	})
	if err := g.Wait(); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
