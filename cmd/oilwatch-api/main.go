// @title         oilwatch API
// @version       0.1.0
// @description   Term frequency trends over oil company news coverage

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"oilwatch/internal/modkit/repokit"
	"oilwatch/internal/platform/config"
	"oilwatch/internal/platform/logger"
	phttp "oilwatch/internal/platform/net/http"
	"oilwatch/internal/platform/store"

	"oilwatch/internal/services/api"
)

func main() {
	// .env first so every config read below sees it
	loaded := config.LoadDotEnv()

	// service-scoped config for HTTP etc (OILWATCH_API_*)
	root := config.New()
	apiCfg := root.Prefix("OILWATCH_API_")

	// bring up logging early
	l := logger.Get()
	if len(loaded) > 0 {
		l.Debug().Strs("files", loaded).Msg("dotenv loaded")
	}

	// SIGINT/SIGTERM stop the reload worker and drain the server
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// open the optional stores (SERVICE_PGSQL_*, SERVICE_CLICKHOUSE_*, CACHE_REDIS_*)
	st, err := store.Open(ctx, store.FromConf(root, "oilwatch", "api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	repokit.MustGuard(ctx, st)
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads OILWATCH_API_PORT)
	srv := phttp.NewServer(root.Prefix("OILWATCH_"))

	// load the corpus and mount our API
	err = api.Mount(ctx, srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})
	if err != nil {
		l.Panic().Err(err).Msg("api mount failed")
	}

	// run
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("shutdown complete")
}
