// Package api provides the HTTP API for the application
package api

import (
	"context"

	"oilwatch/internal/platform/config"
	"oilwatch/internal/platform/logger"
	phttp "oilwatch/internal/platform/net/http"
	"oilwatch/internal/platform/store"

	"oilwatch/internal/modkit"
	"oilwatch/internal/modkit/httpkit"
	"oilwatch/internal/modkit/module"
	"oilwatch/internal/modkit/swaggerkit"

	dictmod "oilwatch/internal/services/api/dictionaries/module"
	metamod "oilwatch/internal/services/api/meta/module"
	trendsmod "oilwatch/internal/services/api/trends/module"

	corpusmod "oilwatch/internal/services/corpus/module"
)

// Options are the API options
type Options struct {
	// Config is the unprefixed root; modules read their own prefixes from it
	Config         config.Conf
	Store          *store.Store
	EnableSwagger  bool
	EnableProfiler bool

	// Corpus overrides the corpus module options read from the environment
	Corpus corpusmod.Options
}

// Mount loads the corpus, then mounts the API service onto the given router.
// A failed first load is returned; later reloads run until ctx is done
func Mount(ctx context.Context, r phttp.Router, opt Options) error {
	log := logger.Named("api")

	// shared deps for modules
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
		deps.RDS = opt.Store.RDS
	}

	// the corpus module owns the snapshot and the dictionary registry
	corpus, err := corpusmod.New(ctx, deps, opt.Corpus)
	if err != nil {
		return err
	}
	cp := module.MustPortsOf[corpusmod.Ports](corpus)
	if _, err := cp.Loader.Load(ctx); err != nil {
		return err
	}
	go func() {
		if err := cp.Worker.Run(ctx); err != nil {
			log.Error().Err(err).Msg("corpus reload worker stopped")
		}
	}()

	trends := trendsmod.New(deps, modkit.WithPorts(trendsmod.Needs{
		Snapshots: cp.Snapshots,
		Registry:  cp.Registry,
	}))
	views := module.MustPortsOf[trendsmod.Ports](trends).Service

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(cp.Snapshots)),
		trends,
		dictmod.New(deps, modkit.WithPorts(views)),
	}

	// versioned API: common stack, then every request stamped with the snapshot id
	stack := append(httpkit.CommonStack(opt.Config.Prefix("OILWATCH_API_")), httpkit.Snapshot(cp.Pinner))
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
			log.Debug().Str("module", m.Name()).Msg("module mounted")
		}
	})

	// Swagger + profiler
	swaggerkit.Mount(r, swaggerkit.Options{
		Enabled:     opt.EnableSwagger,
		TitleSuffix: opt.Config.Prefix("OILWATCH_API_").MayString("DOCS_TITLE_SUFFIX", ""),
	})
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	log.Info().Int("modules", len(mods)).Msg("api mounted")
	return nil
}
