// Package module wires the trend views into the API using modkit
package module

import (
	"oilwatch/internal/core/dictionary"
	modkit "oilwatch/internal/modkit"
	"oilwatch/internal/modkit/httpkit"
	trendshttp "oilwatch/internal/services/api/trends/http"
	trendssvc "oilwatch/internal/services/api/trends/service"
	corpusdom "oilwatch/internal/services/corpus/domain"
)

// Needs are the ports the trends module imports from the corpus module,
// passed in with modkit.WithPorts
type Needs struct {
	Snapshots corpusdom.ProviderPort
	Registry  *dictionary.Registry
}

// Module implements the trends module
type Module struct {
	modkit.Routes
	ports Ports
}

// New constructs the trends module. The view cache is deps.RDS when present,
// with CACHE_REDIS_TTL as the entry lifetime
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("trends"), modkit.WithPrefix("/trends")}, opts...)...)

	needs, ok := b.Ports.(Needs)
	if !ok || needs.Snapshots == nil || needs.Registry == nil {
		panic("trends module requires Needs{Snapshots, Registry} via WithPorts")
	}

	svc := trendssvc.New(needs.Snapshots, needs.Registry, trendssvc.Options{
		Cache:    deps.RDS,
		CacheTTL: deps.Cfg.Prefix("CACHE_REDIS_").MayDuration("TTL", 0),
	})

	return &Module{
		Routes: b.Routes(func(r httpkit.Router) { trendshttp.Register(r, svc) }),
		ports:  Ports{Service: svc},
	}
}
