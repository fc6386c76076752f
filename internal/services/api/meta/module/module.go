// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"oilwatch/internal/core/version"
	modkit "oilwatch/internal/modkit"
	"oilwatch/internal/modkit/httpkit"

	metahttp "oilwatch/internal/services/api/meta/http"
	corpusdom "oilwatch/internal/services/corpus/domain"
)

// Module implements the modkit.Module interface
type Module struct {
	modkit.Routes
}

// New constructs a meta module. The corpus provider is optional; without it
// /meta/corpus answers 503
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	corpus, _ := b.Ports.(corpusdom.ProviderPort)
	d := metahttp.Deps{
		ServiceName: version.Info().Service,
		StartedAt:   time.Now(),
		Backends: []metahttp.Backend{
			{Name: "pg", Seam: deps.PG},
			{Name: "ch", Seam: deps.CH},
			{Name: "rds", Seam: deps.RDS},
		},
		Corpus: corpus,
	}
	return &Module{Routes: b.Routes(func(r httpkit.Router) { metahttp.Register(r, d) })}
}

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
