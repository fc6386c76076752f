// Package module wires the dictionary listing into the API
package module

import (
	modkit "oilwatch/internal/modkit"
	"oilwatch/internal/modkit/httpkit"
	dicthttp "oilwatch/internal/services/api/dictionaries/http"
)

// Module implements the dictionaries module
type Module struct {
	modkit.Routes
}

// New constructs the module. The trends service port (or anything listing
// dictionaries) is passed with modkit.WithPorts
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("dictionaries"), modkit.WithPrefix("/dictionaries")}, opts...)...)

	l, ok := b.Ports.(dicthttp.Lister)
	if !ok || l == nil {
		panic("dictionaries module requires a Lister via WithPorts")
	}
	return &Module{Routes: b.Routes(func(r httpkit.Router) { dicthttp.Register(r, l) })}
}

// Ports returns nothing; the listing is read through trends
func (m *Module) Ports() any { return nil }
