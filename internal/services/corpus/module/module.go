// Package module wires the corpus loader and exposes its ports. It mounts no routes
package module

import (
	"context"

	"oilwatch/internal/core/dictionary"
	"oilwatch/internal/modkit"
	"oilwatch/internal/modkit/httpkit"
	"oilwatch/internal/services/corpus/service"
)

// Module defines the corpus module
type Module struct {
	deps  modkit.Deps
	ports Ports
	svc   *service.Svc
}

// New builds the registry and the source, then the service. Nothing is loaded yet
func New(ctx context.Context, deps modkit.Deps, overrides Options) (*Module, error) {
	opts := FromConfig(deps.Cfg)

	if overrides.Source != "" {
		opts.Source = overrides.Source
	}
	if overrides.Path != "" {
		opts.Path = overrides.Path
	}
	if overrides.Table != "" {
		opts.Table = overrides.Table
	}
	if overrides.S3.Bucket != "" {
		opts.S3 = overrides.S3
	}
	if overrides.Dictionary != "" {
		opts.Dictionary = overrides.Dictionary
	}
	if overrides.FoldMarks {
		opts.FoldMarks = true
	}
	if overrides.ReloadEvery != 0 {
		opts.ReloadEvery = overrides.ReloadEvery
	}
	opts.Src = overrides.Src

	reg, err := dictionary.Load(opts.Dictionary)
	if err != nil {
		return nil, err
	}
	src, err := buildSource(ctx, deps, opts)
	if err != nil {
		return nil, err
	}

	svc := service.New(src, reg, service.Config{
		FoldMarks:   opts.FoldMarks,
		ReloadEvery: opts.ReloadEvery,
	})

	m := &Module{deps: deps, svc: svc}
	m.ports = Ports{
		Snapshots: svc,
		Loader:    svc,
		Worker:    svc,
		Pinner:    Pinner{P: svc},
		Registry:  reg,
	}
	return m, nil
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "corpus" }

// Prefix returns no prefix; the module has no routes
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
