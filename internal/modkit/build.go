package modkit

import (
	"oilwatch/internal/modkit/httpkit"
	str "oilwatch/internal/platform/strings"
)

// Option mutates build configuration for a module
type Option func(*Built)

// WithName sets the module name used in logs
func WithName(name string) Option {
	return func(b *Built) { b.Name = name }
}

// WithPrefix mounts a module under a path prefix
func WithPrefix(prefix string) Option {
	return func(b *Built) { b.Prefix = prefix }
}

// WithPorts injects the ports a module imports from another one.
// The concrete type is owned by the importing module
func WithPorts[T any](p T) Option {
	return func(b *Built) { b.Ports = p }
}

// Built is the result of applying options
type Built struct {
	Name   string
	Prefix string
	Ports  any
}

// Build applies opts in order; later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Routes returns the mounting half of a module: register runs inside a
// subrouter at the built prefix
func (b Built) Routes(register func(httpkit.Router)) Routes {
	return Routes{name: b.Name, prefix: b.Prefix, register: register}
}

// Routes is embedded by modules that serve HTTP
type Routes struct {
	name     string
	prefix   string
	register func(httpkit.Router)
}

// Name returns the module name; an empty name panics
func (r Routes) Name() string { return str.MustString(r.name, "module name") }

// Prefix returns the route prefix; it must start with a slash
func (r Routes) Prefix() string { return str.MustPrefix(r.prefix) }

// MountRoutes mounts the module routes under its prefix
func (r Routes) MountRoutes(router httpkit.Router) {
	router.Route(r.Prefix(), func(sub httpkit.Router) {
		if r.register != nil {
			r.register(sub)
		}
	})
}
