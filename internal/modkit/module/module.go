// Package module defines the contract API modules share. It sits below
// modkit so a module can export its own ports type without an import cycle
package module

import phttp "oilwatch/internal/platform/net/http"

// Module mounts routes and exposes a port set for cross wiring
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// PortsOf returns the module's port set as T
func PortsOf[T any](m Module) (T, bool) {
	p, ok := m.Ports().(T)
	return p, ok
}

// MustPortsOf is PortsOf that panics when the port set is not a T
func MustPortsOf[T any](m Module) T {
	if p, ok := PortsOf[T](m); ok {
		return p
	}
	panic("module: " + m.Name() + " does not export the requested ports")
}
