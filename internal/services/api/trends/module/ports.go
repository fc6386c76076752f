package module

import "oilwatch/internal/services/api/trends/domain"

// Ports exposes the view service for other modules and the report CLI
type Ports struct {
	Service domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
