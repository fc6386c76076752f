// Package modkit provides module wiring and the deps modules share
package modkit

import (
	"oilwatch/internal/modkit/module"
	"oilwatch/internal/modkit/repokit"
	"oilwatch/internal/platform/config"
	"oilwatch/internal/platform/store"
)

// Module is the surface every API module exposes to the composition root
type Module = module.Module

// Deps holds the shared dependencies passed to modules. Stores are optional
// and nil when not configured
type Deps struct {
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
	RDS store.KV
}
