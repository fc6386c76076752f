package module

import (
	"context"

	"oilwatch/internal/core/dictionary"
	dom "oilwatch/internal/services/corpus/domain"
)

// Ports holds the ports exposed by the corpus module
type Ports struct {
	Snapshots dom.ProviderPort
	Loader    dom.LoaderPort
	Worker    dom.WorkerPort
	Pinner    Pinner
	Registry  *dictionary.Registry
}

// Pinner resolves the live snapshot once per request for the snapshot middleware
type Pinner struct{ P dom.ProviderPort }

// Pin returns ctx carrying the live snapshot, and that snapshot's id
func (p Pinner) Pin(ctx context.Context) (context.Context, string, error) {
	snap, err := p.P.Current(ctx)
	if err != nil {
		return ctx, "", err
	}
	return dom.Pin(ctx, snap), snap.ID, nil
}
