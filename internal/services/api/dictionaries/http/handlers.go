// Package http serves the dictionary listing
package http

import (
	"context"
	stdhttp "net/http"

	"oilwatch/internal/modkit/httpkit"
	"oilwatch/internal/services/api/trends/domain"
)

// Lister is the slice of the trends service the listing needs
type Lister interface {
	Dictionaries(ctx context.Context) ([]domain.DictionaryOut, error)
	Dictionary(ctx context.Context, key string) (*domain.DictionaryOut, error)
}

// Register mounts the dictionary endpoints
func Register(r httpkit.Router, l Lister) {
	h := &handlers{l: l}
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{key}", h.get)
}

type handlers struct{ l Lister }

// swagger:route GET /dictionaries Dictionaries dictionariesList
// @Summary List dictionaries with their terms
// @Tags Dictionaries
// @Produce json
// @Success 200 {array} domain.DictionaryOut "ok"
// @Router /dictionaries [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.l.Dictionaries(r.Context())
}

// swagger:route GET /dictionaries/{key} Dictionaries dictionariesGet
// @Summary One dictionary
// @Tags Dictionaries
// @Produce json
// @Param key path string true "dictionary key"
// @Success 200 {object} domain.DictionaryOut "ok"
// @Failure 404 {object} httpkit.Envelope "unknown dictionary"
// @Router /dictionaries/{key} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.l.Dictionary(r.Context(), httpkit.Param(r, "key"))
}
