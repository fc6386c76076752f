package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"oilwatch/internal/platform/logger"
	"oilwatch/internal/services/api/trends/domain"
	corpusdom "oilwatch/internal/services/corpus/domain"
)

const cachePrefix = "oilwatch:view:"

// entry is the cached form of a view; notes are not part of View's json
type entry struct {
	View  *domain.View `json:"view"`
	Notes []string     `json:"notes,omitempty"`
}

// CacheKey scopes a view to a snapshot: sha256 over the view name and the
// canonical json of its input
func CacheKey(snapshotID, view string, in any) string {
	b, _ := json.Marshal(in)
	h := sha256.New()
	h.Write([]byte(view))
	h.Write([]byte{0})
	h.Write(b)
	return cachePrefix + snapshotID + ":" + hex.EncodeToString(h.Sum(nil))
}

// cached serves a view from the cache when one is configured, building and
// storing it otherwise. The snapshot is the one pinned on ctx by the request
// middleware, so the cache key and the data always agree. Cache failures only
// cost a rebuild
func (s *Svc) cached(ctx context.Context, name string, in any, build func(*corpusdom.Snapshot) (*domain.View, error)) (*domain.View, error) {
	snap, err := corpusdom.Resolve(ctx, s.snaps)
	if err != nil {
		return nil, err
	}
	if s.cache == nil {
		return build(snap)
	}

	log := logger.C(ctx)
	key := CacheKey(snap.ID, name, in)
	if b, ok, err := s.cache.Get(ctx, key); err != nil {
		log.Warn().Err(err).Str("view", name).Msg("view cache get failed")
	} else if ok {
		var e entry
		if err := json.Unmarshal(b, &e); err == nil && e.View != nil {
			e.View.Notes = e.Notes
			log.Debug().Str("view", name).Msg("view cache hit")
			return e.View, nil
		}
		log.Warn().Str("view", name).Msg("view cache entry unreadable, rebuilding")
	}

	v, err := build(snap)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(entry{View: v, Notes: v.Notes})
	if err != nil {
		log.Warn().Err(err).Str("view", name).Msg("view cache encode failed")
		return v, nil
	}
	if err := s.cache.Set(ctx, key, b, s.ttl); err != nil {
		log.Warn().Err(err).Str("view", name).Msg("view cache set failed")
	}
	return v, nil
}
