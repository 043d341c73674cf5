package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DimaJoyti/food-alignment-engine/internal/domain/engine"
	"github.com/DimaJoyti/food-alignment-engine/internal/domain/entities"
)

// CachedGateway is a Redis read-through decorator over another
// engine.CatalogGateway, memoizing search(query, limit) results keyed by
// "query|limit" with a bounded TTL (SPEC_FULL.md §4.8's "cache-then-catalog
// read path" — search latency directly gates per-prediction wall-clock
// under the batch driver's concurrency ceiling).
type CachedGateway struct {
	wrapped engine.CatalogGateway
	client  *redis.Client
	ttl     time.Duration
}

// NewCachedGateway wraps an existing gateway with a Redis-backed cache.
func NewCachedGateway(wrapped engine.CatalogGateway, addr string, ttl time.Duration) *CachedGateway {
	return &CachedGateway{
		wrapped: wrapped,
		client:  redis.NewClient(&redis.Options{Addr: addr}),
		ttl:     ttl,
	}
}

// Search reads the cache first; on miss (or decode error) it falls through
// to the wrapped gateway and repopulates the cache.
func (g *CachedGateway) Search(ctx context.Context, query string, limit int) ([]entities.CatalogEntry, error) {
	key := fmt.Sprintf("catalog:search:%s|%d", query, limit)

	if cached, err := g.client.Get(ctx, key).Bytes(); err == nil {
		var entries []entities.CatalogEntry
		if json.Unmarshal(cached, &entries) == nil {
			return entries, nil
		}
	}

	entries, err := g.wrapped.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(entries); err == nil {
		g.client.Set(ctx, key, encoded, g.ttl)
	}
	return entries, nil
}

// Reconnect delegates to the wrapped gateway; the Redis client reconnects
// lazily on its own next command.
func (g *CachedGateway) Reconnect(ctx context.Context) error {
	return g.wrapped.Reconnect(ctx)
}

// IsConnected reports the wrapped gateway's connectivity; the cache is a
// pure accelerator and never the source of truth for readiness.
func (g *CachedGateway) IsConnected() bool {
	return g.wrapped.IsConnected()
}
