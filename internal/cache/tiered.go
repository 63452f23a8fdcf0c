package cache

import (
	"context"
	"time"

	"github.com/vishnu2kmohan/mcp-server-langgraph-sub004/internal/common/logging"
)

// TieredCache coordinates the in-process tier (L1) and the shared tier (L2).
// Reads check L1 first; an L2 hit is promoted into L1 under L1's own TTL
// policy so hot keys stay local. Writes go through to both tiers. The remote
// tier is optional: with a nil or unavailable remote the cache degrades to
// L1-only behavior with no error surface.
type TieredCache struct {
	local     *LocalTier
	remote    *RemoteTier
	stats     statistics
	telemetry Telemetry
	logger    logging.Logger
}

// NewTieredCache assembles the two tiers. remote may be nil for a purely
// local cache.
func NewTieredCache(local *LocalTier, remote *RemoteTier, telemetry Telemetry, logger logging.Logger) *TieredCache {
	if telemetry == nil {
		telemetry = NopTelemetry{}
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	return &TieredCache{
		local:     local,
		remote:    remote,
		telemetry: telemetry,
		logger:    logger.WithFields(logging.String("component", "cache.tiered")),
	}
}

func (c *TieredCache) remoteAvailable() bool {
	return c.remote != nil && c.remote.Available()
}

// Get looks key up in both tiers.
func (c *TieredCache) Get(ctx context.Context, key string) (interface{}, bool) {
	return c.GetLevel(ctx, key, LevelAll)
}

// GetLevel looks key up in the tiers selected by level. An L2 hit is written
// back into L1 with the TTL the key's type prescribes, not the remaining
// remote lifetime.
func (c *TieredCache) GetLevel(ctx context.Context, key string, level Level) (interface{}, bool) {
	keyType := KeyType(key)

	if level.HasL1() {
		if value, found := c.local.Get(ctx, key); found {
			c.stats.l1.hits.Add(1)
			c.telemetry.RecordHit("l1", keyType)
			return value, true
		}
		c.stats.l1.misses.Add(1)
	}

	if level.HasL2() && c.remoteAvailable() {
		if value, found := c.remote.Get(ctx, key); found {
			c.stats.l2.hits.Add(1)
			c.telemetry.RecordHit("l2", keyType)
			if level.HasL1() {
				c.local.Set(ctx, key, value, TTLFor(key))
			}
			return value, true
		}
		c.stats.l2.misses.Add(1)
	}

	c.telemetry.RecordMiss(level.String(), keyType)
	return nil, false
}

// Set writes key to both tiers.
func (c *TieredCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	c.SetLevel(ctx, key, value, ttl, LevelAll)
}

// SetLevel writes key to the tiers selected by level. A non-positive ttl
// falls back to the key type's default.
func (c *TieredCache) SetLevel(ctx context.Context, key string, value interface{}, ttl time.Duration, level Level) {
	if ttl <= 0 {
		ttl = TTLFor(key)
	}
	keyType := KeyType(key)

	if level.HasL1() {
		c.local.Set(ctx, key, value, ttl)
		c.stats.l1.sets.Add(1)
		c.telemetry.RecordSet("l1", keyType)
	}

	if level.HasL2() && c.remoteAvailable() {
		// Absorbed failures (serialization, breaker open, store error)
		// must not count as writes.
		if c.remote.Set(ctx, key, value, ttl) {
			c.stats.l2.sets.Add(1)
			c.telemetry.RecordSet("l2", keyType)
		}
	}
}

// Delete removes key from both tiers.
func (c *TieredCache) Delete(ctx context.Context, key string) {
	c.local.Delete(ctx, key)
	c.stats.l1.deletes.Add(1)

	if c.remoteAvailable() {
		if c.remote.Delete(ctx, key) {
			c.stats.l2.deletes.Add(1)
		}
	}
}

// Clear empties L1 entirely and removes L2 keys matching pattern. An empty
// pattern clears everything in both tiers.
func (c *TieredCache) Clear(ctx context.Context, pattern string) {
	c.local.Clear(ctx)

	if c.remoteAvailable() {
		c.remote.Clear(ctx, pattern)
	}

	c.logger.Info("cache cleared", logging.String("pattern", pattern))
}

// Invalidate is Clear under the name callers reach for when evicting a key
// family after a write.
func (c *TieredCache) Invalidate(ctx context.Context, pattern string) {
	c.Clear(ctx, pattern)
}

// Statistics returns per-tier counter snapshots keyed "l1" and "l2".
func (c *TieredCache) Statistics() map[string]LayerStats {
	l1 := c.stats.l1.snapshot()
	l1.Size = c.local.Len()

	return map[string]LayerStats{
		"l1": l1,
		"l2": c.stats.l2.snapshot(),
	}
}
