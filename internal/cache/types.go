package cache

import (
	"context"
	"strings"
	"time"
)

// Level selects which cache tiers an operation touches.
type Level int

const (
	// LevelL1 is the in-process tier.
	LevelL1 Level = 1 << iota
	// LevelL2 is the shared remote tier.
	LevelL2
)

// LevelAll touches both tiers. It is the default for every operation.
const LevelAll = LevelL1 | LevelL2

// HasL1 reports whether the level includes the local tier.
func (l Level) HasL1() bool { return l&LevelL1 != 0 }

// HasL2 reports whether the level includes the remote tier.
func (l Level) HasL2() bool { return l&LevelL2 != 0 }

// String returns a readable form such as "l1", "l2" or "l1|l2".
func (l Level) String() string {
	var parts []string
	if l.HasL1() {
		parts = append(parts, "l1")
	}
	if l.HasL2() {
		parts = append(parts, "l2")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Store is the remote key-value client the L2 tier is built on. Missing keys
// are reported via the found flag, never as errors. internal/redis.Client is
// the production implementation.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
	Flush(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Telemetry receives cache events. Implementations must be safe for
// concurrent use and must never fail; the cache calls them without any
// defensive handling. cacheType is the key's type per KeyType.
type Telemetry interface {
	RecordHit(layer, cacheType string)
	RecordMiss(layer, cacheType string)
	RecordSet(layer, cacheType string)
	// RecordLookup observes one wrapped call: the derived key, the tier
	// level it was routed to and whether the cache already held the value.
	RecordLookup(key string, level Level, hit bool)
}

// NopTelemetry is the default sink when no collector is configured.
type NopTelemetry struct{}

// RecordHit implements Telemetry.
func (NopTelemetry) RecordHit(string, string) {}

// RecordMiss implements Telemetry.
func (NopTelemetry) RecordMiss(string, string) {}

// RecordSet implements Telemetry.
func (NopTelemetry) RecordSet(string, string) {}

// RecordLookup implements Telemetry.
func (NopTelemetry) RecordLookup(string, Level, bool) {}
