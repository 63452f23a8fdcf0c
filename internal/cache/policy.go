package cache

import (
	"strings"
	"time"
)

// DefaultTTL applies to keys whose prefix has no policy entry.
const DefaultTTL = 5 * time.Minute

// ttlByType maps a cache key type (the segment before the first ':') to its
// default time-to-live.
var ttlByType = map[string]time.Duration{
	"auth_permission":  5 * time.Minute,
	"user_profile":     15 * time.Minute,
	"llm_response":     time.Hour,
	"embedding":        24 * time.Hour,
	"prometheus_query": time.Minute,
	"knowledge_base":   30 * time.Minute,
	"feature_flag":     time.Minute,
}

// KeyType extracts the type of a cache key: everything before the first ':',
// or the whole key when it has no separator. The type selects the default TTL
// and buckets telemetry.
func KeyType(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}

// TTLFor resolves the default TTL for a key from its type.
func TTLFor(key string) time.Duration {
	if ttl, ok := ttlByType[KeyType(key)]; ok {
		return ttl
	}
	return DefaultTTL
}
