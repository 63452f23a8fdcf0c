// Package cache implements the tiered caching layer used by the API server
// for expensive lookups (authorization checks, LLM responses, embeddings,
// profile reads).
//
// Two tiers are combined:
//
//  1. Local tier (L1) - bounded in-process LRU with per-entry TTL, backed by
//     github.com/hashicorp/golang-lru. Never fails at runtime.
//
//  2. Remote tier (L2) - Redis-backed shared tier, fail-soft: connectivity is
//     probed once at startup, and every operation converts store errors into
//     a miss (reads) or a no-op (writes) so a degraded Redis can never fail a
//     request that L1 alone could serve.
//
// TieredCache orchestrates the tiers (L1 first, promotion on L2 hit,
// write-through sets) and keeps per-tier hit/miss statistics. StampedeGuard
// collapses concurrent recomputations of a cold key into a single fetch via
// golang.org/x/sync/singleflight. Cacheable wraps an arbitrary fetch function
// with deterministic key derivation and stampede protection.
//
// Usage:
//
//	svc, err := cache.New(cache.Config{LocalCapacity: 1000, Store: store})
//	svc.Set(ctx, "user_profile:42", profile, 0) // TTL resolved from prefix
//	v, ok := svc.Get(ctx, "user_profile:42")
//
//	lookup := cache.Cacheable[Profile](svc.Guard, "user_profile",
//		func(ctx context.Context, args ...any) (Profile, error) {
//			return loadProfile(ctx, args[0].(string))
//		})
//	profile, err := lookup(ctx, "42")
package cache
