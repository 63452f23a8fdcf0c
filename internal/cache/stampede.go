package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// FetchFunc produces the value for a key on a cache miss.
type FetchFunc func(ctx context.Context) (interface{}, error)

// StampedeGuard collapses concurrent misses for the same key into a single
// fetch. Waiters share the one in-flight result instead of hammering the
// backing source, and the singleflight registry releases a key's slot as soon
// as its flight completes, so the guard's memory footprint tracks the number
// of concurrent distinct keys rather than every key ever seen.
type StampedeGuard struct {
	cache *TieredCache
	group singleflight.Group
}

// NewStampedeGuard wraps cache with per-key fetch coalescing.
func NewStampedeGuard(cache *TieredCache) *StampedeGuard {
	return &StampedeGuard{cache: cache}
}

// GetWithLock returns the cached value for key, or runs fetch exactly once
// across all concurrent callers and caches the result for ttl. A fetch error
// is returned to every waiter and nothing is cached. A caller whose ctx is
// cancelled stops waiting immediately; the flight itself runs to completion
// so other waiters still get the value.
func (g *StampedeGuard) GetWithLock(ctx context.Context, key string, fetch FetchFunc, ttl time.Duration) (interface{}, error) {
	value, _, err := g.getWithLock(ctx, key, fetch, ttl, LevelAll)
	return value, err
}

func (g *StampedeGuard) getWithLock(ctx context.Context, key string, fetch FetchFunc, ttl time.Duration, level Level) (interface{}, bool, error) {
	if value, found := g.cache.GetLevel(ctx, key, level); found {
		return value, true, nil
	}

	ch := g.group.DoChan(key, func() (interface{}, error) {
		// The flight may outlive the caller that started it; detach from
		// that caller's cancellation so an abandoned wait never aborts
		// the fetch for the remaining waiters.
		flightCtx := context.WithoutCancel(ctx)

		// Double-check: another flight may have populated the cache
		// between our miss and this goroutine starting.
		if value, found := g.cache.GetLevel(flightCtx, key, level); found {
			return flightResult{value: value, cached: true}, nil
		}

		value, err := fetch(flightCtx)
		if err != nil {
			return nil, err
		}

		g.cache.SetLevel(flightCtx, key, value, ttl, level)
		return flightResult{value: value}, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, false, res.Err
		}
		fr := res.Val.(flightResult)
		return fr.value, fr.cached, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// flightResult carries a flight's value plus whether the double-checked read
// found it already cached.
type flightResult struct {
	value  interface{}
	cached bool
}
