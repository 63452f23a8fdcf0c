package cache

import "sync/atomic"

// LayerStats is a point-in-time snapshot of one tier's counters.
type LayerStats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Sets    int64   `json:"sets"`
	Deletes int64   `json:"deletes"`
	HitRate float64 `json:"hit_rate"`
	Size    int     `json:"size"`
}

// layerCounters accumulates per-tier operation counts. All fields are atomic
// so the hot path never takes a lock.
type layerCounters struct {
	hits    atomic.Int64
	misses  atomic.Int64
	sets    atomic.Int64
	deletes atomic.Int64
}

func (c *layerCounters) snapshot() LayerStats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}

	return LayerStats{
		Hits:    hits,
		Misses:  misses,
		Sets:    c.sets.Load(),
		Deletes: c.deletes.Load(),
		HitRate: rate,
	}
}

type statistics struct {
	l1 layerCounters
	l2 layerCounters
}
