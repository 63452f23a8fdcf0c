package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vishnu2kmohan/mcp-server-langgraph-sub004/internal/common/errors"
)

// localEntry is a live L1 value plus its expiry instant.
type localEntry struct {
	value     interface{}
	expiresAt time.Time
}

func (e localEntry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// LocalTier is the bounded in-process cache (L1). LRU bookkeeping is
// delegated to hashicorp/golang-lru; expiry is checked lazily on read, there
// is no background sweep. L1 operations never fail at runtime.
type LocalTier struct {
	// mu makes the expiry check-and-remove in Get atomic with respect to
	// concurrent writes; the LRU's own lock covers single calls only.
	mu      sync.Mutex
	entries *lru.Cache[string, localEntry]
	now     func() time.Time
}

// NewLocalTier creates an L1 tier holding at most capacity entries.
func NewLocalTier(capacity int) (*LocalTier, error) {
	if capacity <= 0 {
		return nil, errors.NewValidationError(
			fmt.Sprintf("local cache capacity must be positive, got %d", capacity))
	}
	entries, err := lru.New[string, localEntry](capacity)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	return &LocalTier{entries: entries, now: time.Now}, nil
}

// Get returns the live value for key and refreshes its recency. An entry past
// its TTL is removed and reported as a miss.
func (l *LocalTier) Get(ctx context.Context, key string) (interface{}, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries.Get(key)
	if !ok {
		return nil, false
	}
	if entry.expired(l.now()) {
		l.entries.Remove(key)
		return nil, false
	}
	return entry.value, true
}

// Set stores value under key for ttl, fully replacing any existing entry.
// When the tier is at capacity the least-recently-used entry is evicted.
func (l *LocalTier) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries.Add(key, localEntry{value: value, expiresAt: l.now().Add(ttl)})
}

// Delete removes key. Absent keys are a no-op.
func (l *LocalTier) Delete(ctx context.Context, key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries.Remove(key)
}

// Clear removes every entry.
func (l *LocalTier) Clear(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries.Purge()
}

// Len returns the number of stored entries, counting entries whose TTL has
// elapsed but which no read has expired yet.
func (l *LocalTier) Len() int {
	return l.entries.Len()
}
