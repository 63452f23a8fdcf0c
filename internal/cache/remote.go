package cache

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/sony/gobreaker"

	"github.com/vishnu2kmohan/mcp-server-langgraph-sub004/internal/common/errors"
	"github.com/vishnu2kmohan/mcp-server-langgraph-sub004/internal/common/logging"
)

const (
	// probeTimeout bounds the one-time startup connectivity probe.
	probeTimeout = 2 * time.Second
	// operationTimeout bounds every individual store call so a degraded
	// store cannot stall callers relying on L1 alone.
	operationTimeout = 2 * time.Second
)

// RemoteTier is the shared cache tier (L2) backed by an external key-value
// store. It is fail-soft end to end: availability is probed exactly once at
// construction, every operation runs behind a circuit breaker with a short
// timeout, and any store or serialization error is logged and absorbed - a
// read error degrades to a miss, a write error to a no-op. Remote failures
// never propagate to callers and never affect L1.
type RemoteTier struct {
	store     Store
	codec     Codec
	breaker   *gobreaker.CircuitBreaker
	logger    logging.Logger
	namespace string
	available bool
}

// NewRemoteTier wraps store with the cache's namespace prefix. The
// connectivity probe runs here; on failure the tier logs once and stays a
// no-op for the process lifetime, so a Redis outage at startup costs one
// timed-out ping rather than a retry storm.
func NewRemoteTier(store Store, namespace string, logger logging.Logger) *RemoteTier {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	t := &RemoteTier{
		store:     store,
		codec:     JSONCodec{},
		namespace: namespace,
		logger:    logger.WithFields(logging.String("component", "cache.remote")),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "cache-remote",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	if err := store.Ping(ctx); err != nil {
		t.logger.Warn("remote cache store unreachable, L2 disabled for this process",
			logging.Err(errors.NewRemoteUnavailableError(err)))
		return t
	}

	t.available = true
	return t
}

// Available reports whether the startup probe succeeded.
func (t *RemoteTier) Available() bool {
	return t.available
}

func (t *RemoteTier) storageKey(key string) string {
	return t.namespace + key
}

type remoteResult struct {
	value interface{}
	found bool
}

// Get returns the decoded value for key, or a miss on absence or any store
// error.
func (t *RemoteTier) Get(ctx context.Context, key string) (interface{}, bool) {
	if !t.available {
		return nil, false
	}

	res, err := t.breaker.Execute(func() (interface{}, error) {
		opCtx, cancel := context.WithTimeout(ctx, operationTimeout)
		defer cancel()

		raw, found, err := t.store.Get(opCtx, t.storageKey(key))
		if err != nil {
			return nil, err
		}
		if !found {
			return remoteResult{}, nil
		}
		value, err := t.codec.Decode(raw)
		if err != nil {
			return nil, err
		}
		return remoteResult{value: value, found: true}, nil
	})
	if err != nil {
		t.logger.Warn("remote cache get failed, treating as miss",
			logging.Err(classifyStoreError(err).WithContext("key", key)))
		return nil, false
	}

	r := res.(remoteResult)
	return r.value, r.found
}

// Set encodes and stores value under key for ttl, reporting whether the
// value was actually stored. Encode and store failures are absorbed; an L1
// write in the same call is unaffected.
func (t *RemoteTier) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) bool {
	if !t.available {
		return false
	}

	raw, err := t.codec.Encode(value)
	if err != nil {
		t.logger.Warn("remote cache set skipped, value not serializable",
			logging.String("key", key), logging.Err(err))
		return false
	}

	if _, err := t.breaker.Execute(func() (interface{}, error) {
		opCtx, cancel := context.WithTimeout(ctx, operationTimeout)
		defer cancel()
		return nil, t.store.Set(opCtx, t.storageKey(key), raw, ttl)
	}); err != nil {
		t.logger.Warn("remote cache set failed",
			logging.Err(classifyStoreError(err).WithContext("key", key)))
		return false
	}
	return true
}

// Delete removes key, reporting whether the store accepted the deletion.
// Absence and store errors are both no-ops.
func (t *RemoteTier) Delete(ctx context.Context, key string) bool {
	if !t.available {
		return false
	}

	if _, err := t.breaker.Execute(func() (interface{}, error) {
		opCtx, cancel := context.WithTimeout(ctx, operationTimeout)
		defer cancel()
		return nil, t.store.Delete(opCtx, t.storageKey(key))
	}); err != nil {
		t.logger.Warn("remote cache delete failed",
			logging.Err(classifyStoreError(err).WithContext("key", key)))
		return false
	}
	return true
}

// Clear deletes every key matching pattern within the tier's namespace. An
// empty pattern flushes the whole store, which is safe only because the cache
// owns its database exclusively.
func (t *RemoteTier) Clear(ctx context.Context, pattern string) {
	if !t.available {
		return
	}

	if _, err := t.breaker.Execute(func() (interface{}, error) {
		opCtx, cancel := context.WithTimeout(ctx, operationTimeout)
		defer cancel()

		if pattern == "" {
			return nil, t.store.Flush(opCtx)
		}

		keys, err := t.store.Keys(opCtx, t.namespace+pattern)
		if err != nil {
			return nil, err
		}
		if len(keys) == 0 {
			return nil, nil
		}
		return nil, t.store.Delete(opCtx, keys...)
	}); err != nil {
		t.logger.Warn("remote cache clear failed",
			logging.Err(classifyStoreError(err).WithContext("pattern", pattern)))
	}
}

// classifyStoreError maps a failed store call onto the error taxonomy for
// logging: deadline overruns become timeout errors, everything else a remote
// operation error.
func classifyStoreError(err error) *errors.AppError {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(err, errors.ErrTypeTimeout, "remote cache operation timed out")
	}
	return errors.Wrap(err, errors.ErrTypeRemoteOperation, "remote cache operation failed")
}
