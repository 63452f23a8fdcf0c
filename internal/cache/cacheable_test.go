package cache

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildKey(t *testing.T) {
	t.Run("positional arguments", func(t *testing.T) {
		key := BuildKey("user_profile", 42, "en")
		assert.Equal(t, "user_profile:42:en", key)
	})

	t.Run("named arguments sorted", func(t *testing.T) {
		key := BuildKey("llm_response", "prompt1", Named{"temp": "0.7", "model": "gpt-4"})
		assert.Equal(t, "llm_response:prompt1:model=gpt-4:temp=0.7", key)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		a := BuildKey("llm_response", Named{"b": "2", "a": "1", "c": "3"})
		b := BuildKey("llm_response", Named{"c": "3", "a": "1", "b": "2"})
		assert.Equal(t, a, b)
	})

	t.Run("prefix only", func(t *testing.T) {
		assert.Equal(t, "feature_flag", BuildKey("feature_flag"))
	})
}

func TestBuildKeyLongKeysCollapse(t *testing.T) {
	long := strings.Repeat("x", 300)
	key := BuildKey("llm_response", long)

	assert.LessOrEqual(t, len(key), MaxKeyLength)
	assert.Equal(t,
		fmt.Sprintf("llm_response:hash:%016x", xxhash.Sum64String("llm_response:"+long)),
		key)
	assert.Equal(t, "llm_response", KeyType(key), "hashed keys keep their type")

	other := BuildKey("llm_response", strings.Repeat("y", 300))
	assert.NotEqual(t, key, other)
}

func TestCacheableCachesResults(t *testing.T) {
	guard := newTestGuard(t)
	ctx := context.Background()

	var calls atomic.Int64
	lookup := Cacheable(guard, "user_profile", func(ctx context.Context, args ...interface{}) (string, error) {
		calls.Add(1)
		return fmt.Sprintf("profile-%v", args[0]), nil
	})

	for i := 0; i < 3; i++ {
		value, err := lookup(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, "profile-42", value)
	}
	assert.Equal(t, int64(1), calls.Load(), "repeat calls are served from cache")

	value, err := lookup(ctx, 43)
	require.NoError(t, err)
	assert.Equal(t, "profile-43", value)
	assert.Equal(t, int64(2), calls.Load(), "different arguments miss independently")
}

type profile struct {
	Name  string `json:"name"`
	Admin bool   `json:"admin"`
}

func TestCacheableStructRoundTripThroughL2(t *testing.T) {
	_, tc := newTestTiered(t, 10)
	guard := NewStampedeGuard(tc)
	ctx := context.Background()

	var calls atomic.Int64
	lookup := Cacheable(guard, "user_profile", func(ctx context.Context, args ...interface{}) (profile, error) {
		calls.Add(1)
		return profile{Name: "ada", Admin: true}, nil
	})

	first, err := lookup(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, profile{Name: "ada", Admin: true}, first)

	// Drop the L1 copy so the second call decodes the L2 JSON form back
	// into the concrete type.
	tc.local.Clear(ctx)

	second, err := lookup(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), calls.Load())
}

func TestCacheableStringRoundTripThroughL2(t *testing.T) {
	_, tc := newTestTiered(t, 10)
	guard := NewStampedeGuard(tc)
	ctx := context.Background()

	lookup := Cacheable(guard, "feature_flag", func(ctx context.Context, args ...interface{}) (string, error) {
		return "42", nil
	})

	first, err := lookup(ctx, "x")
	require.NoError(t, err)
	require.Equal(t, "42", first)

	// Serve the second call from L2; the JSON-looking string must survive.
	tc.local.Clear(ctx)

	second, err := lookup(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCacheableExplicitTTL(t *testing.T) {
	mr, tc := newTestTiered(t, 10)
	guard := NewStampedeGuard(tc)
	ctx := context.Background()

	lookup := Cacheable(guard, "user_profile", func(ctx context.Context, args ...interface{}) (string, error) {
		return "ada", nil
	}, WithTTL(10*time.Second))

	_, err := lookup(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, mr.TTL("cache:user_profile:1"))
}

func TestCacheableL1OnlyLevel(t *testing.T) {
	mr, tc := newTestTiered(t, 10)
	guard := NewStampedeGuard(tc)
	ctx := context.Background()

	var calls atomic.Int64
	lookup := Cacheable(guard, "user_profile", func(ctx context.Context, args ...interface{}) (string, error) {
		calls.Add(1)
		return "ada", nil
	}, WithLevel(LevelL1))

	_, err := lookup(ctx, 1)
	require.NoError(t, err)
	assert.False(t, mr.Exists("cache:user_profile:1"), "L1-scoped wrapper never writes L2")

	_, err = lookup(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())
}

func TestDecodeAs(t *testing.T) {
	t.Run("live value asserts directly", func(t *testing.T) {
		p, err := decodeAs[profile](profile{Name: "ada"})
		require.NoError(t, err)
		assert.Equal(t, "ada", p.Name)
	})

	t.Run("generic JSON shape reshapes", func(t *testing.T) {
		p, err := decodeAs[profile](map[string]interface{}{"name": "ada", "admin": true})
		require.NoError(t, err)
		assert.Equal(t, profile{Name: "ada", Admin: true}, p)
	})

	t.Run("incompatible shape errors", func(t *testing.T) {
		_, err := decodeAs[profile]("not an object")
		assert.Error(t, err)
	})
}
