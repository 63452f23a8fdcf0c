package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewClient(&Config{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func TestNewClient_RequiresConfig(t *testing.T) {
	_, err := NewClient(nil)
	assert.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	config := &Config{Address: mr.Addr()}
	client, err := NewClient(config)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, 10, config.PoolSize)
	assert.Equal(t, 2*time.Second, config.DialTimeout)
	assert.Equal(t, 2*time.Second, config.ReadTimeout)
	assert.Equal(t, 2*time.Second, config.WriteTimeout)

	assert.NoError(t, client.Ping(context.Background()))
}

func TestClient_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	client, _ := setupTestClient(t)

	_, found, err := client.Get(ctx, "missing")
	require.NoError(t, err, "a missing key is not an error")
	assert.False(t, found)

	require.NoError(t, client.Set(ctx, "k", []byte("payload"), time.Minute))

	value, found, err := client.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("payload"), value)

	require.NoError(t, client.Delete(ctx, "k"))
	_, found, err = client.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting nothing is a no-op.
	require.NoError(t, client.Delete(ctx))
}

func TestClient_SetHonorsTTL(t *testing.T) {
	ctx := context.Background()
	client, mr := setupTestClient(t)

	require.NoError(t, client.Set(ctx, "k", []byte("v"), time.Second))

	mr.FastForward(2 * time.Second)

	_, found, err := client.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestClient_Keys(t *testing.T) {
	ctx := context.Background()
	client, _ := setupTestClient(t)

	require.NoError(t, client.Set(ctx, "cache:a:1", []byte("1"), time.Minute))
	require.NoError(t, client.Set(ctx, "cache:a:2", []byte("2"), time.Minute))
	require.NoError(t, client.Set(ctx, "cache:b:1", []byte("3"), time.Minute))

	keys, err := client.Keys(ctx, "cache:a:*")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"cache:a:1", "cache:a:2"}, keys)

	keys, err = client.Keys(ctx, "cache:z:*")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestClient_Flush(t *testing.T) {
	ctx := context.Background()
	client, mr := setupTestClient(t)

	require.NoError(t, client.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, client.Set(ctx, "b", []byte("2"), time.Minute))

	require.NoError(t, client.Flush(ctx))

	assert.False(t, mr.Exists("a"))
	assert.False(t, mr.Exists("b"))
}

func TestClient_ErrorsAfterStoreGone(t *testing.T) {
	ctx := context.Background()
	client, mr := setupTestClient(t)

	mr.Close()

	_, _, err := client.Get(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, client.Set(ctx, "k", []byte("v"), time.Minute))
	assert.Error(t, client.Ping(ctx))
}
