package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupResponseCache(t *testing.T) (*ResponseCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewResponseCache(client, "test-pepper", 200*time.Second), mr
}

func TestResponseCache_RoundTrip(t *testing.T) {
	c, _ := setupResponseCache(t)
	ctx := context.Background()

	_, ok := c.Get(ctx, "What do you do?")
	assert.False(t, ok)

	c.Set(ctx, "What do you do?", "We build web applications.")

	got, ok := c.Get(ctx, "What do you do?")
	require.True(t, ok)
	assert.Equal(t, "We build web applications.", got)

	_, ok = c.Get(ctx, "A different question")
	assert.False(t, ok)
}

func TestResponseCache_KeysAreHashed(t *testing.T) {
	c, mr := setupResponseCache(t)

	c.Set(context.Background(), "secret visitor message", "reply")

	for _, key := range mr.Keys() {
		assert.NotContains(t, key, "secret visitor message",
			"raw message text must never appear in a cache key")
	}
}

func TestResponseCache_Expiry(t *testing.T) {
	c, mr := setupResponseCache(t)
	ctx := context.Background()

	c.Set(ctx, "What do you do?", "We build web applications.")
	mr.FastForward(201 * time.Second)

	_, ok := c.Get(ctx, "What do you do?")
	assert.False(t, ok)
}
