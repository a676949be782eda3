package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nordiccodeworks/portfolio-backend/internal/chatbot"
)

const responseKeyPrefix = "portfolio:chatbot:resp:" // keyed by message hash

// ResponseCache serves previously generated replies for identical queries so
// repeated questions skip the completion provider. Keys are HMAC hashes of
// the query text; raw messages never reach redis.
type ResponseCache struct {
	client *redis.Client
	pepper string
	ttl    time.Duration
}

// NewResponseCache creates a response cache with the given hash pepper and TTL.
func NewResponseCache(client *redis.Client, pepper string, ttl time.Duration) *ResponseCache {
	return &ResponseCache{client: client, pepper: pepper, ttl: ttl}
}

// Get returns the cached reply for a query, or ("", false) on miss.
// Redis errors degrade to a miss.
func (c *ResponseCache) Get(ctx context.Context, query string) (string, bool) {
	val, err := c.client.Get(ctx, c.key(query)).Result()
	if err != nil || val == "" {
		return "", false
	}
	return val, true
}

// Set stores a reply for the query. Failures are ignored; the cache is advisory.
func (c *ResponseCache) Set(ctx context.Context, query, response string) {
	c.client.Set(ctx, c.key(query), response, c.ttl)
}

func (c *ResponseCache) key(query string) string {
	return responseKeyPrefix + chatbot.HashMessage(query, c.pepper)
}
