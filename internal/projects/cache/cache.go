package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nordiccodeworks/portfolio-backend/internal/projects/domain"
)

const (
	keyPrefix  = "portfolio:projects:" // All project cache keys live under this namespace
	versionKey = keyPrefix + "version" // Bumped on every mutation to evict the namespace
)

// ProjectCache is a read-through cache for project queries.
//
// Keys embed a namespace version. Invalidation bumps the version instead of
// scanning for matching keys, so any mutation conservatively evicts every
// cached read and list result. Entries written under old versions simply age
// out via TTL.
type ProjectCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProjectCache creates a cache with a fixed entry TTL.
func NewProjectCache(client *redis.Client, ttl time.Duration) *ProjectCache {
	return &ProjectCache{client: client, ttl: ttl}
}

// GetProject returns the cached project for id, or (nil, false) on miss.
// Redis errors degrade to a miss so callers fall back to the store.
func (c *ProjectCache) GetProject(ctx context.Context, id string) (*domain.Project, bool) {
	data, err := c.client.Get(ctx, c.projectKey(ctx, id)).Bytes()
	if err != nil {
		return nil, false
	}
	var p domain.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, false
	}
	return &p, true
}

// SetProject stores a read result. Failures are ignored; the cache is advisory.
func (c *ProjectCache) SetProject(ctx context.Context, p *domain.Project) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.projectKey(ctx, p.ID), data, c.ttl)
}

// GetList returns the cached result for a list query shape, or (nil, false) on miss.
func (c *ProjectCache) GetList(ctx context.Context, f domain.Filter) ([]domain.Project, bool) {
	data, err := c.client.Get(ctx, c.listKey(ctx, f)).Bytes()
	if err != nil {
		return nil, false
	}
	var items []domain.Project
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}
	return items, true
}

// SetList stores a list result keyed by its normalized filter set.
func (c *ProjectCache) SetList(ctx context.Context, f domain.Filter, items []domain.Project) {
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.listKey(ctx, f), data, c.ttl)
}

// Invalidate evicts the entire project namespace by bumping the version key.
func (c *ProjectCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		return
	}
	c.client.Expire(ctx, versionKey, c.versionTTL())
}

// versionTTL must outlive every entry written under the current version. If
// the version key expired first, the namespace would fall back to "0" and
// still-live stale entries would be served again.
func (c *ProjectCache) versionTTL() time.Duration {
	if ttl := 2 * c.ttl; ttl > 24*time.Hour {
		return ttl
	}
	return 24 * time.Hour
}

func (c *ProjectCache) version(ctx context.Context) string {
	v, err := c.client.Get(ctx, versionKey).Result()
	if err != nil {
		return "0"
	}
	return v
}

func (c *ProjectCache) projectKey(ctx context.Context, id string) string {
	return fmt.Sprintf("%sv%s:project:%s", keyPrefix, c.version(ctx), id)
}

func (c *ProjectCache) listKey(ctx context.Context, f domain.Filter) string {
	return fmt.Sprintf("%sv%s:list:%s", keyPrefix, c.version(ctx), normalizeFilter(f))
}

// normalizeFilter renders a filter as a stable key fragment so equivalent
// queries share a cache entry.
func normalizeFilter(f domain.Filter) string {
	after, before := "", ""
	if f.StartedAfter != nil {
		after = f.StartedAfter.UTC().Format("2006-01-02")
	}
	if f.StartedBefore != nil {
		before = f.StartedBefore.UTC().Format("2006-01-02")
	}
	featured := ""
	if f.Featured != nil {
		featured = strconv.FormatBool(*f.Featured)
	}
	return fmt.Sprintf("status=%s&tech=%s&after=%s&before=%s&featured=%s&limit=%d&offset=%d",
		f.Status, f.Technology, after, before, featured, f.Limit, f.Offset)
}
