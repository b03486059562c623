package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// LocalCache 未配置 Redis 时使用的进程内缓存
type LocalCache struct {
	store *gocache.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewLocalCache(ttl, cleanupInterval time.Duration) *LocalCache {
	return &LocalCache{
		store: gocache.New(ttl, cleanupInterval),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (c *LocalCache) Get(_ context.Context, code string) (*Entry, bool) {
	v, ok := c.store.Get(KeyPrefix + code)
	if !ok {
		return nil, false
	}
	entry := v.(Entry)
	return &entry, true
}

func (c *LocalCache) Set(_ context.Context, entry Entry) {
	ttl := ttlFor(entry, c.ttl, c.now())
	if ttl <= 0 {
		return
	}
	c.store.Set(KeyPrefix+entry.ShortCode, entry, ttl)
}

func (c *LocalCache) Delete(_ context.Context, codes ...string) {
	for _, code := range codes {
		c.store.Delete(KeyPrefix + code)
	}
}
