package cache

import (
	"context"
	"time"
)

// KeyPrefix 缓存键前缀
const KeyPrefix = "shortlink:"

// Entry 跳转所需的最小信息
type Entry struct {
	ShortCode   string     `json:"shortCode"`
	OriginalURL string     `json:"originalUrl"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

// LinkCache 跳转查询缓存。缓存只是加速手段，任何失败都按未命中处理。
type LinkCache interface {
	Get(ctx context.Context, code string) (*Entry, bool)
	Set(ctx context.Context, entry Entry)
	Delete(ctx context.Context, codes ...string)
}

// ttlFor 计算缓存时间，不超过记录的过期时间。返回 <= 0 表示不应缓存。
func ttlFor(entry Entry, maxTTL time.Duration, now time.Time) time.Duration {
	ttl := maxTTL
	if entry.ExpiresAt != nil {
		remaining := entry.ExpiresAt.Sub(now)
		if remaining < ttl {
			ttl = remaining
		}
	}
	return ttl
}

// Noop 不缓存
type Noop struct{}

func (Noop) Get(context.Context, string) (*Entry, bool) { return nil, false }
func (Noop) Set(context.Context, Entry)                 {}
func (Noop) Delete(context.Context, ...string)          {}
