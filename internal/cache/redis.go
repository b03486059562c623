package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCache 基于 Redis 的缓存
type RedisCache struct {
	client  *redis.Client
	ttl     time.Duration
	timeout time.Duration
	logger  *zap.SugaredLogger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger *zap.SugaredLogger) *RedisCache {
	return &RedisCache{
		client:  client,
		ttl:     ttl,
		timeout: time.Second,
		logger:  logger.Named("redis_cache"),
	}
}

func (c *RedisCache) Get(ctx context.Context, code string) (*Entry, bool) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	val, err := c.client.Get(ctx, KeyPrefix+code).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warnf("读取缓存失败: %v", err)
		}
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(val, &entry); err != nil {
		c.logger.Warnf("缓存内容无法解析 %s: %v", code, err)
		return nil, false
	}
	return &entry, true
}

func (c *RedisCache) Set(ctx context.Context, entry Entry) {
	ttl := ttlFor(entry, c.ttl, time.Now())
	if ttl <= 0 {
		return
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 2*c.timeout)
	defer cancel()
	if err := c.client.Set(ctx, KeyPrefix+entry.ShortCode, data, ttl).Err(); err != nil {
		c.logger.Warnf("写入缓存失败: %v", err)
	}
}

func (c *RedisCache) Delete(ctx context.Context, codes ...string) {
	if len(codes) == 0 {
		return
	}
	keys := make([]string, len(codes))
	for i, code := range codes {
		keys[i] = KeyPrefix + code
	}

	ctx, cancel := context.WithTimeout(ctx, 2*c.timeout)
	defer cancel()
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warnf("删除缓存失败: %v", err)
	}
}
