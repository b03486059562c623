package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPoolSize    = 20
	defaultPingTimeout = 5 * time.Second
)

// Options 短链接缓存使用的 Redis 连接参数
type Options struct {
	Host     string
	Port     int
	Password string
	DB       int
	// PoolSize <= 0 时使用 20
	PoolSize int
	// PingTimeout 启动时探活的超时，<= 0 时使用 5s
	PingTimeout time.Duration
}

func (o *Options) clientOptions() *redis.Options {
	poolSize := o.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	return &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", o.Host, o.Port),
		Password: o.Password,
		DB:       o.DB,
		PoolSize: poolSize,
	}
}

func (o *Options) pingTimeout() time.Duration {
	if o.PingTimeout <= 0 {
		return defaultPingTimeout
	}
	return o.PingTimeout
}

// NewRedisClient 创建 Redis 客户端并探活。
// Host 为空表示未启用 Redis，返回 nil, nil，调用方退回进程内缓存。
func NewRedisClient(opts *Options) (*redis.Client, error) {
	if opts == nil || opts.Host == "" {
		return nil, nil
	}

	client := redis.NewClient(opts.clientOptions())

	ctx, cancel := context.WithTimeout(context.Background(), opts.pingTimeout())
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("Redis连接失败(%s): %w", client.Options().Addr, err)
	}
	return client, nil
}
