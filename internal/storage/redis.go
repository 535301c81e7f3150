package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis 基于 Redis 的存储
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis 创建 Redis 存储，ttl 为 0 表示不过期
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Get 读取
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	if r.client == nil {
		return "", false, ErrUnavailable
	}
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set 写入
func (r *Redis) Set(ctx context.Context, key, value string) error {
	if r.client == nil {
		return ErrUnavailable
	}
	return r.client.Set(ctx, key, value, r.ttl).Err()
}

// Remove 删除
func (r *Redis) Remove(ctx context.Context, key string) error {
	if r.client == nil {
		return ErrUnavailable
	}
	return r.client.Del(ctx, key).Err()
}
