package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKeyPrefix namespaces the task list keys inside a shared redis.
const RedisKeyPrefix = "todo:"

// RedisKV stores keys in redis without expiry.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV wraps an existing client.
func NewRedisKV(client *redis.Client) *RedisKV {
	if client == nil {
		panic("storage.NewRedisKV: client is nil")
	}
	return &RedisKV{client: client}
}

// NewRedisKVFromURL parses a redis:// URL and connects lazily.
func NewRedisKVFromURL(rawURL string) (*RedisKV, error) {
	if rawURL == "" {
		return nil, errors.New("redis storage: url required")
	}
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("redis storage: %w", err)
	}
	return NewRedisKV(redis.NewClient(opts)), nil
}

// Close closes the underlying client.
func (r *RedisKV) Close() error {
	return r.client.Close()
}

// Get implements KV.
func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, RedisKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis storage: get %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements KV.
func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, RedisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis storage: set %s: %w", key, err)
	}
	return nil
}

// Delete implements KV.
func (r *RedisKV) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, RedisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis storage: delete %s: %w", key, err)
	}
	return nil
}
