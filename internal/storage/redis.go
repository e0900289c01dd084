package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBackend keeps values in Redis under a key prefix
type RedisBackend struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisBackend creates and pings a Redis client with optional password auth
func NewRedisBackend(ctx context.Context, addr, password, prefix string) (*RedisBackend, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &RedisBackend{rdb: rdb, prefix: prefix}, nil
}

// Get returns the value stored under key
func (b *RedisBackend) Get(key string) (string, error) {
	val, err := b.rdb.Get(context.Background(), b.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return val, nil
}

// Set stores value under key without expiry
func (b *RedisBackend) Set(key, value string) error {
	if err := b.rdb.Set(context.Background(), b.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (b *RedisBackend) Delete(key string) error {
	if err := b.rdb.Del(context.Background(), b.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Close closes the client
func (b *RedisBackend) Close() error {
	return b.rdb.Close()
}
