package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Compile-time assertion that Redis implements KV.
var _ KV = (*Redis)(nil)

// Redis is a server-deployment persistence backend for installs that already
// run Redis. Records are plain string keys with no TTL; pruning is the
// reconciler's cleanup pass, not key expiry.
type Redis struct {
	client redis.UniversalClient
}

// NewRedis creates a Redis store over an existing client.
func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

// OpenRedis connects to the given address and verifies the connection.
func OpenRedis(ctx context.Context, addr, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return NewRedis(client), nil
}

// Get returns the value for key, or ErrNotFound.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return raw, nil
}

// Set writes value under key with no expiry.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete %q: %w", key, err)
	}
	return nil
}
