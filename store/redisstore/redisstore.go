// Package redisstore implements store.Backend on Redis.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/reoring/tasl/store"
)

// Options configures key naming and expiry.
type Options struct {
	// Prefix is prepended to every key, e.g. "tasl:".
	Prefix string
	// TTL expires records after the given duration. Zero keeps them forever.
	TTL time.Duration
}

// Backend stores records as Redis strings.
type Backend struct {
	client redis.Cmdable
	opt    Options
}

// New wraps a Redis client. Any redis.Cmdable works, including cluster and
// ring clients.
func New(client redis.Cmdable, opt Options) *Backend {
	return &Backend{client: client, opt: opt}
}

// Dial connects to addr and pings the server before returning.
func Dial(ctx context.Context, addr string, opt Options) (*Backend, *redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return New(client, opt), client, nil
}

func (b *Backend) key(k string) string { return b.opt.Prefix + k }

func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

func (b *Backend) Put(ctx context.Context, key string, data []byte) error {
	if err := b.client.Set(ctx, b.key(key), data, b.opt.TTL).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (b *Backend) Delete(ctx context.Context, key string) error {
	n, err := b.client.Del(ctx, b.key(key)).Result()
	if err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Ensure Backend implements store.Backend.
var _ store.Backend = (*Backend)(nil)
