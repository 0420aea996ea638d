package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisRecords stores named records as Redis strings.
// It satisfies history.RecordStore.
type RedisRecords struct {
	client *redis.Client
}

// NewRedisRecords returns a RedisRecords using client.
func NewRedisRecords(client *redis.Client) *RedisRecords {
	return &RedisRecords{client: client}
}

// Get returns the value of the named record, or nil when it does not exist.
func (r *RedisRecords) Get(ctx context.Context, name string) ([]byte, error) {
	b, err := r.client.Get(ctx, r.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record %q: %w", name, err)
	}
	return b, nil
}

// Put creates or replaces the named record. Records never expire.
func (r *RedisRecords) Put(ctx context.Context, name string, value []byte) error {
	if err := r.client.Set(ctx, r.key(name), value, 0).Err(); err != nil {
		return fmt.Errorf("put record %q: %w", name, err)
	}
	return nil
}

// Delete removes the named record if present.
func (r *RedisRecords) Delete(ctx context.Context, name string) error {
	if err := r.client.Del(ctx, r.key(name)).Err(); err != nil {
		return fmt.Errorf("delete record %q: %w", name, err)
	}
	return nil
}

// Ping checks that the server is reachable.
func (r *RedisRecords) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (r *RedisRecords) Close() error {
	return r.client.Close()
}

func (r *RedisRecords) key(name string) string {
	return "smartquiz:record:" + name
}
