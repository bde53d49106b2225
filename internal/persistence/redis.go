package persistence

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisSink stores values as plain Redis strings under <prefix><key>, without expiry
type RedisSink struct {
	client *redis.Client
	prefix string
}

// NewRedisSink creates a RedisSink. The sink owns client and closes it on Close.
func NewRedisSink(client *redis.Client, prefix string) *RedisSink {
	return &RedisSink{client: client, prefix: prefix}
}

func (r *RedisSink) key(k string) string {
	return r.prefix + k
}

// Write sets the key to value
func (r *RedisSink) Write(ctx context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return &WriteError{Sink: "redis", Key: key, Cause: err}
	}
	return nil
}

// Close closes the underlying client
func (r *RedisSink) Close() error {
	return r.client.Close()
}
