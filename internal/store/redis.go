package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GregMSThompson/dashboard-backend/internal/errs"
)

// RedisClient is the subset of go-redis used by the Redis KV.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisKV struct {
	client RedisClient
}

// NewRedisKV stores values without expiry.
func NewRedisKV(client RedisClient) *redisKV {
	return &redisKV{client: client}
}

func (r *redisKV) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errs.NewNotFoundError("key not found: " + key)
		}
		return nil, errs.NewDatabaseError("read", "failed to get key", err)
	}
	return val, nil
}

func (r *redisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return errs.NewDatabaseError("update", "failed to set key", err)
	}
	return nil
}

func (r *redisKV) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return errs.NewDatabaseError("delete", "failed to remove key", err)
	}
	return nil
}
