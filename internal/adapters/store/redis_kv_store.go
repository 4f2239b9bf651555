package store

import (
	"context"
	"errors"
	"field-route-service/internal/platform/obs"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKeyValueStore keeps route state as plain Redis strings under an optional prefix.
type RedisKeyValueStore struct {
	client *redis.Client
	prefix string
}

func NewRedisKeyValueStore(addr string, password string, db int, prefix string) *RedisKeyValueStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisKeyValueStore{client: rdb, prefix: prefix}
}

// NewRedisKeyValueStoreWithClient wraps an existing client.
func NewRedisKeyValueStoreWithClient(client *redis.Client, prefix string) *RedisKeyValueStore {
	return &RedisKeyValueStore{client: client, prefix: prefix}
}

func (s *RedisKeyValueStore) Get(ctx context.Context, key string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "route.kv.redis.Get")(&err)

	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return v, true, nil
}

// SetMany writes all entries in a MULTI/EXEC block.
func (s *RedisKeyValueStore) SetMany(ctx context.Context, entries map[string]string) (err error) {
	defer obs.Time(ctx, "route.kv.redis.SetMany")(&err)

	if len(entries) == 0 {
		return nil
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range entries {
			pipe.Set(ctx, s.prefix+k, v, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set route state: %w", err)
	}
	return nil
}

func (s *RedisKeyValueStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisKeyValueStore) Close() error {
	return s.client.Close()
}
