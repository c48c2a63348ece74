package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jipbab-note/backend/internal/domain"

	"github.com/go-redis/redis/v8"
)

// RedisStore persists records in Redis so favorites and community
// recipes survive restarts and are shared between instances. Keys are
// collection:key, values JSON documents without expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects using a redis:// URL and verifies the
// connection before returning.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, collection, key string, out interface{}) error {
	raw, err := s.client.Get(ctx, recordKey(collection, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ErrRecordNotFound
	}
	if err != nil {
		return fmt.Errorf("get record %s/%s: %w", collection, key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode record %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *RedisStore) Put(ctx context.Context, collection, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode record %s/%s: %w", collection, key, err)
	}
	if err := s.client.Set(ctx, recordKey(collection, key), raw, 0).Err(); err != nil {
		return fmt.Errorf("put record %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, collection, key string) error {
	if err := s.client.Del(ctx, recordKey(collection, key)).Err(); err != nil {
		return fmt.Errorf("delete record %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
