package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Service is a JSON cache over Redis. Callers treat it as best-effort: a
// cache error never fails the read path, it only costs a trip to the source.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// GetOrSet is the cache-aside read: on a miss it runs fetch, fills the
	// cache under key, and unmarshals the fetched value into dest.
	GetOrSet(ctx context.Context, key string, ttl time.Duration, fetch func() (interface{}, error), dest interface{}) error
}

type service struct {
	client *redis.Client
}

func NewService(client *redis.Client) Service {
	return &service{client: client}
}

func (s *service) Get(ctx context.Context, key string, dest interface{}) error {
	raw, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("cache decode %s: %w", key, err)
	}
	return nil
}

func (s *service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}

	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache delete %s: %w", key, err)
	}
	return nil
}

func (s *service) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetch func() (interface{}, error), dest interface{}) error {
	err := s.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		log.Printf("cache read for %s failed, falling back to source: %v", key, err)
	}

	// Fetch errors pass through unchanged so callers keep their sentinels.
	value, err := fetch()
	if err != nil {
		return err
	}

	if err := s.Set(ctx, key, value, ttl); err != nil {
		log.Printf("cache fill for %s failed: %v", key, err)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return json.Unmarshal(data, dest)
}
