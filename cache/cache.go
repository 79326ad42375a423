package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores serialized catalog responses. Get returns "" on a miss.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
	GenerateKey(operation, key string) string
}

type redisCache struct {
	client    *redis.Client
	namespace string
}

func NewRedisCache(addr, namespace string) Cache {
	return &redisCache{
		client:    redis.NewClient(&redis.Options{Addr: addr}),
		namespace: namespace,
	}
}

func (r redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r redisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r redisCache) GenerateKey(operation, key string) string {
	return generateKey(r.namespace, operation, key)
}

func generateKey(namespace, operation, key string) string {
	return fmt.Sprintf("%s:%s:%s", namespace, operation, key)
}

// Nop disables caching.
type Nop struct{}

func (Nop) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (Nop) Get(context.Context, string) (string, error)                  { return "", nil }
func (Nop) Delete(context.Context, ...string) error                       { return nil }
func (Nop) GenerateKey(operation, key string) string                      { return generateKey("nop", operation, key) }
