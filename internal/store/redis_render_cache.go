package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisRenderCache implements RenderCache for Redis. It holds assembled
// documents so the public render path can serve a warm read without
// hitting Postgres or re-running assembly.
type RedisRenderCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisRenderCache creates a new Redis render cache
func NewRedisRenderCache(host string, port int, password string, db int, logger *zap.Logger) (*RedisRenderCache, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisRenderCache{
		client: client,
		logger: logger,
	}, nil
}

func renderKey(slug string) string {
	return "render:" + slug
}

// Get retrieves a cached document
func (c *RedisRenderCache) Get(ctx context.Context, slug string) (string, error) {
	document, err := c.client.Get(ctx, renderKey(slug)).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	return document, nil
}

// Set stores a document with TTL
func (c *RedisRenderCache) Set(ctx context.Context, slug, document string, ttl time.Duration) error {
	return c.client.Set(ctx, renderKey(slug), document, ttl).Err()
}

// Invalidate drops the cached document for a slug
func (c *RedisRenderCache) Invalidate(ctx context.Context, slug string) error {
	return c.client.Del(ctx, renderKey(slug)).Err()
}

// Ping checks the Redis connection
func (c *RedisRenderCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client
func (c *RedisRenderCache) Close() error {
	return c.client.Close()
}
