package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fhuszti/music-catalog-ms-go/internal/logger"
	"github.com/fhuszti/music-catalog-ms-go/internal/port"
	"github.com/redis/go-redis/v9"
)

const (
	listKey     = "musics:list"
	listEtagKey = "musics:list:etag"
)

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) GetMusicList(ctx context.Context) ([]byte, error) {
	logger.Debug(ctx, "getting music list from cache")

	val, err := c.client.Get(ctx, listKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) GetEtagMusicList(ctx context.Context) (string, error) {
	val, err := c.client.Get(ctx, listEtagKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

// SetMusicList stores the rendered list. Failures are logged and swallowed:
// the list is always recomputable from the database.
func (c *Cache) SetMusicList(ctx context.Context, data []byte, validUntil time.Time) {
	logger.Debugf(ctx, "caching music list, valid until %s", validUntil.Format(time.RFC1123))

	if err := c.client.Set(ctx, listKey, data, time.Until(validUntil)).Err(); err != nil {
		logger.Warnf(ctx, "could not cache music list: %v", err)
	}
}

func (c *Cache) SetEtagMusicList(ctx context.Context, etag string, validUntil time.Time) {
	if err := c.client.Set(ctx, listEtagKey, etag, time.Until(validUntil)).Err(); err != nil {
		logger.Warnf(ctx, "could not cache music list etag: %v", err)
	}
}

// DeleteMusicList drops both the list and its ETag.
func (c *Cache) DeleteMusicList(ctx context.Context) error {
	logger.Debug(ctx, "invalidating cached music list")

	if err := c.client.Del(ctx, listKey, listEtagKey).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}
