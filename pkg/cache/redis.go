package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a small read-through cache for availability numbers. A nil *Cache
// is valid and disables caching, so callers never have to branch on whether
// redis is configured.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(addr, password string, db int, ttl time.Duration) *Cache {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) GetInt(ctx context.Context, key string) (int, bool) {
	if c == nil {
		return 0, false
	}
	v, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *Cache) SetInt(ctx context.Context, key string, value int) {
	if c == nil {
		return
	}
	_ = c.rdb.Set(ctx, key, strconv.Itoa(value), c.ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
