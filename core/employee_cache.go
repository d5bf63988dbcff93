package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// EmployeeCache is a best-effort read cache for employee lookups. Cache
// failures must never fail a request, so the interface has no error returns.
type EmployeeCache interface {
	Get(ctx context.Context, id int64) (*Employee, bool)
	Put(ctx context.Context, e Employee)
	Invalidate(ctx context.Context, id int64)
}

// NewRedisClient returns a configured go-redis client from URL (e.g., redis://localhost:6379/0).
func NewRedisClient(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, errors.New("empty redis url")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}

// RedisEmployeeCache stores employees as JSON values with a fixed TTL.
type RedisEmployeeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisEmployeeCache(client *redis.Client, ttl time.Duration) *RedisEmployeeCache {
	return &RedisEmployeeCache{client: client, ttl: ttl}
}

func employeeKey(id int64) string {
	return fmt.Sprintf("employee:%d", id)
}

// Get returns the cached employee, or a miss on absence or any redis/decoding error.
func (c *RedisEmployeeCache) Get(ctx context.Context, id int64) (*Employee, bool) {
	data, err := c.client.Get(ctx, employeeKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var e Employee
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false
	}
	return &e, true
}

// Put stores the employee; errors are dropped.
func (c *RedisEmployeeCache) Put(ctx context.Context, e Employee) {
	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, employeeKey(e.ID), data, c.ttl).Err()
}

// Invalidate drops the cached entry after a write.
func (c *RedisEmployeeCache) Invalidate(ctx context.Context, id int64) {
	_ = c.client.Del(ctx, employeeKey(id)).Err()
}
