package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/jobify-service/internal/domain"
)

// JobCache stores rendered public job listings.
type JobCache interface {
	Get(ctx context.Context, key string) ([]domain.Job, bool, error)
	Set(ctx context.Context, key string, jobs []domain.Job) error
	Invalidate(ctx context.Context, keys ...string) error
}

const jobCachePrefix = "jobify:jobs:"

type redisJobCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisJobCache returns a Redis-backed cache. A nil client yields nil.
func NewRedisJobCache(client *redis.Client, ttl time.Duration) JobCache {
	if client == nil {
		return nil
	}
	return &redisJobCache{client: client, ttl: ttl}
}

func (c *redisJobCache) Get(ctx context.Context, key string) ([]domain.Job, bool, error) {
	raw, err := c.client.Get(ctx, jobCachePrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var jobs []domain.Job
	if err := json.Unmarshal(raw, &jobs); err != nil {
		return nil, false, err
	}
	return jobs, true, nil
}

func (c *redisJobCache) Set(ctx context.Context, key string, jobs []domain.Job) error {
	raw, err := json.Marshal(jobs)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, jobCachePrefix+key, raw, c.ttl).Err()
}

func (c *redisJobCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = jobCachePrefix + key
	}
	return c.client.Del(ctx, prefixed...).Err()
}
