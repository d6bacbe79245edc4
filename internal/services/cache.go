package services

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nagmanijha/ResumeRev.ai/internal/config"
)

// CacheService is a thin Redis wrapper. When Redis is unreachable every
// operation degrades to a miss so analysis never blocks on the cache.
type CacheService interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

type cacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(cfg *config.Config) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis unavailable, caching disabled: %v", err)
		return &cacheService{client: nil, ttl: cfg.Redis.CacheTTL}
	}

	log.Printf("✅ Redis connected at %s", cfg.Redis.Addr)
	return &cacheService{client: client, ttl: cfg.Redis.CacheTTL}
}

func (c *cacheService) Get(ctx context.Context, key string) (string, bool) {
	if c.client == nil {
		return "", false
	}

	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("⚠️ Redis get failed: %v", err)
		}
		return "", false
	}
	return val, true
}

func (c *cacheService) Set(ctx context.Context, key, value string) {
	if c.client == nil {
		return
	}
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		log.Printf("⚠️ Redis set failed: %v", err)
	}
}
