package core

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/neodocs/neodocs/pkg/types"
)

type RedisClient = redis.UniversalClient

func setupRedis(core *Core) {
	cfg := core.cfg.Redis
	if cfg.Addr == "" && len(cfg.ClusterAddrs) == 0 {
		// 未配置 redis 时退化为进程内缓存，单实例部署够用
		core.cache = newLocalCache()
		return
	}

	var cli redis.UniversalClient
	if cfg.Cluster {
		cli = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        cfg.ClusterAddrs,
			Password:     cfg.ClusterPasswd,
			PoolSize:     cfg.PoolSize,
			MinIdleConns: cfg.MinIdleConns,
			MaxRetries:   cfg.MaxRetries,
			DialTimeout:  time.Duration(cfg.DialTimeout) * time.Second,
			ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		})
	} else {
		cli = redis.NewClient(&redis.Options{
			Addr:         cfg.Addr,
			Password:     cfg.Password,
			DB:           cfg.DB,
			PoolSize:     cfg.PoolSize,
			MinIdleConns: cfg.MinIdleConns,
			MaxRetries:   cfg.MaxRetries,
			DialTimeout:  time.Duration(cfg.DialTimeout) * time.Second,
			ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		})
	}

	core.redis = cli
	core.cache = &Cache{redis: cli}
}

func (s *Core) Redis() RedisClient {
	return s.redis
}

func (s *Core) Cache() types.Cache {
	return s.cache
}

type Cache struct {
	redis redis.UniversalClient
}

func (c *Cache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return c.redis.Expire(ctx, key, expiration).Err()
}

func (c *Cache) SetEx(ctx context.Context, key, value string, expiresAt time.Duration) error {
	return c.redis.SetEx(ctx, key, value, expiresAt).Err()
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	return c.redis.Get(ctx, key).Result()
}

type localCacheEntry struct {
	value     string
	expiresAt time.Time
}

// localCache 进程内缓存，接口语义与 redis 实现对齐
type localCache struct {
	mu      sync.RWMutex
	entries map[string]localCacheEntry
}

func newLocalCache() *localCache {
	return &localCache{
		entries: make(map[string]localCacheEntry),
	}
}

func (c *localCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return "", redis.Nil
	}
	return entry.value, nil
}

func (c *localCache) SetEx(ctx context.Context, key, value string, expiresAt time.Duration) error {
	c.mu.Lock()
	c.entries[key] = localCacheEntry{
		value:     value,
		expiresAt: time.Now().Add(expiresAt),
	}
	c.mu.Unlock()
	return nil
}

func (c *localCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	c.mu.Lock()
	if entry, ok := c.entries[key]; ok {
		entry.expiresAt = time.Now().Add(expiration)
		c.entries[key] = entry
	}
	c.mu.Unlock()
	return nil
}
