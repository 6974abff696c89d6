package pagecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"leadengine/internal/pkg/config"
	"leadengine/internal/pkg/logger"
	"leadengine/internal/pkg/metrics"
)

// Defines the interface for the short-lived raw HTML cache. One batch often
// enriches several companies behind the same host; the cache keeps those
// crawls from refetching identical pages.
type Cache interface {
	Get(url string) (string, bool)
	Put(url string, html string)
}

// Implements Cache with Redis as the backing store.
type redisCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// Creates a new Redis-backed page cache. The pipeline treats cache failures
// as misses; a dead Redis never blocks a crawl.
func NewRedisCache(config *config.Config) (Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.RedisHost, config.RedisPort),
		Password: config.RedisPassword, // "" if no auth
		DB:       config.RedisDB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Error("Failed to connect to Redis", zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Connected to Redis page cache",
		zap.String("host", config.RedisHost),
		zap.String("port", config.RedisPort),
	)

	return &redisCache{
		client:    rdb,
		keyPrefix: "pagecache",
		ttl:       time.Duration(config.CacheTTLMin) * time.Minute,
	}, nil
}

func (cache *redisCache) Get(url string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	html, err := cache.client.Get(ctx, cache.key(url)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Error("Redis cache lookup failed", zap.Error(err))
		}
		return "", false
	}
	metrics.CacheHits.Inc()
	return html, true
}

func (cache *redisCache) Put(url string, html string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := cache.client.Set(ctx, cache.key(url), html, cache.ttl).Err(); err != nil {
		logger.Log.Error("Failed to store page in Redis cache", zap.Error(err))
	}
}

func (cache *redisCache) key(url string) string {
	return cache.keyPrefix + ":" + URLKey(url)
}

// Creates a SHA-256 key from a normalized URL.
func URLKey(url string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(strings.ToLower(url))))
	return hex.EncodeToString(sum[:])
}
