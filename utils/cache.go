package utils

import (
	"context"
	"log"
	"time"

	"tourbook/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient serves general-purpose caching (school listings).
	CacheClient *redis.Client
	// AuthCacheClient holds token hashes for request authentication.
	AuthCacheClient *redis.Client
)

// newRedisClient connects to the configured Redis instance on the given
// logical DB and fails fast when it is unreachable.
func newRedisClient(db int, purpose string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", purpose, err)
	}
	return client
}

// InitRedis initializes all Redis clients at startup.
func InitRedis() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "cache")
	AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB, "auth cache")
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "cache")
	}
	return CacheClient
}

// GetAuthCacheClient returns the auth cache client.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB, "auth cache")
	}
	return AuthCacheClient
}
