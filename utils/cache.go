// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"auralynk/config"
)

// AuthCachePrefix prefixes auth token hash keys in the auth cache.
const AuthCachePrefix = "auth:"

var (
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
	// LiveClient is the dedicated client for live-update pub/sub.
	LiveClient *redis.Client
)

// InitAuthCache initializes the Redis client for authorization caching.
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := AuthCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for authorization caching, or
// nil before InitRedis has run.
func GetAuthCacheClient() *redis.Client {
	return AuthCacheClient
}

// InitLiveClient initializes the Redis client used for live-update pub/sub.
func InitLiveClient() {
	LiveClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLiveDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := LiveClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Live): %v", err)
	}
}

// GetLiveClient returns the Redis client used for live-update pub/sub, or
// nil before InitRedis has run.
func GetLiveClient() *redis.Client {
	return LiveClient
}

// InitRedis initializes all Redis clients.
func InitRedis() {
	InitAuthCache()
	InitLiveClient()
}
