// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"handimatch/config"

	"github.com/go-redis/redis/v8"
)

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 24 * time.Hour

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
)

// InitCache initializes the generic Redis cache client (using DB from AppConfig for general caching).
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitAuthCache initializes the Redis client for authorization caching (using DB from AppConfig for auth cache).
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := AuthCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// CacheAuthToken stores the SHA-256 hash of a user's active token so the
// auth middleware can reject revoked tokens without a database read.
func CacheAuthToken(userID, token string) error {
	ctx := context.Background()
	return GetAuthCacheClient().Set(ctx, AuthCachePrefix+userID, HashToken(token), AuthCacheTTL).Err()
}

// CheckAuthToken reports whether the presented token matches the cached hash.
// A missing cache entry counts as a match so a Redis flush does not sign
// everyone out.
func CheckAuthToken(userID, token string) bool {
	ctx := context.Background()
	cached, err := GetAuthCacheClient().Get(ctx, AuthCachePrefix+userID).Result()
	if err == redis.Nil {
		return true
	}
	if err != nil {
		return true
	}
	return cached == HashToken(token)
}

// RevokeAuthToken drops the cached token hash for a user.
func RevokeAuthToken(userID string) error {
	ctx := context.Background()
	return GetAuthCacheClient().Del(ctx, AuthCachePrefix+userID).Err()
}
