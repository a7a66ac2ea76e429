package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

const healthCheckInterval = 60 * time.Second

// HealthStatus is the latest probe of the backing services: the
// MongoDB cluster, the general-purpose cache and the auth token cache.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Cache     bool      `json:"cache"`
	AuthCache bool      `json:"authCache"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every backing service answered its last ping.
func (h HealthStatus) Healthy() bool {
	return h.Mongo && h.Cache && h.AuthCache
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot. The zero
// value means no probe has completed yet.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

func recordHealth(h HealthStatus) {
	healthMu.Lock()
	currentHealth = h
	healthMu.Unlock()
}

// StartHealthMonitor probes the backing services on a fixed interval
// and keeps the in-memory snapshot current. The first probe runs
// immediately so /health has data shortly after startup.
func StartHealthMonitor(cache, authCache *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ctx := context.Background()
		recordHealth(probeHealth(ctx, cache, authCache, mongoClient))

		ticker := time.NewTicker(healthCheckInterval)
		defer ticker.Stop()
		for range ticker.C {
			recordHealth(probeHealth(ctx, cache, authCache, mongoClient))
		}
	}()
}

func probeHealth(ctx context.Context, cache, authCache *redis.Client, mongoClient *mongo.Client) HealthStatus {
	return HealthStatus{
		Mongo:     mongoClient.Ping(ctx, nil) == nil,
		Cache:     cache.Ping(ctx).Err() == nil,
		AuthCache: authCache.Ping(ctx).Err() == nil,
		CheckedAt: time.Now(),
	}
}
