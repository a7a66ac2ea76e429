package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHealthStatusHealthy(t *testing.T) {
	assert.False(t, HealthStatus{}.Healthy(), "zero snapshot is not healthy")
	assert.True(t, HealthStatus{Mongo: true, Cache: true, AuthCache: true}.Healthy())
	assert.False(t, HealthStatus{Mongo: true, Cache: true}.Healthy(), "one failing dependency degrades the whole")
	assert.False(t, HealthStatus{Cache: true, AuthCache: true}.Healthy())
}

func TestHealthSnapshotRoundTrip(t *testing.T) {
	defer recordHealth(HealthStatus{})

	assert.True(t, GetHealthStatus().CheckedAt.IsZero(), "no probe recorded yet")

	snap := HealthStatus{Mongo: true, Cache: true, AuthCache: false, CheckedAt: time.Now()}
	recordHealth(snap)

	got := GetHealthStatus()
	assert.Equal(t, snap, got)
	assert.False(t, got.Healthy())
}
