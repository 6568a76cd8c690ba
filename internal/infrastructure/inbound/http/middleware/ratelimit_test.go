package middleware

import (
	"testing"
	"time"

	"postboard-service/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_AllowPerClient(t *testing.T) {
	limiter := NewRateLimiter(1, 2, logger.New("test"))
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, limiter.allow("10.0.0.1", now))
	assert.True(t, limiter.allow("10.0.0.1", now))
	assert.False(t, limiter.allow("10.0.0.1", now), "burst exhausted")
	assert.True(t, limiter.allow("10.0.0.2", now), "other clients keep their own bucket")
	assert.True(t, limiter.allow("10.0.0.1", now.Add(time.Second)), "bucket refills at rps")
}

func TestRateLimiter_SweepDropsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(1, 1, logger.New("test"))
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	limiter.allow("idle", now)
	limiter.allow("active", now.Add(limiterIdleTTL))

	limiter.sweep(now.Add(limiterIdleTTL + time.Second))

	assert.NotContains(t, limiter.visitors, "idle")
	assert.Contains(t, limiter.visitors, "active")
}
