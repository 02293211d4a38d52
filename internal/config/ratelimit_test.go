package config

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestRateLimitDefaults(t *testing.T) {
    cfg := LoadRateLimitConfig()
    assert.True(t, cfg.Enabled)
    assert.Equal(t, 30, cfg.Capacity)
    assert.Equal(t, 1, cfg.RefillTokens)
    assert.Equal(t, time.Second, cfg.RefillInterval)
    assert.Equal(t, 10*time.Minute, cfg.TTL)
    assert.Equal(t, "rl", cfg.Prefix)
}

func TestRateLimitClampsNonsense(t *testing.T) {
    t.Setenv("RATE_LIMIT_CAPACITY", "-3")
    t.Setenv("RATE_LIMIT_REFILL_TOKENS", "0")
    t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2m")
    t.Setenv("RATE_LIMIT_TTL", "1s")

    cfg := LoadRateLimitConfig()
    assert.Equal(t, 1, cfg.Capacity)
    assert.Equal(t, 1, cfg.RefillTokens)
    assert.Equal(t, 2*time.Minute, cfg.RefillInterval)
    // TTL is stretched to cover several refill intervals
    assert.Equal(t, 10*time.Minute, cfg.TTL)
}

func TestRateLimitDisabled(t *testing.T) {
    t.Setenv("RATE_LIMIT_ENABLED", "false")
    cfg := LoadRateLimitConfig()
    assert.False(t, cfg.Enabled)
}
