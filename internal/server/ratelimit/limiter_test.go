package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Whitelist:     make(map[string]bool),
		Blacklist:     make(map[string]bool),
		EndpointConfigs: []EndpointConfig{
			{Path: "/uploads", Method: "POST", Limit: 60, Window: time.Minute, Burst: 3},
			{Path: "/analyses/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 2},
		},
	}
}

func TestTokenBucket_BurstThenDeny(t *testing.T) {
	// 1 token/minute refill, burst of 3: three requests pass, fourth is denied
	bucket := newTokenBucket(3, 1.0/60.0)

	assert.True(t, bucket.allow())
	assert.True(t, bucket.allow())
	assert.True(t, bucket.allow())
	assert.False(t, bucket.allow())
}

func TestTokenBucket_Refill(t *testing.T) {
	// 100 tokens/sec so the bucket refills within the test timeout
	bucket := newTokenBucket(1, 100)

	require.True(t, bucket.allow())
	require.False(t, bucket.allow())

	time.Sleep(20 * time.Millisecond)
	assert.True(t, bucket.allow(), "bucket should refill after the interval")
}

func TestLimiter_EndpointBurst(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("10.0.0.1", "/uploads", "POST")
		assert.True(t, allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 60, info.Limit)
	}

	allowed, info := l.Allow("10.0.0.1", "/uploads", "POST")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsIsolated(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 3; i++ {
		l.Allow("10.0.0.1", "/uploads", "POST")
	}
	allowed, _ := l.Allow("10.0.0.1", "/uploads", "POST")
	require.False(t, allowed)

	allowed, _ = l.Allow("10.0.0.2", "/uploads", "POST")
	assert.True(t, allowed, "a different client should have its own bucket")
}

func TestLimiter_PrefixMatch(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	_, info := l.Allow("10.0.0.1", "/analyses/b2c3d4e5-0000-0000-0000-000000000000", "DELETE")
	assert.Equal(t, 100, info.Limit, "DELETE /analyses/{id} should match the /analyses/ prefix")
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, info := l.Allow("10.0.0.1", "/health", "GET")
		assert.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_ProgressStreamUnlimited(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	allowed, info := l.Allow("10.0.0.1", "/analyses/abc/progress", "GET")
	assert.True(t, allowed)
	assert.Zero(t, info.Limit)
}

func TestLimiter_Lists(t *testing.T) {
	cfg := testConfig()
	cfg.Whitelist["10.0.0.9"] = true
	cfg.Blacklist["10.0.0.66"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 20; i++ {
		allowed, _ := l.Allow("10.0.0.9", "/uploads", "POST")
		assert.True(t, allowed, "whitelisted client is never limited")
	}

	allowed, _ := l.Allow("10.0.0.66", "/courses", "GET")
	assert.False(t, allowed, "blacklisted client is always denied")
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/uploads", "POST")
		assert.True(t, allowed)
	}
}

func TestMatchEndpoint_NoMatch(t *testing.T) {
	cfg := testConfig()
	match := MatchEndpoint("/courses", "GET", cfg.EndpointConfigs)
	assert.Nil(t, match, "unlisted endpoints fall through to the default limit")
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "")
	t.Setenv("RATE_LIMIT_WHITELIST", "")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 1000, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.NotEmpty(t, cfg.EndpointConfigs)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
}

func TestLoadConfig_Whitelist(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	cfg := LoadConfig()
	assert.True(t, cfg.Whitelist["10.0.0.1"])
	assert.True(t, cfg.Whitelist["10.0.0.2"])
	assert.False(t, cfg.Whitelist["10.0.0.3"])
}
