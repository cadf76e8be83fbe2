package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRateLimitConfig(rps, burst int) *RateLimitConfig {
	return &RateLimitConfig{
		Enabled:        true,
		DefaultRPS:     rps,
		DefaultBurst:   burst,
		IdleTimeout:    time.Minute,
		EndpointLimits: map[string]*EndpointLimit{},
	}
}

func TestDefaultRateLimitConfig(t *testing.T) {
	config := DefaultRateLimitConfig()

	assert.True(t, config.Enabled)
	assert.Greater(t, config.DefaultRPS, 0)
	assert.Greater(t, config.DefaultBurst, 0)
	assert.NoError(t, config.Validate())

	limit := config.GetEndpointLimit(http.MethodPost, "/api/v1/route/simulate")
	require.NotNil(t, limit)
	assert.Equal(t, 20, limit.RPS)
	assert.Nil(t, config.GetEndpointLimit(http.MethodGet, "/api/v1/route/simulate"))
	assert.Nil(t, config.GetEndpointLimit(http.MethodGet, "/api/v1/pairs"))
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  *RateLimitConfig
		wantErr bool
	}{
		{
			name:   "valid config",
			config: DefaultRateLimitConfig(),
		},
		{
			name:    "invalid default rps",
			config:  &RateLimitConfig{DefaultRPS: -1, DefaultBurst: 100},
			wantErr: true,
		},
		{
			name:    "invalid default burst",
			config:  &RateLimitConfig{DefaultRPS: 100, DefaultBurst: 0},
			wantErr: true,
		},
		{
			name:    "negative idle timeout",
			config:  &RateLimitConfig{DefaultRPS: 1, DefaultBurst: 1, IdleTimeout: -time.Second},
			wantErr: true,
		},
		{
			name: "invalid endpoint rps",
			config: &RateLimitConfig{
				DefaultRPS:   100,
				DefaultBurst: 100,
				EndpointLimits: map[string]*EndpointLimit{
					"/test": {Path: "/test", RPS: -1, Burst: 10, Enabled: true},
				},
			},
			wantErr: true,
		},
		{
			name: "nil endpoint limit",
			config: &RateLimitConfig{
				DefaultRPS:     100,
				DefaultBurst:   100,
				EndpointLimits: map[string]*EndpointLimit{"/test": nil},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRateLimiter_PerIP(t *testing.T) {
	rl, err := NewRateLimiter(testRateLimitConfig(1, 2))
	require.NoError(t, err)
	defer rl.Close()

	for i := 0; i < 2; i++ {
		allowed, headers := rl.CheckLimit("10.0.0.1", http.MethodGet, "/api/v1/pairs")
		require.True(t, allowed, "request %d", i)
		require.Equal(t, 1, headers.Limit)
	}

	allowed, headers := rl.CheckLimit("10.0.0.1", http.MethodGet, "/api/v1/pairs")
	require.False(t, allowed)
	require.Equal(t, 1, headers.RetryAfter)

	// another client has its own bucket
	allowed, _ = rl.CheckLimit("10.0.0.2", http.MethodGet, "/api/v1/pairs")
	require.True(t, allowed)

	stats := rl.GetStats()
	require.Equal(t, 2, stats["ip_limiters"])
	require.Equal(t, 1, stats["violations"])
}

func TestRateLimiter_Whitelist(t *testing.T) {
	cfg := testRateLimitConfig(1, 1)
	cfg.WhitelistIPs = []string{"127.0.0.1"}
	rl, err := NewRateLimiter(cfg)
	require.NoError(t, err)
	defer rl.Close()

	for i := 0; i < 10; i++ {
		allowed, headers := rl.CheckLimit("127.0.0.1", http.MethodGet, "/health")
		require.True(t, allowed)
		require.Nil(t, headers)
	}
}

func TestRateLimiter_EndpointLimitIsShared(t *testing.T) {
	cfg := testRateLimitConfig(100, 100)
	cfg.EndpointLimits["/api/v1/route/simulate"] = &EndpointLimit{
		Path:    "/api/v1/route/simulate",
		Method:  http.MethodPost,
		RPS:     1,
		Burst:   1,
		Enabled: true,
	}
	rl, err := NewRateLimiter(cfg)
	require.NoError(t, err)
	defer rl.Close()

	allowed, _ := rl.CheckLimit("10.0.0.1", http.MethodPost, "/api/v1/route/simulate")
	require.True(t, allowed)

	// the endpoint bucket is spent for every caller
	allowed, headers := rl.CheckLimit("10.0.0.2", http.MethodPost, "/api/v1/route/simulate")
	require.False(t, allowed)
	require.Equal(t, 1, headers.Limit)

	// other endpoints only see the per-IP bucket
	allowed, _ = rl.CheckLimit("10.0.0.2", http.MethodGet, "/api/v1/pairs")
	require.True(t, allowed)
}

func TestRateLimiter_Disabled(t *testing.T) {
	cfg := testRateLimitConfig(1, 1)
	cfg.Enabled = false
	rl, err := NewRateLimiter(cfg)
	require.NoError(t, err)
	defer rl.Close()

	for i := 0; i < 5; i++ {
		allowed, _ := rl.CheckLimit("10.0.0.1", http.MethodGet, "/health")
		require.True(t, allowed)
	}
}

func TestRateLimiter_CleanupDropsIdle(t *testing.T) {
	rl, err := NewRateLimiter(testRateLimitConfig(10, 10))
	require.NoError(t, err)
	defer rl.Close()

	rl.CheckLimit("10.0.0.1", http.MethodGet, "/health")
	rl.CheckLimit("10.0.0.2", http.MethodGet, "/health")

	rl.cleanup(time.Now())
	require.Equal(t, 2, rl.GetStats()["ip_limiters"])

	rl.cleanup(time.Now().Add(2 * time.Minute))
	require.Equal(t, 0, rl.GetStats()["ip_limiters"])
}

func TestRateLimiter_CloseTwice(t *testing.T) {
	cfg := testRateLimitConfig(1, 1)
	cfg.CleanupInterval = time.Millisecond
	rl, err := NewRateLimiter(cfg)
	require.NoError(t, err)

	rl.Close()
	rl.Close()
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl, err := NewRateLimiter(testRateLimitConfig(1, 1))
	require.NoError(t, err)
	defer rl.Close()

	router := gin.New()
	router.Use(RateLimitMiddleware(rl))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "1", w.Header().Get("Retry-After"))
	require.Contains(t, w.Body.String(), "RATE_LIMIT")
}

func TestRateLimitHeaders_ToHeaders(t *testing.T) {
	h := (&RateLimitHeaders{Limit: 5, Remaining: 3, Reset: 100}).ToHeaders()
	assert.Equal(t, "5", h["X-RateLimit-Limit"])
	assert.Equal(t, "3", h["X-RateLimit-Remaining"])
	assert.NotContains(t, h, "Retry-After")
}
