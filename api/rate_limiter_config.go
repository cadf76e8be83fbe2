package api

import (
	"fmt"
	"time"
)

// RateLimitConfig holds the gateway rate limiting configuration
type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	DefaultRPS      int           `mapstructure:"default_rps" yaml:"default_rps" json:"default_rps"`
	DefaultBurst    int           `mapstructure:"default_burst" yaml:"default_burst" json:"default_burst"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" yaml:"cleanup_interval" json:"cleanup_interval"`
	// IdleTimeout drops the limiter of an IP not seen for this long.
	IdleTimeout time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout" json:"idle_timeout"`

	// Per-endpoint rate limits, keyed by route path
	EndpointLimits map[string]*EndpointLimit `mapstructure:"endpoint_limits" yaml:"endpoint_limits" json:"endpoint_limits"`

	WhitelistIPs []string `mapstructure:"whitelist_ips" yaml:"whitelist_ips" json:"whitelist_ips"`
}

// EndpointLimit defines a limit shared by every caller of one endpoint
type EndpointLimit struct {
	Path    string `mapstructure:"path" yaml:"path" json:"path"`
	Method  string `mapstructure:"method" yaml:"method" json:"method"` // empty means all methods
	RPS     int    `mapstructure:"rps" yaml:"rps" json:"rps"`
	Burst   int    `mapstructure:"burst" yaml:"burst" json:"burst"`
	Enabled bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
}

// DefaultRateLimitConfig returns a default rate limiting configuration
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		Enabled:         true,
		DefaultRPS:      50,
		DefaultBurst:    100,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     10 * time.Minute,
		EndpointLimits: map[string]*EndpointLimit{
			"/api/v1/route/simulate": {
				Path:    "/api/v1/route/simulate",
				Method:  "POST",
				RPS:     20,
				Burst:   40,
				Enabled: true,
			},
		},
		WhitelistIPs: []string{},
	}
}

// Validate validates the rate limit configuration
func (c *RateLimitConfig) Validate() error {
	if c.DefaultRPS <= 0 {
		return fmt.Errorf("default_rps must be positive")
	}
	if c.DefaultBurst <= 0 {
		return fmt.Errorf("default_burst must be positive")
	}
	if c.CleanupInterval < 0 || c.IdleTimeout < 0 {
		return fmt.Errorf("cleanup_interval and idle_timeout must not be negative")
	}

	for path, limit := range c.EndpointLimits {
		if limit == nil {
			return fmt.Errorf("endpoint %s: missing limit", path)
		}
		if limit.RPS <= 0 {
			return fmt.Errorf("endpoint %s: rps must be positive", path)
		}
		if limit.Burst <= 0 {
			return fmt.Errorf("endpoint %s: burst must be positive", path)
		}
	}

	return nil
}

// GetEndpointLimit returns the rate limit for a specific endpoint
func (c *RateLimitConfig) GetEndpointLimit(method, path string) *EndpointLimit {
	limit, ok := c.EndpointLimits[path]
	if !ok || !limit.Enabled {
		return nil
	}
	if limit.Method != "" && limit.Method != method {
		return nil
	}
	return limit
}

// RateLimitHeaders represents the standard rate limit headers
type RateLimitHeaders struct {
	Limit      int   `json:"limit"`
	Remaining  int   `json:"remaining"`
	Reset      int64 `json:"reset"`
	RetryAfter int   `json:"retry_after,omitempty"` // seconds
}

// ToHeaders converts to HTTP headers map
func (h *RateLimitHeaders) ToHeaders() map[string]string {
	headers := map[string]string{
		"X-RateLimit-Limit":     fmt.Sprintf("%d", h.Limit),
		"X-RateLimit-Remaining": fmt.Sprintf("%d", h.Remaining),
		"X-RateLimit-Reset":     fmt.Sprintf("%d", h.Reset),
	}
	if h.RetryAfter > 0 {
		headers["Retry-After"] = fmt.Sprintf("%d", h.RetryAfter)
	}
	return headers
}
