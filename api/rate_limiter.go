package api

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter applies a token bucket per client IP plus shared buckets for
// the endpoints listed in the config.
type RateLimiter struct {
	config *RateLimitConfig

	ipLimiters       *sync.Map // map[string]*IPLimiter
	ipWhitelist      map[string]bool
	endpointLimiters map[string]*rate.Limiter

	stopChan  chan struct{}
	closeOnce sync.Once
}

// IPLimiter tracks the bucket of one client IP
type IPLimiter struct {
	limiter    *rate.Limiter
	lastSeen   time.Time
	violations int
	mu         sync.Mutex
}

// NewRateLimiter creates a rate limiter and starts its cleanup routine.
func NewRateLimiter(config *RateLimitConfig) (*RateLimiter, error) {
	if config == nil {
		config = DefaultRateLimitConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rate limit config: %w", err)
	}

	rl := &RateLimiter{
		config:           config,
		ipLimiters:       &sync.Map{},
		ipWhitelist:      make(map[string]bool),
		endpointLimiters: make(map[string]*rate.Limiter),
		stopChan:         make(chan struct{}),
	}

	for _, ip := range config.WhitelistIPs {
		rl.ipWhitelist[ip] = true
	}

	for path, endpointLimit := range config.EndpointLimits {
		if endpointLimit.Enabled {
			rl.endpointLimiters[path] = rate.NewLimiter(rate.Limit(endpointLimit.RPS), endpointLimit.Burst)
		}
	}

	if config.CleanupInterval > 0 {
		go rl.cleanupRoutine()
	}

	return rl, nil
}

// CheckLimit reports whether a request from ip to method/path may proceed.
func (rl *RateLimiter) CheckLimit(ip, method, path string) (bool, *RateLimitHeaders) {
	if !rl.config.Enabled || rl.ipWhitelist[ip] {
		return true, nil
	}

	if endpointLimit := rl.config.GetEndpointLimit(method, path); endpointLimit != nil {
		if limiter, ok := rl.endpointLimiters[endpointLimit.Path]; ok && !limiter.Allow() {
			return false, &RateLimitHeaders{
				Limit:      endpointLimit.RPS,
				Reset:      time.Now().Add(time.Second).Unix(),
				RetryAfter: 1,
			}
		}
	}

	limiter := rl.getOrCreateIPLimiter(ip)
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	limiter.lastSeen = time.Now()
	if !limiter.limiter.Allow() {
		limiter.violations++
		return false, &RateLimitHeaders{
			Limit:      rl.config.DefaultRPS,
			Reset:      time.Now().Add(time.Second).Unix(),
			RetryAfter: 1,
		}
	}

	return true, &RateLimitHeaders{
		Limit:     rl.config.DefaultRPS,
		Remaining: int(limiter.limiter.Tokens()),
		Reset:     time.Now().Add(time.Second).Unix(),
	}
}

// RateLimitMiddleware rejects requests over the limit with 429.
func RateLimitMiddleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, headers := rl.CheckLimit(c.ClientIP(), c.Request.Method, c.FullPath())
		if headers != nil {
			for k, v := range headers.ToHeaders() {
				c.Header(k, v)
			}
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Error: "Rate limit exceeded",
				Code:  "RATE_LIMIT",
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) getOrCreateIPLimiter(ip string) *IPLimiter {
	if v, ok := rl.ipLimiters.Load(ip); ok {
		return v.(*IPLimiter)
	}
	v, _ := rl.ipLimiters.LoadOrStore(ip, &IPLimiter{
		limiter:  rate.NewLimiter(rate.Limit(rl.config.DefaultRPS), rl.config.DefaultBurst),
		lastSeen: time.Now(),
	})
	return v.(*IPLimiter)
}

func (rl *RateLimiter) cleanupRoutine() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stopChan:
			return
		}
	}
}

// cleanup drops the limiters of IPs idle since before now - IdleTimeout.
func (rl *RateLimiter) cleanup(now time.Time) {
	rl.ipLimiters.Range(func(key, value interface{}) bool {
		limiter := value.(*IPLimiter)
		limiter.mu.Lock()
		lastSeen := limiter.lastSeen
		limiter.mu.Unlock()

		if now.Sub(lastSeen) > rl.config.IdleTimeout {
			rl.ipLimiters.Delete(key)
		}
		return true
	})
}

// Close stops the cleanup routine
func (rl *RateLimiter) Close() {
	rl.closeOnce.Do(func() { close(rl.stopChan) })
}

// GetStats returns statistics about the rate limiter
func (rl *RateLimiter) GetStats() map[string]interface{} {
	ipCount := 0
	violations := 0
	rl.ipLimiters.Range(func(_, value interface{}) bool {
		limiter := value.(*IPLimiter)
		limiter.mu.Lock()
		violations += limiter.violations
		limiter.mu.Unlock()
		ipCount++
		return true
	})

	return map[string]interface{}{
		"ip_limiters":       ipCount,
		"endpoint_limiters": len(rl.endpointLimiters),
		"violations":        violations,
		"enabled":           rl.config.Enabled,
	}
}
