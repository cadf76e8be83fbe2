// Package health aggregates the dependency checks behind the gateway's
// /health endpoint.
package health

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResponse is the combined answer of every registered check.
type HealthResponse struct {
	Status    HealthStatus           `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Checks    map[string]CheckResult `json:"checks"`
}

type CheckResult struct {
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
	Latency string       `json:"latency"`
}

// Check is one probe of a gateway dependency. A failing critical check makes
// the gateway unhealthy, any other failure only degrades it.
type Check struct {
	Name     string
	Critical bool
	Run      func(ctx context.Context) error
}

func (c Check) result(ctx context.Context) CheckResult {
	start := time.Now()
	err := c.Run(ctx)
	res := CheckResult{Status: StatusHealthy, Latency: time.Since(start).String()}
	if err == nil {
		return res
	}
	res.Message = err.Error()
	res.Status = StatusDegraded
	if c.Critical {
		res.Status = StatusUnhealthy
	}
	return res
}

// HealthChecker runs the registered checks concurrently and caches the
// combined answer for cacheTimeout.
type HealthChecker struct {
	version      string
	checkTimeout time.Duration
	cacheTimeout time.Duration

	mu        sync.RWMutex
	checks    map[string]Check
	cached    *HealthResponse
	checkedAt time.Time
}

func NewHealthChecker(version string) *HealthChecker {
	return &HealthChecker{
		version:      version,
		checkTimeout: 5 * time.Second,
		cacheTimeout: 2 * time.Second,
		checks:       make(map[string]Check),
	}
}

// RegisterCheck adds check, replacing a check of the same name.
func (hc *HealthChecker) RegisterCheck(check Check) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[check.Name] = check
	hc.cached = nil
}

// PerformChecks returns the cached answer while it is fresh, otherwise runs
// every check.
func (hc *HealthChecker) PerformChecks(ctx context.Context) *HealthResponse {
	hc.mu.RLock()
	if hc.cached != nil && time.Since(hc.checkedAt) < hc.cacheTimeout {
		cached := hc.cached
		hc.mu.RUnlock()
		return cached
	}
	names := make([]string, 0, len(hc.checks))
	for name := range hc.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	checks := make([]Check, len(names))
	for i, name := range names {
		checks[i] = hc.checks[name]
	}
	hc.mu.RUnlock()

	results := make([]CheckResult, len(checks))
	g, gctx := errgroup.WithContext(ctx)
	for i, check := range checks {
		g.Go(func() error {
			checkCtx, cancel := context.WithTimeout(gctx, hc.checkTimeout)
			defer cancel()
			results[i] = check.result(checkCtx)
			return nil
		})
	}
	_ = g.Wait()

	response := &HealthResponse{
		Status:    StatusHealthy,
		Timestamp: time.Now(),
		Version:   hc.version,
		Checks:    make(map[string]CheckResult, len(checks)),
	}
	for i, res := range results {
		response.Checks[names[i]] = res
		response.Status = worse(response.Status, res.Status)
	}

	hc.mu.Lock()
	hc.cached = response
	hc.checkedAt = time.Now()
	hc.mu.Unlock()

	return response
}

func worse(a, b HealthStatus) HealthStatus {
	rank := map[HealthStatus]int{StatusHealthy: 0, StatusDegraded: 1, StatusUnhealthy: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}

// ContractCheck is critical: the gateway is useless while contract queries fail.
func ContractCheck(name string, query func(context.Context) error) Check {
	return Check{
		Name:     name,
		Critical: true,
		Run: func(ctx context.Context) error {
			if err := query(ctx); err != nil {
				return fmt.Errorf("%s query failed: %w", name, err)
			}
			return nil
		},
	}
}

// HeightCheck fails until the first block exists.
func HeightCheck(height func() int64) Check {
	return Check{
		Name:     "height",
		Critical: true,
		Run: func(context.Context) error {
			if height() == 0 {
				return fmt.Errorf("no blocks produced")
			}
			return nil
		},
	}
}

// TelemetryCheck degrades, but never fails, the gateway.
func TelemetryCheck(check func() error) Check {
	return Check{
		Name: "telemetry",
		Run: func(context.Context) error {
			if err := check(); err != nil {
				return fmt.Errorf("telemetry: %w", err)
			}
			return nil
		},
	}
}
