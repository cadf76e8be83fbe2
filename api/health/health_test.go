package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPerformChecks_Aggregates(t *testing.T) {
	failing := func(context.Context) error { return errors.New("contract not found") }

	tests := []struct {
		name   string
		checks []Check
		want   HealthStatus
	}{
		{
			name: "no checks",
			want: StatusHealthy,
		},
		{
			name: "all healthy",
			checks: []Check{
				HeightCheck(func() int64 { return 5 }),
				TelemetryCheck(func() error { return nil }),
			},
			want: StatusHealthy,
		},
		{
			name: "telemetry only degrades",
			checks: []Check{
				HeightCheck(func() int64 { return 5 }),
				TelemetryCheck(func() error { return errors.New("exporter down") }),
			},
			want: StatusDegraded,
		},
		{
			name: "unhealthy wins",
			checks: []Check{
				HeightCheck(func() int64 { return 0 }),
				TelemetryCheck(func() error { return errors.New("exporter down") }),
			},
			want: StatusUnhealthy,
		},
		{
			name: "failing contract",
			checks: []Check{
				HeightCheck(func() int64 { return 5 }),
				ContractCheck("factory", failing),
			},
			want: StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := NewHealthChecker("test")
			for _, check := range tt.checks {
				hc.RegisterCheck(check)
			}
			res := hc.PerformChecks(context.Background())
			require.Equal(t, tt.want, res.Status)
			require.Equal(t, "test", res.Version)
			require.Len(t, res.Checks, len(tt.checks))
		})
	}
}

func TestPerformChecks_Caches(t *testing.T) {
	var calls atomic.Int32
	hc := NewHealthChecker("test")
	hc.RegisterCheck(Check{Name: "counter", Run: func(context.Context) error {
		calls.Add(1)
		return nil
	}})

	first := hc.PerformChecks(context.Background())
	second := hc.PerformChecks(context.Background())
	require.Same(t, first, second)
	require.Equal(t, int32(1), calls.Load())

	// registering a check drops the cached answer
	hc.RegisterCheck(HeightCheck(func() int64 { return 1 }))
	third := hc.PerformChecks(context.Background())
	require.Len(t, third.Checks, 2)
	require.Equal(t, int32(2), calls.Load())
}

func TestContractCheck(t *testing.T) {
	hc := NewHealthChecker("test")
	hc.RegisterCheck(ContractCheck("factory", func(context.Context) error {
		return errors.New("contract not found")
	}))

	res := hc.PerformChecks(context.Background()).Checks["factory"]
	require.Equal(t, StatusUnhealthy, res.Status)
	require.Contains(t, res.Message, "contract not found")
	require.NotEmpty(t, res.Latency)
}
