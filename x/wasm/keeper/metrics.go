package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HostMetrics holds all Prometheus metrics for the contract host
type HostMetrics struct {
	// Entry point calls by entry point and outcome
	Calls       *prometheus.CounterVec
	CallLatency *prometheus.HistogramVec

	// Messages dispatched by contracts
	Dispatches *prometheus.CounterVec
	Replies    *prometheus.CounterVec

	// Lifecycle
	Instantiations *prometheus.CounterVec
	Migrations     *prometheus.CounterVec
}

var (
	hostMetricsOnce sync.Once
	hostMetrics     *HostMetrics
)

// NewHostMetrics creates and registers host metrics (singleton pattern)
func NewHostMetrics() *HostMetrics {
	hostMetricsOnce.Do(func() {
		hostMetrics = &HostMetrics{
			Calls: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "choice",
					Subsystem: "wasm",
					Name:      "calls_total",
					Help:      "Contract entry point calls",
				},
				[]string{"entry_point", "status"},
			),
			CallLatency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: "choice",
					Subsystem: "wasm",
					Name:      "call_latency_seconds",
					Help:      "Contract entry point latency in seconds, including dispatched messages",
					Buckets:   prometheus.DefBuckets,
				},
				[]string{"entry_point"},
			),
			Dispatches: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "choice",
					Subsystem: "wasm",
					Name:      "dispatched_msgs_total",
					Help:      "Messages dispatched by contracts",
				},
				[]string{"msg_type", "status"},
			),
			Replies: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "choice",
					Subsystem: "wasm",
					Name:      "replies_total",
					Help:      "Sub-message replies delivered to contracts",
				},
				[]string{"result"},
			),
			Instantiations: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "choice",
					Subsystem: "wasm",
					Name:      "instantiations_total",
					Help:      "Contract instantiations by code id",
				},
				[]string{"code_id"},
			),
			Migrations: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "choice",
					Subsystem: "wasm",
					Name:      "migrations_total",
					Help:      "Contract migrations by target code id",
				},
				[]string{"code_id"},
			),
		}
	})
	return hostMetrics
}
