package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// FactoryMetrics holds all Prometheus metrics for the factory contract
type FactoryMetrics struct {
	PairsCreated *prometheus.CounterVec
	PairsSeeded  prometheus.Counter

	// Replies by outcome: created, unknown_id, failed
	Replies *prometheus.CounterVec

	// Rejected operations by error codespace
	Rejections *prometheus.CounterVec
}

var (
	factoryMetricsOnce sync.Once
	factoryMetrics     *FactoryMetrics
)

// NewFactoryMetrics creates and registers factory metrics (singleton pattern)
func NewFactoryMetrics() *FactoryMetrics {
	factoryMetricsOnce.Do(func() {
		factoryMetrics = &FactoryMetrics{
			PairsCreated: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "choice",
					Subsystem: "factory",
					Name:      "pairs_created_total",
					Help:      "Pairs registered after a successful instantiate reply",
				},
				[]string{"kind"},
			),
			PairsSeeded: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "choice",
					Subsystem: "factory",
					Name:      "pairs_seeded_total",
					Help:      "Pairs created with initial liquidity",
				},
			),
			Replies: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "choice",
					Subsystem: "factory",
					Name:      "replies_total",
					Help:      "Instantiate replies handled",
				},
				[]string{"outcome"},
			),
			Rejections: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "choice",
					Subsystem: "factory",
					Name:      "rejections_total",
					Help:      "Factory operations rejected",
				},
				[]string{"operation", "codespace"},
			),
		}
	})
	return factoryMetrics
}
