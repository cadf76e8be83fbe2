package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RouterMetrics holds all Prometheus metrics for the router contract
type RouterMetrics struct {
	// Routes executed, by hop count
	Routes *prometheus.CounterVec
	Hops   *prometheus.CounterVec

	Rejections *prometheus.CounterVec
}

var (
	routerMetricsOnce sync.Once
	routerMetrics     *RouterMetrics
)

// NewRouterMetrics creates and registers router metrics (singleton pattern)
func NewRouterMetrics() *RouterMetrics {
	routerMetricsOnce.Do(func() {
		routerMetrics = &RouterMetrics{
			Routes: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "choice",
					Subsystem: "router",
					Name:      "routes_total",
					Help:      "Swap routes dispatched",
				},
				[]string{"hops"},
			),
			Hops: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "choice",
					Subsystem: "router",
					Name:      "hops_total",
					Help:      "Single pair swaps executed by the router",
				},
				[]string{"offer_asset", "ask_asset"},
			),
			Rejections: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "choice",
					Subsystem: "router",
					Name:      "rejections_total",
					Help:      "Router operations rejected",
				},
				[]string{"operation", "codespace"},
			),
		}
	})
	return routerMetrics
}
