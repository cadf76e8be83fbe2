package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PairMetrics holds all Prometheus metrics for pair contracts
type PairMetrics struct {
	// Swaps by pair and offer asset
	Swaps       *prometheus.CounterVec
	SwapVolume  *prometheus.CounterVec
	Commissions *prometheus.CounterVec

	// Liquidity
	LiquidityProvided  *prometheus.CounterVec
	LiquidityWithdrawn *prometheus.CounterVec

	// Rejected operations by error codespace/code
	Rejections *prometheus.CounterVec
}

var (
	pairMetricsOnce sync.Once
	pairMetrics     *PairMetrics
)

// NewPairMetrics creates and registers pair metrics (singleton pattern)
func NewPairMetrics() *PairMetrics {
	pairMetricsOnce.Do(func() {
		pairMetrics = &PairMetrics{
			Swaps: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "choice",
					Subsystem: "pair",
					Name:      "swaps_total",
					Help:      "Swaps executed",
				},
				[]string{"pair", "offer_asset"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "choice",
					Subsystem: "pair",
					Name:      "swap_volume",
					Help:      "Offered amount swapped, in base units",
				},
				[]string{"pair", "offer_asset"},
			),
			Commissions: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "choice",
					Subsystem: "pair",
					Name:      "commission",
					Help:      "Commission charged, in base units of the ask asset",
				},
				[]string{"pair", "ask_asset", "recipient"},
			),
			LiquidityProvided: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "choice",
					Subsystem: "pair",
					Name:      "liquidity_provided_total",
					Help:      "Liquidity provisions",
				},
				[]string{"pair", "bootstrap"},
			),
			LiquidityWithdrawn: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "choice",
					Subsystem: "pair",
					Name:      "liquidity_withdrawn_total",
					Help:      "Liquidity withdrawals",
				},
				[]string{"pair"},
			),
			Rejections: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "choice",
					Subsystem: "pair",
					Name:      "rejections_total",
					Help:      "Pair operations rejected",
				},
				[]string{"operation", "codespace"},
			),
		}
	})
	return pairMetrics
}
