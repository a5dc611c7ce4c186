package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SwapMetrics holds all Prometheus metrics for the swap module
type SwapMetrics struct {
	// Operation metrics
	OperationsTotal  *prometheus.CounterVec
	OperationLatency *prometheus.HistogramVec

	// Swap metrics
	SwapVolume         *prometheus.CounterVec
	SwapFeesCollected  *prometheus.CounterVec
	SlippageRejections *prometheus.CounterVec

	// Pool token metrics
	PoolTokensMinted *prometheus.CounterVec
	PoolTokensBurned *prometheus.CounterVec

	// Failure metrics
	CalculationFailures *prometheus.CounterVec
	InvariantViolations *prometheus.CounterVec
}

var (
	swapMetricsOnce sync.Once
	swapMetrics     *SwapMetrics
)

// NewSwapMetrics creates and registers swap metrics (singleton pattern)
func NewSwapMetrics() *SwapMetrics {
	swapMetricsOnce.Do(func() {
		swapMetrics = &SwapMetrics{
			OperationsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "swap",
					Name:      "operations_total",
					Help:      "Total number of planned pool operations",
				},
				[]string{"operation", "curve_type", "status"},
			),
			OperationLatency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: "pawswap",
					Subsystem: "swap",
					Name:      "operation_latency_seconds",
					Help:      "Pool operation planning latency in seconds",
					Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
				},
				[]string{"operation", "curve_type"},
			),

			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "swap",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"curve_type", "direction"},
			),
			SwapFeesCollected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "swap",
					Name:      "swap_fees_collected_total",
					Help:      "Total swap fees collected in base units",
				},
				[]string{"curve_type", "fee"},
			),
			SlippageRejections: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "swap",
					Name:      "slippage_rejections_total",
					Help:      "Operations rejected for missing the caller's bound",
				},
				[]string{"operation"},
			),

			PoolTokensMinted: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "swap",
					Name:      "pool_tokens_minted_total",
					Help:      "Total pool tokens minted",
				},
				[]string{"operation"},
			),
			PoolTokensBurned: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "swap",
					Name:      "pool_tokens_burned_total",
					Help:      "Total pool tokens burned",
				},
				[]string{"operation"},
			),

			CalculationFailures: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "swap",
					Name:      "calculation_failures_total",
					Help:      "Arithmetic failures by curve type",
				},
				[]string{"curve_type", "operation"},
			),
			InvariantViolations: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "swap",
					Name:      "invariant_violations_total",
					Help:      "Post-operation invariant check failures",
				},
				[]string{"curve_type"},
			),
		}
	})
	return swapMetrics
}
