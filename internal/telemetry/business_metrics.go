package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability.
type BusinessMetrics struct {
	// Orders
	OrdersCreated      prometheus.Counter
	OrderValue         prometheus.Histogram
	OrderItemCount     prometheus.Histogram
	UnitsAllocated     prometheus.Counter
	AllocationFailures *prometheus.CounterVec

	// Cart
	CartItemsAdded   prometheus.Counter
	CartItemsRemoved prometheus.Counter

	// Accounts
	Signups prometheus.Counter
}

// NewBusinessMetrics creates and registers all business metrics on reg.
// Tests pass a fresh prometheus.NewRegistry to avoid duplicate registration.
func NewBusinessMetrics(reg prometheus.Registerer) *BusinessMetrics {
	const namespace = "attire"
	const subsystem = "business"

	factory := promauto.With(reg)

	return &BusinessMetrics{
		OrdersCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_created_total",
				Help:      "Total orders created",
			},
		),
		OrderValue: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value_cents",
				Help:      "Order value distribution in cents",
				Buckets:   []float64{1000, 2500, 5000, 7500, 10000, 15000, 25000, 50000, 100000},
			},
		),
		OrderItemCount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_item_count",
				Help:      "Number of physical units per order",
				Buckets:   []float64{1, 2, 3, 5, 10, 15, 20},
			},
		),
		UnitsAllocated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "units_allocated_total",
				Help:      "Total inventory units allocated to orders",
			},
		),
		AllocationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "allocation_failures_total",
				Help:      "Total failed allocation attempts",
			},
			[]string{"reason"}, // reason: insufficient_stock, unit_conflict
		),
		CartItemsAdded: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_items_added_total",
				Help:      "Total products added to carts",
			},
		),
		CartItemsRemoved: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_items_removed_total",
				Help:      "Total products removed from carts",
			},
		),
		Signups: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "signups_total",
				Help:      "Total successful customer registrations",
			},
		),
	}
}
