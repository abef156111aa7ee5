package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_orders_placed_total",
		Help: "Total number of orders committed",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_orders_failed_total",
		Help: "Total number of order placements that were rejected or rolled back",
	}, []string{"reason"})

	OrderValue = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pos_order_value",
		Help:    "Order totals including tax",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000},
	})

	StockAdjustmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_stock_adjustments_total",
		Help: "Total number of stock adjustments by direction",
	}, []string{"direction"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
