package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	ErrorTotal      *prometheus.CounterVec

	// Billing metrics
	ChargesAccrued *prometheus.CounterVec
	AccruedAmount  *prometheus.CounterVec
	BillsOpened    prometheus.Counter
	BillsSettled   prometheus.Counter
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time spent handling HTTP requests",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "path", "status"}),
		RequestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		ErrorTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Total number of HTTP error responses",
		}, []string{"method", "path", "status"}),
		ChargesAccrued: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "billing_charges_accrued_total",
			Help:      "Total number of bill items appended, by source type",
		}, []string{"source"}),
		AccruedAmount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "billing_accrued_amount_total",
			Help:      "Total monetary amount accrued, by source type",
		}, []string{"source"}),
		BillsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "billing_bills_opened_total",
			Help:      "Total number of bills opened by the accrual engine",
		}),
		BillsSettled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "billing_bills_settled_total",
			Help:      "Total number of bills marked paid",
		}),
	}
}
