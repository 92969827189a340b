package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewOrdersSubmittedTotal returns a Prometheus counter for orders accepted into dispatch
func NewOrdersSubmittedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_submitted_total",
		Help: "Total number of orders accepted into dispatch",
	})
}

// NewOrdersReassignedTotal returns a Prometheus counter vector for order reassignments by reason
func NewOrdersReassignedTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_reassigned_total",
		Help: "Total number of order reassignments, labeled by reason",
	}, []string{"reason"})
}

// NewOrdersAcceptedTotal returns a Prometheus counter for accepted orders
func NewOrdersAcceptedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_accepted_total",
		Help: "Total number of orders accepted by an operator",
	})
}

// NewOrdersCompletedTotal returns a Prometheus counter for completed orders
func NewOrdersCompletedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_completed_total",
		Help: "Total number of orders completed and removed",
	})
}

// NewSessionsOpen returns a Prometheus gauge for currently open relay sessions
func NewSessionsOpen() prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sessions_open",
		Help: "Number of currently open customer-operator relay sessions",
	})
}

// NewNotifyFailuresTotal returns a Prometheus counter for failed outbound deliveries
func NewNotifyFailuresTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notify_failures_total",
		Help: "Total number of failed outbound delivery attempts",
	})
}

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}
