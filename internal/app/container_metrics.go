package app

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"foodline-dispatch/internal/dispatch"
	"foodline-dispatch/internal/metrics"
)

type metricsOut struct {
	dig.Out

	Dispatch     *dispatch.Metrics
	SessionsOpen prometheus.Gauge   `name:"sessions_open"`
	RateLimited  prometheus.Counter `name:"rate_limit_exceeded_total"`
}

type sessionMetricsIn struct {
	dig.In

	SessionsOpen prometheus.Gauge `name:"sessions_open"`
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container, newMetrics)
}

func newMetrics() metricsOut {
	return metricsOut{
		Dispatch: &dispatch.Metrics{
			Submitted:      registered(metrics.NewOrdersSubmittedTotal()).(prometheus.Counter),
			Reassigned:     registered(metrics.NewOrdersReassignedTotal()).(*prometheus.CounterVec),
			Accepted:       registered(metrics.NewOrdersAcceptedTotal()).(prometheus.Counter),
			Completed:      registered(metrics.NewOrdersCompletedTotal()).(prometheus.Counter),
			NotifyFailures: registered(metrics.NewNotifyFailuresTotal()).(prometheus.Counter),
		},
		SessionsOpen: registered(metrics.NewSessionsOpen()).(prometheus.Gauge),
		RateLimited:  registered(metrics.NewRateLimitExceededTotal()).(prometheus.Counter),
	}
}

// registered adds the collector to the default registry, reusing the
// existing one when a second container is built in the same process.
func registered(c prometheus.Collector) prometheus.Collector {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector
		}
		panic(err)
	}
	return c
}
