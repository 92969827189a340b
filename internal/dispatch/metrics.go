package dispatch

import "github.com/prometheus/client_golang/prometheus"

// Reassignment reasons
const (
	ReasonReject  = "reject"
	ReasonTimeout = "timeout"
)

// Metrics counts engine activity. A nil *Metrics or nil field is a no-op.
type Metrics struct {
	Submitted      prometheus.Counter
	Reassigned     *prometheus.CounterVec
	Accepted       prometheus.Counter
	Completed      prometheus.Counter
	NotifyFailures prometheus.Counter
}

func (m *Metrics) incSubmitted() {
	if m != nil && m.Submitted != nil {
		m.Submitted.Inc()
	}
}

func (m *Metrics) incReassigned(reason string) {
	if m != nil && m.Reassigned != nil {
		m.Reassigned.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) incAccepted() {
	if m != nil && m.Accepted != nil {
		m.Accepted.Inc()
	}
}

func (m *Metrics) incCompleted() {
	if m != nil && m.Completed != nil {
		m.Completed.Inc()
	}
}

func (m *Metrics) incNotifyFailures() {
	if m != nil && m.NotifyFailures != nil {
		m.NotifyFailures.Inc()
	}
}
