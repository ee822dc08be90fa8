package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// VerificationMetrics records outcome counters and latency for the donation
// verification workflow.
type VerificationMetrics struct {
	duration *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
}

// NewVerificationMetrics registers the workflow metrics on the provided registerer.
func NewVerificationMetrics(reg prometheus.Registerer) *VerificationMetrics {
	if reg == nil {
		return &VerificationMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "donation_verification_duration_seconds",
		Help:    "Duration of donation verification requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"action"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "donation_verification_outcomes_total",
		Help: "Donation verification requests by action and outcome.",
	}, []string{"action", "outcome"})
	reg.MustRegister(duration, outcomes)
	return &VerificationMetrics{
		duration: duration,
		outcomes: outcomes,
	}
}

// ObserveDuration records the duration for the given action.
func (m *VerificationMetrics) ObserveDuration(action string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(action)).Observe(duration.Seconds())
}

// IncOutcome increments the outcome counter for the given action.
func (m *VerificationMetrics) IncOutcome(action, outcome string) {
	if m == nil || m.outcomes == nil {
		return
	}
	m.outcomes.WithLabelValues(normalizeLabel(action), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return value
}
