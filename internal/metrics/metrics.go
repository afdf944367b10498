// Package metrics exposes Prometheus counters for the booking flow.
package metrics

import (
	"net/http"

	"github.com/mark3labs/travelhub/internal/booking"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the booking counters and the registry they live on.
type Metrics struct {
	registry *prometheus.Registry

	// Transitions counts wizard step changes
	Transitions *prometheus.CounterVec
	// GateFailures counts rejected contact and payment submissions by kind
	GateFailures *prometheus.CounterVec
	// BookingsConfirmed counts confirmations by catalog tab
	BookingsConfirmed *prometheus.CounterVec
}

// New registers the booking counters on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "travelhub_wizard_transitions_total",
				Help: "Total number of booking wizard step transitions",
			},
			[]string{"from", "to"},
		),
		GateFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "travelhub_gate_failures_total",
				Help: "Total number of rejected contact or payment submissions",
			},
			[]string{"kind"},
		),
		BookingsConfirmed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "travelhub_bookings_confirmed_total",
				Help: "Total number of confirmed bookings",
			},
			[]string{"tab"},
		),
	}
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Observe records the outcome of a wizard transition from prev to next.
// A nil receiver is a no-op.
func (m *Metrics) Observe(prev, next booking.Wizard, err error) {
	if m == nil {
		return
	}
	if kind := booking.KindName(err); kind != "" {
		m.GateFailures.WithLabelValues(kind).Inc()
	}
	if err != nil || prev.Step() == next.Step() {
		return
	}
	m.Transitions.WithLabelValues(prev.Step().String(), next.Step().String()).Inc()
	if next.Step() == booking.StepConfirmation {
		m.BookingsConfirmed.WithLabelValues(next.Tab().String()).Inc()
	}
}
