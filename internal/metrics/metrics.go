// Package metrics exposes Prometheus collectors for live connections, page
// events, diffs and the statistics circuit breaker.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker"

	"github.com/monebot/website/pkg/core"
	"github.com/monebot/website/pkg/router"
)

const namespace = "monebot_web"

// Metrics holds the site collectors.
type Metrics struct {
	ConnectionsActive *prometheus.GaugeVec
	ConnectionsTotal  *prometheus.CounterVec
	DisconnectsTotal  *prometheus.CounterVec
	EventsTotal       *prometheus.CounterVec
	DiffSlots         *prometheus.HistogramVec

	// BreakerState is 0 closed, 1 half-open, 2 open.
	BreakerState       *prometheus.GaugeVec
	BreakerTransitions *prometheus.CounterVec

	HTTPDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates the collectors and registers them on a fresh registry together
// with the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		ConnectionsActive: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "connections_active",
			Help:      "Number of open live connections by page.",
		}, []string{"page"}),
		ConnectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "connections_total",
			Help:      "Total live connections joined by page.",
		}, []string{"page"}),
		DisconnectsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "disconnects_total",
			Help:      "Total live disconnects by page and reason.",
		}, []string{"page", "reason"}),
		EventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "events_total",
			Help:      "Client events handled by page, event and status.",
		}, []string{"page", "event", "status"}),
		DiffSlots: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "diff_slots",
			Help:      "Slots carried per pushed diff.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
		}, []string{"page"}),
		BreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "stats",
			Name:      "circuit_breaker_state",
			Help:      "Current circuit breaker state (0=closed, 1=half-open, 2=open).",
		}, []string{"component"}),
		BreakerTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stats",
			Name:      "circuit_breaker_state_changes_total",
			Help:      "Circuit breaker state transitions by component and new state.",
		}, []string{"component", "state"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration by route pattern and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.ConnectionsActive,
		m.ConnectionsTotal,
		m.DisconnectsTotal,
		m.EventsTotal,
		m.DiffSlots,
		m.BreakerState,
		m.BreakerTransitions,
		m.HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Hooks returns router hooks that feed the live collectors.
func (m *Metrics) Hooks() router.Hooks {
	return router.Hooks{
		OnConnect: func(page string) {
			m.ConnectionsActive.WithLabelValues(page).Inc()
			m.ConnectionsTotal.WithLabelValues(page).Inc()
		},
		OnDisconnect: func(page string, reason core.TerminateReason) {
			m.ConnectionsActive.WithLabelValues(page).Dec()
			m.DisconnectsTotal.WithLabelValues(page, reason.String()).Inc()
		},
		OnEvent: func(page, event string, err error) {
			status := "ok"
			if err != nil {
				status = "error"
			}
			m.EventsTotal.WithLabelValues(page, event, status).Inc()
		},
		OnDiff: func(page string, slots int) {
			m.DiffSlots.WithLabelValues(page).Observe(float64(slots))
		},
	}
}

// BreakerObserver returns a state change callback for the named breaker.
func (m *Metrics) BreakerObserver(component string) func(from, to gobreaker.State) {
	m.BreakerState.WithLabelValues(component).Set(0)
	return func(from, to gobreaker.State) {
		m.BreakerState.WithLabelValues(component).Set(breakerValue(to))
		m.BreakerTransitions.WithLabelValues(component, to.String()).Inc()
	}
}

func breakerValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// ObserveHTTP records one request.
func (m *Metrics) ObserveHTTP(route string, status int, d time.Duration) {
	m.HTTPDuration.WithLabelValues(route, http.StatusText(status)).Observe(d.Seconds())
}
