// Package metrics exposes Prometheus counters for the power monitor.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "battery_alarm"

	// readHeaderTimeout bounds slow clients of the metrics endpoint.
	readHeaderTimeout = 5 * time.Second
	// shutdownTimeout bounds the graceful shutdown of the endpoint.
	shutdownTimeout = 5 * time.Second
)

// Metrics groups the monitor collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	polls         *prometheus.CounterVec
	alarms        prometheus.Counter
	alarmFailures prometheus.Counter
	queryFailures prometheus.Counter
	armed         prometheus.Gauge
}

// New registers the monitor collectors plus the Go and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		polls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "polls_total",
			Help:      "Decision cycles by observed power status.",
		}, []string{"status"}),
		alarms: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "alarms_total",
			Help:      "Alarm sounds played.",
		}),
		alarmFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "alarm_failures_total",
			Help:      "Alarm sounds that failed to play.",
		}),
		queryFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "power",
			Name:      "query_failures_total",
			Help:      "Power queries that failed and were treated as battery.",
		}),
		armed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "alarm",
			Name:      "armed",
			Help:      "1 while the alarm is armed.",
		}),
	}
}

// ObservePoll records one decision cycle.
func (m *Metrics) ObservePoll(armed bool, status string) {
	if m == nil {
		return
	}

	m.polls.WithLabelValues(status).Inc()

	if armed {
		m.armed.Set(1)
	} else {
		m.armed.Set(0)
	}
}

// AlarmPlayed counts a played alarm sound.
func (m *Metrics) AlarmPlayed() {
	if m == nil {
		return
	}

	m.alarms.Inc()
}

// AlarmFailed counts an alarm sound that could not be played.
func (m *Metrics) AlarmFailed() {
	if m == nil {
		return
	}

	m.alarmFailures.Inc()
}

// QueryFailed counts a failed power query.
func (m *Metrics) QueryFailed() {
	if m == nil {
		return
	}

	m.queryFailures.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes handler on address under /metrics until ctx is canceled.
func Serve(ctx context.Context, address string, handler http.Handler) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	srv := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx) //nolint:contextcheck // Shutdown needs a live context.
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve metrics: %w", err)
	}

	return nil
}
