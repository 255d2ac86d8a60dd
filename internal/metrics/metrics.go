// Package metrics exposes Prometheus instrumentation for scene persistence.
package metrics

import (
	"context"

	"github.com/aretw0/leveledit/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
	Objects    *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leveledit_persist_operations_total",
				Help: "Scene save and load operations by outcome",
			},
			[]string{"op", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "leveledit_persist_duration_seconds",
				Help:    "Duration of scene save and load operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		Objects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "leveledit_persist_objects_total",
				Help: "Scene objects written or read",
			},
			[]string{"op"},
		),
	}
	reg.MustRegister(m.Operations, m.Duration, m.Objects)
	return m
}

// Observe records one persistence event.
func (m *Metrics) Observe(_ context.Context, e *domain.PersistEvent) {
	outcome := "ok"
	if e.Err != nil {
		outcome = "error"
	}
	m.Operations.WithLabelValues(e.Op, outcome).Inc()
	m.Duration.WithLabelValues(e.Op).Observe(e.Duration.Seconds())
	m.Objects.WithLabelValues(e.Op).Add(float64(e.Objects))
}

// Hooks returns persistence hooks that feed these metrics.
func (m *Metrics) Hooks() domain.PersistHooks {
	return domain.PersistHooks{
		OnSave: m.Observe,
		OnLoad: m.Observe,
	}
}
