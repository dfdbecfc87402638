package service

import (
	"startupsignal/internal/core/scoring"
	"startupsignal/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

type predictMetrics struct {
	outcomes   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	inflight   prometheus.Gauge
	rejected   prometheus.Counter
	drift      prometheus.Counter
	journalErr prometheus.Counter
}

func newPredictMetrics(reg *metrics.Registry) *predictMetrics {
	f := reg.Factory()
	m := &predictMetrics{
		outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "predict",
			Name:      "outcomes_total",
			Help:      "Scorer invocations by outcome kind",
		}, []string{"kind"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: "predict",
			Name:      "scorer_duration_seconds",
			Help:      "Scorer wall time by outcome kind",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"kind"}),
		inflight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: "predict",
			Name:      "inflight",
			Help:      "Scorer processes currently running",
		}),
		rejected: f.NewCounter(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "predict",
			Name:      "admission_rejected_total",
			Help:      "Requests turned away because every scorer slot stayed busy",
		}),
		drift: f.NewCounter(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "predict",
			Name:      "schema_drift_total",
			Help:      "Success documents that did not match the result schema",
		}),
		journalErr: f.NewCounter(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "predict",
			Name:      "journal_errors_total",
			Help:      "Outcome journal writes that failed",
		}),
	}
	// zero series so dashboards see every kind from the start
	for _, k := range scoring.Kinds() {
		m.outcomes.WithLabelValues(k.String())
	}
	return m
}
