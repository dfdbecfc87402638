// Package modkit provides module wiring and core deps
package modkit

import (
	"startupsignal/internal/platform/config"
	"startupsignal/internal/platform/logger"
	"startupsignal/internal/platform/metrics"
	"startupsignal/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// PG is nil when the outcome journal is disabled
	PG store.TxRunner

	// Metrics is nil in tests that do not care about instrumentation
	Metrics *metrics.Registry
}

// MetricsOrNew returns d.Metrics, or a private registry when none was wired
func (d Deps) MetricsOrNew() *metrics.Registry {
	if d.Metrics != nil {
		return d.Metrics
	}
	return metrics.New()
}
