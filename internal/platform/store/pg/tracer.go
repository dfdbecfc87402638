package pg

import (
	"context"
	"strings"

	"startupsignal/internal/platform/logger"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives an event per statement
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs every statement at info, slow or failed ones at warn.
// The request id from ctx is attached when present
func Tracer(root logger.Logger) QueryTracer {
	return &zlTracer{log: root.With().Str("component", "pg").Logger()}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnQuery(ctx context.Context, ev QueryEvent) {
	log := logger.Enrich(ctx, z.log)
	evt := log.Info()
	if ev.Slow || ev.Err != nil {
		evt = log.Warn()
	}
	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", Compact(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg("pg query")
}

// Compact folds whitespace runs into single spaces
func Compact(s string) string { return strings.Join(strings.Fields(s), " ") }
