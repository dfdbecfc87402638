// Package service runs predictions through the scorer bridge with admission control
package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"startupsignal/internal/core/scoring"
	perr "startupsignal/internal/platform/errors"
	"startupsignal/internal/platform/logger"
	"startupsignal/internal/platform/metrics"
	pnet "startupsignal/internal/platform/net"
	"startupsignal/internal/services/api/predict/domain"

	"golang.org/x/sync/semaphore"
)

// Svc implements domain.Predictor and domain.Summarizer
type Svc struct {
	inv     domain.Invoker
	cfg     Config
	sem     *semaphore.Weighted
	journal domain.Journal
	schema  *scoring.ResultSchema
	m       *predictMetrics
	log     logger.Logger
	now     func() time.Time
}

// Option configures Svc
type Option func(*Svc)

// WithJournal enables outcome persistence
func WithJournal(j domain.Journal) Option { return func(s *Svc) { s.journal = j } }

// WithSchema enables the drift check on success documents
func WithSchema(rs *scoring.ResultSchema) Option { return func(s *Svc) { s.schema = rs } }

// WithMetrics registers the predict collectors on reg
func WithMetrics(reg *metrics.Registry) Option {
	return func(s *Svc) { s.m = newPredictMetrics(reg) }
}

// WithLogger overrides the component logger
func WithLogger(l logger.Logger) Option { return func(s *Svc) { s.log = l } }

// New constructs the service. Without WithMetrics a private registry is used
func New(inv domain.Invoker, cfg Config, opts ...Option) *Svc {
	cfg = cfg.withDefaults()
	s := &Svc{
		inv: inv,
		cfg: cfg,
		sem: semaphore.NewWeighted(cfg.MaxConcurrent),
		log: *logger.Named("predict"),
		now: time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	if s.m == nil {
		s.m = newPredictMetrics(metrics.New())
	}
	return s
}

// Config returns the effective configuration
func (s *Svc) Config() Config { return s.cfg }

// JournalEnabled reports whether outcomes are persisted
func (s *Svc) JournalEnabled() bool { return s.journal != nil }

// Predict waits for a scorer slot, runs one invocation and classifies it.
// The returned error is only set when admission failed
func (s *Svc) Predict(ctx context.Context, payload []byte) (scoring.Outcome, error) {
	if err := s.admit(ctx); err != nil {
		return scoring.Outcome{}, err
	}
	defer s.sem.Release(1)

	out := scoring.Interpret(s.invoke(ctx, payload), s.cfg.DetailBytes)
	s.observe(ctx, out)
	s.record(ctx, out)
	return out, nil
}

func (s *Svc) invoke(ctx context.Context, payload []byte) scoring.Invocation {
	s.m.inflight.Inc()
	defer s.m.inflight.Dec()
	return s.inv.Invoke(ctx, payload)
}

func (s *Svc) admit(ctx context.Context) error {
	if s.sem.TryAcquire(1) {
		return nil
	}
	if s.cfg.QueueWait > 0 {
		wctx, cancel := context.WithTimeout(ctx, s.cfg.QueueWait)
		err := s.sem.Acquire(wctx, 1)
		cancel()
		if err == nil {
			return nil
		}
	}
	s.m.rejected.Inc()
	l := logger.Enrich(ctx, s.log)
	l.Warn().
		Int64("max_concurrent", s.cfg.MaxConcurrent).
		Dur("queue_wait", s.cfg.QueueWait).
		Msg("scorer admission rejected")
	return perr.WithDetail(
		perr.New(perr.ErrorCodeUnavailable, "Scorer at capacity"),
		fmt.Sprintf("all %d scorer slots stayed busy for %s", s.cfg.MaxConcurrent, s.cfg.QueueWait),
	)
}

func (s *Svc) observe(ctx context.Context, out scoring.Outcome) {
	kind := out.Kind.String()
	s.m.outcomes.WithLabelValues(kind).Inc()
	s.m.duration.WithLabelValues(kind).Observe(out.Duration.Seconds())

	l := logger.Enrich(logger.WithInvocation(ctx, out.InvocationID), s.log)
	switch out.Kind {
	case scoring.Success:
		if err := s.schema.Check(out.Document); err != nil {
			s.m.drift.Inc()
			l.Warn().Err(err).Msg("scorer document does not match result schema")
		}
		l.Debug().Dur("duration", out.Duration).Msg("prediction succeeded")
	case scoring.ModelRejected:
		l.Info().Str("detail", out.Detail).Msg("scorer rejected input")
	default:
		l.Error().
			Str("kind", kind).
			Int("exit_code", out.ExitCode).
			Bool("exited", out.Exited).
			Str("detail", out.Detail).
			Dur("duration", out.Duration).
			Msg("prediction failed")
	}
}

// StatusFor is the HTTP status the gateway answers for out
func StatusFor(out scoring.Outcome) int {
	if out.OK() {
		return http.StatusOK
	}
	return perr.HTTPStatus(out.Err())
}

func (s *Svc) record(ctx context.Context, out scoring.Outcome) {
	if s.journal == nil {
		return
	}
	rec := domain.Record{
		InvocationID: out.InvocationID,
		RequestID:    pnet.RequestID(ctx),
		Kind:         out.Kind.String(),
		HTTPStatus:   StatusFor(out),
		DurationMs:   out.Duration.Milliseconds(),
		CreatedAt:    s.now(),
	}
	if out.Exited {
		code := out.ExitCode
		rec.ExitCode = &code
	}
	if !out.OK() {
		rec.Detail = out.Detail
	}

	// the client may already be gone; the journal still gets the row
	jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.JournalTimeout)
	defer cancel()

	err := s.journal.Insert(jctx, rec)
	if err != nil && perr.IsRetryable(err) {
		err = s.journal.Insert(jctx, rec)
	}
	if err != nil {
		s.m.journalErr.Inc()
		l := logger.Enrich(ctx, s.log)
		l.Error().Err(err).
			Str("invocation_id", out.InvocationID).
			Msg("outcome journal write failed")
	}
}

// Summary counts journaled outcomes over the trailing window. Every kind is
// listed, zero counts included
func (s *Svc) Summary(ctx context.Context, window time.Duration) (domain.Summary, error) {
	if s.journal == nil {
		return domain.Summary{}, perr.Unavailablef("outcome journal is disabled")
	}
	if window <= 0 {
		return domain.Summary{}, perr.WithField(perr.InvalidArgf("window must be positive"), "since")
	}
	until := s.now().UTC()
	since := until.Add(-window)

	stats, err := s.journal.Stats(ctx, since)
	if err != nil {
		return domain.Summary{}, err
	}
	byKind := make(map[string]domain.KindStat, len(stats))
	for _, st := range stats {
		byKind[st.Kind] = st
	}

	sum := domain.Summary{Since: since, Until: until, Kinds: []domain.KindStat{}}
	for _, k := range scoring.Kinds() {
		st, ok := byKind[k.String()]
		if !ok {
			st = domain.KindStat{Kind: k.String()}
		}
		sum.Total += st.Count
		sum.Kinds = append(sum.Kinds, st)
	}
	// kinds written by another build still count
	for _, st := range stats {
		if _, known := scoring.ParseKind(st.Kind); !known {
			sum.Total += st.Count
			sum.Kinds = append(sum.Kinds, st)
		}
	}
	return sum, nil
}
