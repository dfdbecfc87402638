package domain

import (
	"context"
	"time"

	"startupsignal/internal/core/scoring"
)

// Invoker runs one scorer process for a payload
type Invoker interface {
	Invoke(ctx context.Context, payload []byte) scoring.Invocation
}

// Predictor admits, runs and classifies one prediction.
// A non-nil error means the request never reached the scorer
type Predictor interface {
	Predict(ctx context.Context, payload []byte) (scoring.Outcome, error)
}

// Summarizer reports journaled outcome counts
type Summarizer interface {
	Summary(ctx context.Context, window time.Duration) (Summary, error)
}

// Journal persists outcomes
type Journal interface {
	Insert(ctx context.Context, rec Record) error
	Stats(ctx context.Context, since time.Time) ([]KindStat, error)
}
