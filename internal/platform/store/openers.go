package store

import (
	"context"
	"fmt"
	"time"

	"startupsignal/internal/platform/store/pg"
)

const (
	backoffStart   = 150 * time.Millisecond
	backoffCeiling = 2 * time.Second
)

var openPool = pg.Open

// openPG opens the pool, pings it with backoff and wraps it with our sql adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := openPool(ctx, pg.Config{
		URL:      cfg.PG.URL,
		AppName:  cfg.AppName,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	attempts := max(cfg.PG.ConnectRetries, 1)
	timeout := cfg.PG.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	if err := pingWithBackoff(ctx, attempts, timeout, p.Pool.Ping); err != nil {
		p.Close()
		return nil, err
	}
	s.Log.Info().Int32("max_conns", cfg.PG.MaxConns).Bool("log_sql", cfg.PG.LogSQL).Msg("postgres connected")
	return newPGAdapter(p), nil
}

// pingWithBackoff calls ping until it succeeds, ctx ends or attempts run out
func pingWithBackoff(ctx context.Context, attempts int, timeout time.Duration, ping func(context.Context) error) error {
	var lastErr error
	backoff := backoffStart
	for i := range attempts {
		toCtx, cancel := context.WithTimeout(ctx, timeout)
		lastErr = ping(toCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, backoffCeiling)
	}
	return fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, lastErr)
}
