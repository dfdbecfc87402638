// Package repo persists prediction outcomes in Postgres
package repo

import (
	"context"
	"time"

	perr "startupsignal/internal/platform/errors"
	"startupsignal/internal/platform/store"
	ptime "startupsignal/internal/platform/time"
	"startupsignal/internal/services/api/predict/domain"

	"github.com/google/uuid"
)

var ddl = []string{`
CREATE TABLE IF NOT EXISTS prediction_outcomes (
	id            uuid PRIMARY KEY,
	invocation_id text NOT NULL DEFAULT '',
	request_id    text NOT NULL DEFAULT '',
	kind          text NOT NULL,
	http_status   int  NOT NULL,
	exit_code     int,
	duration_ms   bigint NOT NULL,
	detail        text NOT NULL DEFAULT '',
	created_at    timestamptz NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS prediction_outcomes_created_at_idx ON prediction_outcomes (created_at)`,
}

// Migrate creates the journal table when missing
func Migrate(ctx context.Context, q store.RowQuerier) error {
	for _, stmt := range ddl {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return perr.WithOp(perr.FromPostgres(err, "create prediction_outcomes"), "journal.migrate")
		}
	}
	return nil
}

// PG is the Postgres journal
type PG struct {
	q     store.RowQuerier
	newID func() uuid.UUID
}

// NewPG binds the journal to a querier
func NewPG(q store.RowQuerier) *PG { return &PG{q: q, newID: uuid.New} }

// Insert appends one outcome. A zero CreatedAt lets the database stamp the row
func (r *PG) Insert(ctx context.Context, rec domain.Record) error {
	err := store.ExecOne(ctx, r.q, `
INSERT INTO prediction_outcomes
	(id, invocation_id, request_id, kind, http_status, exit_code, duration_ms, detail, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9::timestamptz, now()))`,
		r.newID(), rec.InvocationID, rec.RequestID, rec.Kind, rec.HTTPStatus,
		rec.ExitCode, rec.DurationMs, rec.Detail, ptime.UTCPtr(rec.CreatedAt),
	)
	return perr.WithOp(perr.FromPostgres(err, "insert prediction outcome"), "journal.insert")
}

// Stats groups outcomes created at or after since by kind
func (r *PG) Stats(ctx context.Context, since time.Time) ([]domain.KindStat, error) {
	out, err := store.Many(ctx, r.q, scanStat, `
SELECT kind, count(*), COALESCE(avg(duration_ms), 0)::bigint, COALESCE(max(duration_ms), 0)
FROM prediction_outcomes
WHERE created_at >= $1
GROUP BY kind
ORDER BY kind`, since.UTC())
	if perr.IsUndefinedTable(err) {
		// nothing journaled yet on a database that was never migrated
		return []domain.KindStat{}, nil
	}
	if err != nil {
		return nil, perr.WithOp(perr.FromPostgres(err, "summarize prediction outcomes"), "journal.stats")
	}
	return out, nil
}

func scanStat(row store.Row) (domain.KindStat, error) {
	var s domain.KindStat
	err := row.Scan(&s.Kind, &s.Count, &s.AvgMs, &s.MaxMs)
	return s, err
}
