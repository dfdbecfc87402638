package store

import (
	"context"
	"errors"
	"testing"

	"startupsignal/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recTracer struct{ events []pg.QueryEvent }

func (r *recTracer) OnQuery(_ context.Context, ev pg.QueryEvent) { r.events = append(r.events, ev) }

type fakeRow struct{ err error }

func (r fakeRow) Scan(...any) error { return r.err }

// fakeRows implements pgx.Rows over a slice of int values
type fakeRows struct {
	vals []int
	i    int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Next() bool                                   { r.i++; return r.i <= len(r.vals) }
func (r *fakeRows) Values() ([]any, error)                       { return []any{r.vals[r.i-1]}, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }
func (r *fakeRows) Scan(dst ...any) error {
	*(dst[0].(*int)) = r.vals[r.i-1]
	return nil
}

type fakePgx struct {
	execErr  error
	queryErr error
	rowErr   error
	rows     []int
}

func (f fakePgx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("INSERT 0 1"), f.execErr
}

func (f fakePgx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return &fakeRows{vals: f.rows}, nil
}

func (f fakePgx) QueryRow(context.Context, string, ...any) pgx.Row { return fakeRow{err: f.rowErr} }

func TestTraced_EmitsPerStatement(t *testing.T) {
	tr := &recTracer{}
	q := traced{q: fakePgx{rowErr: errors.New("no rows")}, tracer: tr, slowUS: 0}
	ctx := context.Background()

	ct, err := q.Exec(ctx, "insert into t values ($1)", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ct.RowsAffected())

	rows, err := q.Query(ctx, "select v from t")
	require.NoError(t, err)
	rows.Close()

	err = q.QueryRow(ctx, "select 1").Scan()
	assert.EqualError(t, err, "no rows")

	require.Len(t, tr.events, 3)
	assert.Equal(t, "insert into t values ($1)", tr.events[0].SQL)
	assert.True(t, tr.events[0].Slow, "slowUS 0 marks everything slow")
	assert.EqualError(t, tr.events[2].Err, "no rows")
}

func TestTraced_NoTracerAndSlowDisabled(t *testing.T) {
	q := traced{q: fakePgx{queryErr: errors.New("boom")}}
	_, err := q.Query(context.Background(), "select 1")
	assert.EqualError(t, err, "boom")

	tr := &recTracer{}
	q = traced{q: fakePgx{}, tracer: tr, slowUS: -1000}
	_, _ = q.Exec(context.Background(), "select 1")
	require.Len(t, tr.events, 1)
	assert.False(t, tr.events[0].Slow)
}

func TestHelpers_ManyAndExecOne(t *testing.T) {
	q := traced{q: fakePgx{rows: []int{3, 1, 2}}}
	got, err := Many(context.Background(), q, func(r Row) (int, error) {
		var v int
		return v, r.Scan(&v)
	}, "select v from t")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, got)

	empty, err := Many(context.Background(), traced{q: fakePgx{}}, func(r Row) (int, error) { return 0, nil }, "select")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	require.NoError(t, ExecOne(context.Background(), q, "insert"))
	assert.Error(t, ExecOne(context.Background(), traced{q: fakePgx{execErr: errors.New("x")}}, "insert"))
}

func TestPGAdapter_NilPing(t *testing.T) {
	var a *pgAdapter
	assert.Error(t, a.Ping(context.Background()))
}

// fakeRunner is a TxRunner that runs fn against itself
type fakeRunner struct{ traced }

func (f fakeRunner) Tx(ctx context.Context, fn func(RowQuerier) error) error { return fn(f) }
