package store

import (
	"context"
	"fmt"
)

// ExecOne runs a write and asserts exactly 1 row affected
func ExecOne(ctx context.Context, q RowQuerier, sql string, args ...any) error {
	ct, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if n := ct.RowsAffected(); n != 1 {
		return fmt.Errorf("expected 1 row affected, got %d", n)
	}
	return nil
}

// Many maps every row into T with scan
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
