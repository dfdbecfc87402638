package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func pgErr(code string) *pgconn.PgError { return &pgconn.PgError{Code: code, Message: "pg says no"} }

func TestDBErrorCode(t *testing.T) {
	cases := map[string]ErrorCode{
		pgErrNotNullViolation:       ErrorCodeValidation,
		pgErrCheckViolation:         ErrorCodeValidation,
		pgErrUniqueViolation:        ErrorCodeValidation,
		pgErrStringDataTruncation:   ErrorCodeInvalidArgument,
		pgErrReadOnlySQLTransaction: ErrorCodeUnavailable,
		pgErrCannotConnectNow:       ErrorCodeUnavailable,
		pgErrUndefinedTable:         ErrorCodeDB,
	}
	for sqlstate, want := range cases {
		got, ok := DBErrorCode(fmt.Errorf("insert: %w", pgErr(sqlstate)))
		if !ok || got != want {
			t.Fatalf("DBErrorCode(%s) = %v/%v, want %v", sqlstate, got, ok, want)
		}
	}
	if _, ok := DBErrorCode(stderrs.New("plain")); ok {
		t.Fatalf("DBErrorCode should not match a plain error")
	}
}

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "x") != nil {
		t.Fatalf("FromPostgres(nil) should be nil")
	}
	err := FromPostgres(pgErr(pgErrCannotConnectNow), "journal insert")
	if !IsCode(err, ErrorCodeUnavailable) {
		t.Fatalf("FromPostgres code = %v", CodeOf(err))
	}
	if !IsCode(FromPostgres(stderrs.New("boom"), "x"), ErrorCodeDB) {
		t.Fatalf("FromPostgres(plain) should default to DB")
	}
	if !IsUndefinedTable(FromPostgres(pgErr(pgErrUndefinedTable), "x")) {
		t.Fatalf("IsUndefinedTable should see through the wrap")
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(nil) || IsRetryable(context.Canceled) || IsRetryable(fmt.Errorf("q: %w", context.DeadlineExceeded)) {
		t.Fatalf("nil and context errors must not retry")
	}
	if !IsRetryable(pgErr(pgErrSerializationFailure)) || !IsRetryable(pgErr(pgErrDeadlockDetected)) {
		t.Fatalf("contention errors should retry")
	}
	if IsRetryable(pgErr(pgErrUniqueViolation)) {
		t.Fatalf("constraint errors should not retry")
	}
	if !IsRetryable(stderrs.New("write tcp: connection reset by peer")) {
		t.Fatalf("connection reset should retry")
	}
	if IsRetryable(stderrs.New("syntax error")) {
		t.Fatalf("plain errors should not retry")
	}
}
