package net

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestWithRequestAndRequestID(t *testing.T) {
	ctx := WithRequest(context.Background(), "req-42")
	if got := RequestID(ctx); got != "req-42" {
		t.Fatalf("RequestID = %q, want req-42", got)
	}
	if RequestID(context.Background()) != "" {
		t.Fatalf("RequestID on empty ctx should be empty")
	}
	if WithRequest(context.Background(), "") != context.Background() {
		t.Fatalf("empty id should not wrap")
	}
}

func TestRequestID_FromChiMiddleware(t *testing.T) {
	var seen string
	h := chimw.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimw.RequestIDHeader, "upstream-1")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "upstream-1" {
		t.Fatalf("RequestID via chi = %q", seen)
	}
}
