package time

import (
	"testing"
	"time"
)

func TestUTCPtr(t *testing.T) {
	if UTCPtr(time.Time{}) != nil {
		t.Fatalf("zero time must map to nil")
	}
	in := time.Date(2025, 5, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	got := UTCPtr(in)
	if got == nil || got.Location() != time.UTC || !got.Equal(in) {
		t.Fatalf("UTCPtr(%v) = %v", in, got)
	}
}
