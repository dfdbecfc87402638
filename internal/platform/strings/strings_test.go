package strings

import (
	"testing"

	kit "startupsignal/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	if got := IfEmpty(nil, []string{"GET"}); len(got) != 1 || got[0] != "GET" {
		t.Fatalf("IfEmpty(nil) = %v", got)
	}
	if got := IfEmpty([]int{1}, []int{2}); got[0] != 1 {
		t.Fatalf("IfEmpty(non-empty) = %v", got)
	}
}

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{"meta": "/meta", "/meta/": "/meta", " /a/b/ ": "/a/b"}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	kit.MustPanic(t, func() { MustPrefix(" / ") })
}

func TestTruncate(t *testing.T) {
	if Truncate("short", 10) != "short" {
		t.Fatalf("short strings must pass through")
	}
	if Truncate("abcdef", 0) != "abcdef" {
		t.Fatalf("max <= 0 disables truncation")
	}
	if got := Truncate("abcdef", 3); got != "abc"+TruncatedSuffix {
		t.Fatalf("Truncate = %q", got)
	}
	// "é" is two bytes; cutting at 2 would split it
	if got := Truncate("aébc", 2); got != "a"+TruncatedSuffix {
		t.Fatalf("Truncate split a rune: %q", got)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "  ", "stdout text", "x"); got != "stdout text" {
		t.Fatalf("FirstNonEmpty = %q", got)
	}
	if FirstNonEmpty() != "" {
		t.Fatalf("FirstNonEmpty() should be empty")
	}
}
