// Package testkit provides testing helpers
package testkit

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// MustPanic asserts that fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
}

// MustNotPanic asserts that fn does not panic
func MustNotPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	fn()
}

// MustContain asserts that haystack contains needle. On failure the haystack is written
// to a temp file so long outputs stay readable
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		tmpfile := filepath.Join(t.TempDir(), "testkit_output.txt")
		_ = os.WriteFile(tmpfile, []byte(haystack), 0o600)
		t.Fatalf("expected output to contain %q\n\nfull output written to %s", needle, tmpfile)
	}
}

// Shell returns the path of a POSIX sh, skipping the test when none is available
func Shell(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("posix shell scripts are not supported on windows")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not found in PATH")
	}
	return sh
}

// Script writes body as an executable sh script in a temp dir and returns its path.
// Scorer tests use this to stand up fake model processes
func Script(t *testing.T, body string) string {
	t.Helper()
	sh := Shell(t)
	path := filepath.Join(t.TempDir(), "scorer.sh")
	src := "#!" + sh + "\n" + body + "\n"
	if err := os.WriteFile(path, []byte(src), 0o700); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}
