package testkit

import (
	"sync"
	"testing"
	"time"
)

var (
	clock   = func() string { return "real" }
	limitIn = 4
)

func TestSwap_RestoresAfterSubtest(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &clock, func() string { return "fake" })
		Swap(t, &limitIn, 1)
		if clock() != "fake" || limitIn != 1 {
			t.Fatalf("swap did not take effect")
		}
	})
	if clock() != "real" || limitIn != 4 {
		t.Fatalf("swap did not restore: clock=%q limit=%d", clock(), limitIn)
	}
}

func TestSerial_NoInterleaving(t *testing.T) {
	var mu sync.Mutex
	var seq []string
	record := func(s string) {
		mu.Lock()
		seq = append(seq, s)
		mu.Unlock()
	}

	t.Run("group", func(t *testing.T) {
		for _, name := range []string{"A", "B"} {
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				Serial(t)
				record(name + "-start")
				time.Sleep(20 * time.Millisecond)
				record(name + "-end")
			})
		}
	})

	if len(seq) != 4 {
		t.Fatalf("seq = %v", seq)
	}
	if seq[0][:1] != seq[1][:1] || seq[2][:1] != seq[3][:1] {
		t.Fatalf("expected grouped execution, got %v", seq)
	}
}
