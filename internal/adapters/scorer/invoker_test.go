package scorer

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"startupsignal/internal/core/scoring"
	"startupsignal/internal/platform/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newScript(t *testing.T, body string, mut ...func(*Config)) *Invoker {
	t.Helper()
	cfg := Config{
		Command:        testkit.Script(t, body),
		Timeout:        5 * time.Second,
		KillGrace:      500 * time.Millisecond,
		MaxOutputBytes: 1 << 20,
	}
	for _, m := range mut {
		m(&cfg)
	}
	return New(cfg)
}

func TestInvoke_EchoesStdinUntilEOF(t *testing.T) {
	inv := newScript(t, "exec cat").Invoke(context.Background(), []byte(`{"industry":"Tech"}`))

	require.NoError(t, inv.LaunchErr)
	assert.True(t, inv.Exited)
	assert.Equal(t, 0, inv.ExitCode)
	assert.Equal(t, `{"industry":"Tech"}`, string(inv.Stdout))
	assert.Empty(t, inv.Stderr)
	assert.NotEmpty(t, inv.ID)
	assert.Positive(t, inv.Duration)
}

func TestInvoke_SeparatesStreamsAndExitCode(t *testing.T) {
	inv := newScript(t, `echo out; echo err 1>&2; exit 3`).Invoke(context.Background(), nil)

	assert.True(t, inv.Exited)
	assert.Equal(t, 3, inv.ExitCode)
	assert.Equal(t, "out\n", string(inv.Stdout))
	assert.Equal(t, "err\n", string(inv.Stderr))
	assert.Equal(t, scoring.ProcessError, scoring.Interpret(inv, 0).Kind)
}

func TestInvoke_ChunkedStdoutKeepsOrder(t *testing.T) {
	body := `printf '{"pred'; sleep 0.05; printf 'iction":"Low S'; sleep 0.05; printf 'uccess"}'`
	inv := newScript(t, body).Invoke(context.Background(), nil)

	require.True(t, inv.Exited)
	assert.Equal(t, `{"prediction":"Low Success"}`, string(inv.Stdout))
	o := scoring.Interpret(inv, 0)
	assert.Equal(t, scoring.Success, o.Kind)
}

func TestInvoke_IgnoresUnreadStdin(t *testing.T) {
	big := make([]byte, 1<<20)
	inv := newScript(t, `echo '{"ok":true}'`).Invoke(context.Background(), big)
	assert.True(t, inv.Exited)
	assert.Equal(t, 0, inv.ExitCode)
	assert.Equal(t, scoring.Success, scoring.Interpret(inv, 0).Kind)
}

func TestInvoke_DeadlineKills(t *testing.T) {
	i := newScript(t, "exec sleep 5", func(c *Config) { c.Timeout = 150 * time.Millisecond })

	start := time.Now()
	inv := i.Invoke(context.Background(), nil)

	assert.Less(t, time.Since(start), 3*time.Second)
	assert.True(t, inv.TimedOut)
	assert.False(t, inv.Cancelled)
	assert.False(t, inv.Exited)
	assert.Equal(t, scoring.Timeout, scoring.Interpret(inv, 0).Kind)
}

func TestInvoke_DeadlineWithGrandchildHoldingPipes(t *testing.T) {
	// sh forks sleep, which inherits stdout; the group kill ends it with sh
	i := newScript(t, "sleep 5; echo never", func(c *Config) {
		c.Timeout = 150 * time.Millisecond
		c.KillGrace = 200 * time.Millisecond
	})

	start := time.Now()
	inv := i.Invoke(context.Background(), nil)

	assert.Less(t, time.Since(start), 3*time.Second)
	assert.True(t, inv.TimedOut)
}

func TestInvoke_DeadlineKillsBackgroundChildren(t *testing.T) {
	// the background sleep holds both pipes; the group kill must reach it
	i := newScript(t, "sleep 4 & sleep 30", func(c *Config) {
		c.Timeout = 200 * time.Millisecond
		c.KillGrace = 0
	})

	start := time.Now()
	inv := i.Invoke(context.Background(), nil)

	assert.Less(t, time.Since(start), 3*time.Second)
	assert.True(t, inv.TimedOut)
	assert.Equal(t, scoring.Timeout, scoring.Interpret(inv, 0).Kind)
}

func TestInvoke_CallerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	inv := newScript(t, "exec sleep 5").Invoke(ctx, nil)
	assert.True(t, inv.TimedOut)
	assert.True(t, inv.Cancelled)
	assert.Contains(t, scoring.Interpret(inv, 0).Detail, "cancelled")
}

func TestInvoke_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	inv := newScript(t, "exec cat").Invoke(ctx, nil)
	assert.True(t, inv.TimedOut)
	assert.NoError(t, inv.LaunchErr)
}

func TestInvoke_LaunchFailure(t *testing.T) {
	i := New(Config{Command: filepath.Join(t.TempDir(), "no-such-scorer"), Timeout: time.Second})
	inv := i.Invoke(context.Background(), []byte(`{}`))

	require.Error(t, inv.LaunchErr)
	assert.False(t, inv.Exited)
	assert.Equal(t, scoring.LaunchFailure, scoring.Interpret(inv, 0).Kind)
}

func TestInvoke_OutputCap(t *testing.T) {
	i := newScript(t, `printf '%0100d' 0`, func(c *Config) { c.MaxOutputBytes = 10 })
	inv := i.Invoke(context.Background(), nil)

	assert.True(t, inv.Exited)
	assert.True(t, inv.Overflow)
	assert.Len(t, inv.Stdout, 10)
	assert.Equal(t, scoring.MalformedOutput, scoring.Interpret(inv, 0).Kind)
}

func TestInvoke_PassesInvocationIDAndEnv(t *testing.T) {
	i := newScript(t, `printf '%s|%s' "$`+InvocationIDEnv+`" "$EXTRA"`, func(c *Config) {
		c.Env = []string{"EXTRA=yes"}
	})
	i.newID = func() string { return "fixed-id" }

	inv := i.Invoke(context.Background(), nil)
	assert.Equal(t, "fixed-id", inv.ID)
	assert.Equal(t, "fixed-id|yes", string(inv.Stdout))
}

func TestInvoke_ArgsAndDir(t *testing.T) {
	dir := t.TempDir()
	i := New(Config{Command: testkit.Shell(t), Args: []string{"-c", "pwd"}, Dir: dir, Timeout: time.Second})
	inv := i.Invoke(context.Background(), nil)

	want, _ := filepath.EvalSymlinks(dir)
	got, _ := filepath.EvalSymlinks(string(inv.Stdout[:len(inv.Stdout)-1]))
	assert.Equal(t, want, got)
}

func TestInvoke_ConcurrentCallsDoNotMix(t *testing.T) {
	i := newScript(t, `sleep 0.0$((RANDOM % 5)) 2>/dev/null; exec cat`)

	var g errgroup.Group
	for n := range 16 {
		g.Go(func() error {
			payload := fmt.Sprintf(`{"employees":%d}`, n)
			inv := i.Invoke(context.Background(), []byte(payload))
			if string(inv.Stdout) != payload {
				return fmt.Errorf("call %d got %q", n, inv.Stdout)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestCapture(t *testing.T) {
	c := &capture{max: 5}
	n, err := c.Write([]byte("abc"))
	assert.Equal(t, 3, n)
	assert.NoError(t, err)
	n, _ = c.Write([]byte("defg"))
	assert.Equal(t, 4, n)
	assert.True(t, c.overflow)
	n, _ = c.Write([]byte("h"))
	assert.Equal(t, 1, n)
	assert.Equal(t, "abcde", string(c.Bytes()))

	unlimited := &capture{}
	_, _ = unlimited.Write([]byte("0123456789"))
	assert.False(t, unlimited.overflow)
	assert.Len(t, unlimited.Bytes(), 10)
}
