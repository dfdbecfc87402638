// Package scorer runs the external scoring process: one child per request, the request
// on stdin, and both output streams captured until the process and its pipes are done
package scorer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"startupsignal/internal/core/scoring"
	"startupsignal/internal/platform/logger"
	pstrings "startupsignal/internal/platform/strings"

	"github.com/google/uuid"
)

// InvocationIDEnv carries the invocation id into the scorer's environment
const InvocationIDEnv = "SCORER_INVOCATION_ID"

// logTextMax bounds stream excerpts in failure logs
const logTextMax = 2 << 10

// Invoker launches scorer processes. It holds no per-call state and is safe for concurrent use
type Invoker struct {
	cfg   Config
	log   logger.Logger
	newID func() string
}

// Option mutates an Invoker during New
type Option func(*Invoker)

// WithLogger overrides the component logger
func WithLogger(l logger.Logger) Option { return func(i *Invoker) { i.log = l } }

// WithIDFunc overrides invocation id generation
func WithIDFunc(fn func() string) Option { return func(i *Invoker) { i.newID = fn } }

// New builds an Invoker from cfg
func New(cfg Config, opts ...Option) *Invoker {
	i := &Invoker{cfg: cfg.withDefaults(), log: *logger.Named("scorer"), newID: uuid.NewString}
	for _, o := range opts {
		o(i)
	}
	return i
}

// Config returns the launch configuration
func (i *Invoker) Config() Config { return i.cfg }

// Invoke runs one scorer process with payload on stdin and blocks until the process has
// exited and both streams are drained, or the deadline kill has been observed.
// It never retries. Cancelling ctx kills the process the same way the deadline does
func (i *Invoker) Invoke(ctx context.Context, payload []byte) scoring.Invocation {
	inv := scoring.Invocation{ID: i.newID(), Started: time.Now()}
	ctx = logger.WithInvocation(ctx, inv.ID)
	log := logger.Enrich(ctx, i.log)

	ictx, cancel := ctx, context.CancelFunc(func() {})
	if i.cfg.Timeout > 0 {
		ictx, cancel = context.WithTimeout(ctx, i.cfg.Timeout)
	}
	defer cancel()

	stdout := &capture{max: i.cfg.MaxOutputBytes}
	stderr := &capture{max: i.cfg.MaxOutputBytes}

	cmd := exec.CommandContext(ictx, i.cfg.Command, i.cfg.Args...)
	cmd.Dir = i.cfg.Dir
	cmd.Env = append(os.Environ(), i.cfg.Env...)
	cmd.Env = append(cmd.Env, InvocationIDEnv+"="+inv.ID)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = i.cfg.KillGrace
	ownGroup(cmd)

	log.Debug().Str("cmd", i.commandLine()).Int("stdin_bytes", len(payload)).Msg("scorer starting")

	if err := cmd.Start(); err != nil {
		inv.Duration = time.Since(inv.Started)
		if ictx.Err() != nil {
			markTimedOut(&inv, ictx)
		} else {
			inv.LaunchErr = err
		}
		log.Error().Err(err).Str("cmd", i.commandLine()).Msg("scorer launch failed")
		return inv
	}

	waitErr := cmd.Wait()
	// background children outlive the scorer otherwise, unseen by admission
	reapGroup(cmd)
	inv.Duration = time.Since(inv.Started)
	inv.Stdout, inv.Stderr = stdout.Bytes(), stderr.Bytes()
	inv.Overflow = stdout.overflow

	// a natural exit observed before the kill wins; otherwise a done ctx means we killed it
	st := cmd.ProcessState
	switch {
	case st != nil && st.Exited():
		inv.Exited, inv.ExitCode = true, st.ExitCode()
	case ictx.Err() != nil:
		markTimedOut(&inv, ictx)
	default:
		inv.ExitCode = -1
	}

	evt := log.Debug()
	if inv.TimedOut || !inv.Exited || inv.ExitCode != 0 || waitErr != nil {
		evt = log.Warn().
			Str("stderr", pstrings.Truncate(strings.TrimSpace(string(inv.Stderr)), logTextMax)).
			Str("stdout", pstrings.Truncate(strings.TrimSpace(string(inv.Stdout)), logTextMax))
		if waitErr != nil && !isExitErr(waitErr) {
			evt = evt.AnErr("wait_err", waitErr)
		}
	}
	evt.Dur("elapsed", inv.Duration).
		Bool("exited", inv.Exited).
		Int("exit_code", inv.ExitCode).
		Bool("timed_out", inv.TimedOut).
		Bool("overflow", inv.Overflow).
		Int("stdout_bytes", len(inv.Stdout)).
		Int("stderr_bytes", len(inv.Stderr)).
		Msg("scorer finished")

	return inv
}

func markTimedOut(inv *scoring.Invocation, ictx context.Context) {
	inv.TimedOut = true
	inv.Cancelled = !errors.Is(ictx.Err(), context.DeadlineExceeded)
	inv.ExitCode = -1
}

func (i *Invoker) commandLine() string {
	return strings.Join(append([]string{i.cfg.Command}, i.cfg.Args...), " ")
}

func isExitErr(err error) bool {
	var ee *exec.ExitError
	return errors.As(err, &ee)
}
