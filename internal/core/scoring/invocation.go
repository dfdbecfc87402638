// Package scoring holds the scorer bridge domain: one invocation per request and
// the rules that turn a finished invocation into exactly one outcome
package scoring

import "time"

// Invocation is the record of one scorer process lifecycle. It is produced by an
// invoker, never shared, and read by Interpret
type Invocation struct {
	ID string

	Stdout []byte
	Stderr []byte

	// ExitCode is valid only when Exited is true
	ExitCode int
	Exited   bool

	// LaunchErr is set when the process never started
	LaunchErr error
	// TimedOut is set when the deadline (or caller cancel) killed the process
	TimedOut bool
	// Cancelled distinguishes a caller cancel from the scorer deadline
	Cancelled bool
	// Overflow is set when stdout passed the output cap; Stdout then holds the prefix
	Overflow bool

	Started  time.Time
	Duration time.Duration
}
