package scorer

import (
	"time"

	"startupsignal/internal/platform/config"
)

// DefaultKillGrace bounds the drain wait when none is configured
const DefaultKillGrace = 2 * time.Second

// Config describes how to launch the scorer and how long to wait for it
type Config struct {
	// Command is the executable; Args follow it. Request data never goes on argv
	Command string
	Args    []string
	// Dir is the working directory; empty means the service's own
	Dir string
	// Env is appended to the inherited environment
	Env []string

	// Timeout bounds one invocation; 0 disables the deadline
	Timeout time.Duration
	// KillGrace bounds how long Wait may block on stream drain after a kill or exit.
	// Values <= 0 fall back to DefaultKillGrace
	KillGrace time.Duration
	// MaxOutputBytes caps captured stdout and stderr each; 0 disables the cap
	MaxOutputBytes int64
}

// ConfigFrom reads a SCORER_ scoped Conf
func ConfigFrom(c config.Conf) Config {
	return Config{
		Command:        c.MayString("COMMAND", "python3"),
		Args:           c.MayCSV("ARGS", []string{"scripts/predict_cli.py"}),
		Dir:            c.MayString("DIR", ""),
		Env:            c.MayCSV("ENV", nil),
		Timeout:        c.MayDuration("TIMEOUT", 30*time.Second),
		KillGrace:      c.MayDuration("KILL_GRACE", DefaultKillGrace),
		MaxOutputBytes: c.MayBytes("MAX_OUTPUT_BYTES", 4<<20),
	}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.KillGrace <= 0 {
		c.KillGrace = DefaultKillGrace
	}
	return c
}
