// Package config handles application configuration via environment variables
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"startupsignal/internal/platform/logger"

	units "github.com/docker/go-units"
)

// Conf is a namespaced view over environment variables (e.g. "SCORER_", "CORE_API_").
// Use New() for global access, or Prefix for module scopes
type Conf struct {
	prefix string
	lookup func(string) string
}

// New creates a root Conf backed by the process env
func New() Conf { return Conf{lookup: os.Getenv} }

// FromMap creates a root Conf backed by a fixed map; tests use this instead of t.Setenv
func FromMap(m map[string]string) Conf {
	return Conf{lookup: func(k string) string { return m[k] }}
}

// Prefix creates a child Conf with an additional prefix
func (c Conf) Prefix(p string) Conf {
	c.prefix += p
	return c
}

// key composes the fully-qualified env var name
func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) get(k string) string {
	fn := c.lookup
	if fn == nil {
		fn = os.Getenv
	}
	return strings.TrimSpace(fn(c.key(k)))
}

// must reads key and parses it, panicking on a missing or unparseable value
func must[T any](c Conf, key, hint string, parse func(string) (T, error)) T {
	s := c.get(key)
	if s == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Err(err).Msg(hint)
	}
	return v
}

// may reads key and parses it, returning def when missing and warning when unparseable
func may[T any](c Conf, key string, def T, hint string, parse func(string) (T, error)) T {
	s := c.get(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Interface("default", def).Msg(hint + "; using default")
		return def
	}
	return v
}

func parseString(s string) (string, error) { return s, nil }

func parsePort(s string) (string, error) {
	p, err := strconv.Atoi(strings.TrimPrefix(s, ":"))
	if err != nil {
		return "", err
	}
	if p < 1 || p > 65535 {
		return "", strconv.ErrRange
	}
	return ":" + strconv.Itoa(p), nil
}

// MustString panics if the given key is missing or empty
func (c Conf) MustString(key string) string {
	return must(c, key, "invalid string", parseString)
}

// MustInt panics if the given key is missing or not an int
func (c Conf) MustInt(key string) int {
	return must(c, key, "invalid int value", strconv.Atoi)
}

// MustBool panics if the given key is missing or not a bool
func (c Conf) MustBool(key string) bool {
	return must(c, key, "invalid bool value", strconv.ParseBool)
}

// MustDuration panics if the given key is missing or not a duration
func (c Conf) MustDuration(key string) time.Duration {
	return must(c, key, "invalid duration (e.g., 250ms, 2s, 1h)", time.ParseDuration)
}

// MustPort returns a net/http addr like ":3000" after validating 1..65535
func (c Conf) MustPort(key string) string {
	return must(c, key, "invalid TCP port; expected 1..65535", parsePort)
}

// MayString returns the value or def if missing/empty
func (c Conf) MayString(key, def string) string {
	return may(c, key, def, "invalid string", parseString)
}

// MayInt returns the value or def if missing/empty/invalid
func (c Conf) MayInt(key string, def int) int {
	return may(c, key, def, "invalid int", strconv.Atoi)
}

// MayBool returns the value or def if missing/empty/invalid
func (c Conf) MayBool(key string, def bool) bool {
	return may(c, key, def, "invalid bool", strconv.ParseBool)
}

// MayDuration returns the value or def if missing/empty/invalid
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, "invalid duration", time.ParseDuration)
}

// MayPort returns an addr like ":3000"; accepts "3000" or ":3000"
func (c Conf) MayPort(key, def string) string {
	return may(c, key, def, "invalid TCP port", parsePort)
}

// MayBytes parses a size such as "8KiB", "4MiB" or "1024" into bytes
func (c Conf) MayBytes(key string, def int64) int64 {
	return may(c, key, def, "invalid byte size", units.RAMInBytes)
}

// MayCSV returns a slice from a comma-separated value; def if missing or all blank
func (c Conf) MayCSV(key string, def []string) []string {
	s := c.get(key)
	if s == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum ensures value is one of allowed (case-insensitive); returns def if empty; panics if invalid
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return v
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
