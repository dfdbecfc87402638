// Package raw reads environment variables without touching the logger.
// The logger bootstraps its own options from here, so this package must stay logger-free
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a prefix-scoped view over a key lookup (the process env by default)
type Conf struct {
	prefix string
	lookup func(string) string
}

// New returns a root Conf backed by os.Getenv
func New() Conf { return Conf{lookup: os.Getenv} }

// FromMap returns a root Conf backed by a fixed map, handy in tests
func FromMap(m map[string]string) Conf {
	return Conf{lookup: func(k string) string { return m[k] }}
}

// Prefix returns a child Conf, e.g. raw.New().Prefix("LOG_")
func (c Conf) Prefix(p string) Conf {
	c.prefix += p
	return c
}

func (c Conf) value(key string) string {
	fn := c.lookup
	if fn == nil {
		fn = os.Getenv
	}
	return strings.TrimSpace(fn(c.prefix + key))
}

// Get returns the trimmed value or def when empty
func (c Conf) Get(key, def string) string {
	if v := c.value(key); v != "" {
		return v
	}
	return def
}

// GetBool accepts 1/true/yes/on as true; anything else set is false
func (c Conf) GetBool(key string, def bool) bool {
	v := strings.ToLower(c.value(key))
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// GetInt parses a non-negative int, falling back to def on empty or junk
func (c Conf) GetInt(key string, def int) int {
	v := c.value(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
