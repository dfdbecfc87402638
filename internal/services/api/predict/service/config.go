package service

import (
	"time"

	"startupsignal/internal/platform/config"
)

// Config bounds admission and client facing detail
type Config struct {
	// MaxConcurrent caps scorer processes alive at once
	MaxConcurrent int64
	// QueueWait is how long a request may wait for a slot before a 503
	QueueWait time.Duration
	// DetailBytes bounds the details string sent to clients and the journal
	DetailBytes int
	// JournalTimeout bounds one journal write, retry included
	JournalTimeout time.Duration
}

// ConfigFrom reads a SCORER_ scoped Conf
func ConfigFrom(c config.Conf) Config {
	return Config{
		MaxConcurrent:  int64(c.MayInt("MAX_CONCURRENT", 4)),
		QueueWait:      c.MayDuration("QUEUE_WAIT", 5*time.Second),
		DetailBytes:    int(c.MayBytes("DETAIL_BYTES", 8<<10)),
		JournalTimeout: c.MayDuration("JOURNAL_TIMEOUT", 2*time.Second),
	}
}

func (c Config) withDefaults() Config {
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = 1
	}
	if c.DetailBytes <= 0 {
		c.DetailBytes = 8 << 10
	}
	if c.JournalTimeout <= 0 {
		c.JournalTimeout = 2 * time.Second
	}
	return c
}
