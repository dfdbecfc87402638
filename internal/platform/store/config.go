package store

import (
	"time"

	"startupsignal/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int           // ping attempts before giving up; default 5
	PingTimeout    time.Duration // per attempt; default 3s
}

// FromConf reads a PG config from a SERVICE_PGSQL_ scoped Conf.
// PG is enabled only when DBURL is set
func FromConf(c config.Conf, appName string) Config {
	url := c.MayString("DBURL", "")
	return Config{
		AppName: appName,
		PG: PGConfig{
			Enabled:        url != "",
			URL:            url,
			MaxConns:       int32(c.MayInt("MAX_CONNS", 4)),
			LogSQL:         c.MayBool("LOG_SQL", false),
			SlowQueryMs:    c.MayInt("SLOW_MS", 200),
			ConnectRetries: c.MayInt("CONNECT_RETRIES", 5),
			PingTimeout:    c.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
	}
}
