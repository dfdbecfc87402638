// Package api provides the HTTP API for the application
package api

import (
	"time"

	"startupsignal/internal/platform/config"
	"startupsignal/internal/platform/logger"
	"startupsignal/internal/platform/metrics"
	phttp "startupsignal/internal/platform/net/http"
	"startupsignal/internal/platform/store"

	"startupsignal/internal/modkit"
	"startupsignal/internal/modkit/httpkit"
	"startupsignal/internal/modkit/module"
	"startupsignal/internal/modkit/swaggerkit"

	metamod "startupsignal/internal/services/api/meta/module"
	metadatamod "startupsignal/internal/services/api/metadata/module"
	predictmod "startupsignal/internal/services/api/predict/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	// Store may be nil or disabled; the journal and its routes degrade
	Store   *store.Store
	Logger  logger.Logger
	Metrics *metrics.Registry

	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool

	// StaticDir is the built presentation bundle served on GET /*
	StaticDir string

	// ReadTimeout bounds every route except /predict; 0 disables it
	ReadTimeout time.Duration
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Log:     opt.Logger,
		Cfg:     opt.Config,
		Metrics: opt.Metrics,
	}
	if opt.Store.Enabled() {
		deps.PG = opt.Store.PG
	}

	// the bridge routes keep the paths the browser client already calls
	predict := predictmod.New(deps, modkit.WithMiddlewares(httpkit.APIStack()...))
	ports := module.MustPortsOf[predictmod.Ports](predict)

	for _, m := range []module.Module{
		metadatamod.New(deps, modkit.WithMiddlewares(httpkit.ReadStack(opt.ReadTimeout)...)),
		predict,
	} {
		m.MountRoutes(r)
	}

	v1 := []module.Module{
		metamod.New(deps, ports.Info),
		predictmod.NewSummary(ports.Summarizer),
	}
	httpkit.MountAPIV1(r, httpkit.ReadStack(opt.ReadTimeout), func(api httpkit.Router) {
		for _, m := range v1 {
			m.MountRoutes(api)
		}
	})

	if opt.EnableMetrics && opt.Metrics != nil {
		r.Handle("/metrics", opt.Metrics.Handler())
	}
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	// last so every API route above wins over the bundle
	phttp.MountStatic(r, phttp.StaticOptions{
		Dir:         opt.StaticDir,
		APIPrefixes: []string{"/api/"},
	})
}
