// Package module wires the prediction bridge into the API using modkit
package module

import (
	"startupsignal/internal/adapters/scorer"
	"startupsignal/internal/core/scoring"
	"startupsignal/internal/modkit"
	"startupsignal/internal/modkit/httpkit"
	"startupsignal/internal/services/api/predict/domain"
	predhttp "startupsignal/internal/services/api/predict/http"
	"startupsignal/internal/services/api/predict/repo"
	predsvc "startupsignal/internal/services/api/predict/service"
)

// Ports is what predict exposes to other modules
type Ports struct {
	Predictor  domain.Predictor
	Summarizer domain.Summarizer
	Info       domain.Info
}

// Config gathers everything the module reads from the environment
type Config struct {
	Scorer  scorer.Config
	Service predsvc.Config
	HTTP    predhttp.Options
}

// ConfigFrom reads SCORER_ and CORE_API_ keys
func ConfigFrom(deps modkit.Deps) Config {
	sc := deps.Cfg.Prefix("SCORER_")
	return Config{
		Scorer:  scorer.ConfigFrom(sc),
		Service: predsvc.ConfigFrom(sc),
		HTTP: predhttp.Options{
			MaxBodyBytes: deps.Cfg.Prefix("CORE_API_").MayBytes("MAX_BODY_BYTES", 1<<20),
			Strict:       sc.MayBool("STRICT", false),
		},
	}
}

// New builds the invoker and service from deps and mounts POST /predict at the root
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	cfg := ConfigFrom(deps)
	svc := NewService(deps, cfg, scorer.New(cfg.Scorer, scorer.WithLogger(deps.Log)))
	return NewWithService(svc, Info(cfg, svc.JournalEnabled()), cfg.HTTP, opts...)
}

// NewService builds the service over inv, with the journal when deps carry Postgres
func NewService(deps modkit.Deps, cfg Config, inv domain.Invoker) *predsvc.Svc {
	svcOpts := []predsvc.Option{
		predsvc.WithLogger(deps.Log),
		predsvc.WithMetrics(deps.MetricsOrNew()),
	}
	if rs, err := scoring.NewResultSchema(); err != nil {
		deps.Log.Error().Err(err).Msg("result schema unavailable; drift check disabled")
	} else {
		svcOpts = append(svcOpts, predsvc.WithSchema(rs))
	}
	if deps.PG != nil {
		svcOpts = append(svcOpts, predsvc.WithJournal(repo.NewPG(deps.PG)))
	}
	return predsvc.New(inv, cfg.Service, svcOpts...)
}

// NewWithService mounts an existing service
func NewWithService(svc *predsvc.Svc, info domain.Info, o predhttp.Options, opts ...modkit.Option) modkit.Module {
	base := []modkit.Option{
		modkit.WithName("predict"),
		modkit.WithPorts(Ports{Predictor: svc, Summarizer: svc, Info: info}),
		modkit.WithRegister(func(r httpkit.Router) { predhttp.Register(r, svc, o) }),
	}
	return modkit.New(append(base, opts...)...)
}

// NewSummary mounts GET /predictions/summary over s; meant for the /api/v1 group
func NewSummary(s domain.Summarizer, opts ...modkit.Option) modkit.Module {
	base := []modkit.Option{
		modkit.WithName("predictions"),
		modkit.WithRegister(func(r httpkit.Router) { predhttp.RegisterSummary(r, s) }),
	}
	return modkit.New(append(base, opts...)...)
}

// Info describes the effective scorer setup
func Info(cfg Config, journal bool) domain.Info {
	sc := cfg.Scorer
	svc := cfg.Service
	return domain.Info{
		Command:        sc.Command,
		Args:           append([]string{}, sc.Args...),
		TimeoutMs:      sc.Timeout.Milliseconds(),
		MaxOutputBytes: sc.MaxOutputBytes,
		MaxConcurrent:  svc.MaxConcurrent,
		QueueWaitMs:    svc.QueueWait.Milliseconds(),
		DetailBytes:    svc.DetailBytes,
		Strict:         cfg.HTTP.Strict,
		Journal:        journal,
	}
}
