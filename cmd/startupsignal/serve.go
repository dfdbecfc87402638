package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"startupsignal/internal/core/version"
	"startupsignal/internal/modkit/httpkit"
	"startupsignal/internal/platform/logger"
	"startupsignal/internal/platform/metrics"
	phttp "startupsignal/internal/platform/net/http"
	"startupsignal/internal/platform/net/middleware"
	"startupsignal/internal/platform/store"
	"startupsignal/internal/services/api"
	"startupsignal/internal/services/api/predict/repo"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service until SIGINT or SIGTERM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	apiCfg := a.cfg.Prefix("CORE_API_")
	l := logger.Get()
	l.Info().Str("version", version.Info().Version).Msg("starting " + version.Service)

	st := a.openJournal(ctx)
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	reg := metrics.New()
	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
		Slow:        time.Duration(apiCfg.MayInt("SLOW_MS", 2000)) * time.Millisecond,
		Metrics:     reg,
	})
	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg, func(m *chi.Mux) {
		m.Use(stack...)
		m.Use(middleware.Heartbeat("/healthz"))
	})

	api.Mount(srv.Router(), api.Options{
		Config:         a.cfg,
		Store:          st,
		Logger:         *l,
		Metrics:        reg,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		EnableMetrics:  apiCfg.MayBool("METRICS", true),
		StaticDir:      apiCfg.MayString("STATIC_DIR", "frontend/dist"),
		ReadTimeout:    apiCfg.MayDuration("READ_TIMEOUT", 10*time.Second),
	})

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
		return err
	}
	l.Info().Msg("shutdown complete")
	return nil
}

// openJournal opens Postgres when configured. Failure leaves the journal off
// rather than keeping predictions down
func (a *app) openJournal(ctx context.Context) *store.Store {
	l := logger.Named("store")
	cfg := store.FromConf(a.cfg.Prefix("SERVICE_PGSQL_"), version.Service)
	if !cfg.PG.Enabled {
		l.Info().Msg("SERVICE_PGSQL_DBURL not set; outcome journal disabled")
		return &store.Store{}
	}
	st, err := store.Open(ctx, cfg, store.WithLogger(*logger.Get()))
	if err != nil {
		l.Error().Err(err).Msg("postgres unavailable; outcome journal disabled")
		return &store.Store{}
	}
	if err := repo.Migrate(ctx, st.PG); err != nil {
		l.Error().Err(err).Msg("journal migration failed; outcome journal disabled")
		_ = st.Close()
		return &store.Store{}
	}
	return st
}
