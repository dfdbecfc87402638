// Package metrics owns the process prometheus registry and the HTTP instrumentation
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"startupsignal/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric the service exports
const Namespace = "startupsignal"

// Registry is a private prometheus registry plus the shared HTTP collectors.
// Services register their own collectors through Factory
type Registry struct {
	reg     *prometheus.Registry
	factory promauto.Factory

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates a registry with go and process collectors attached
func New() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Registry{
		reg:     reg,
		factory: f,
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and method",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"route", "method"}),
	}
}

// Factory returns a promauto factory bound to this registry
func (r *Registry) Factory() promauto.Factory { return r.factory }

// Gatherer exposes the registry for tests and custom exporters
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// Handler serves the text exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// HTTP records request count and latency keyed by the chi route pattern
func (r *Registry) HTTP() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, req.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, req)

			route := middleware.RoutePattern(req)
			if route == "" {
				route = "unmatched"
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			r.requests.WithLabelValues(route, req.Method, strconv.Itoa(status)).Inc()
			r.duration.WithLabelValues(route, req.Method).Observe(time.Since(start).Seconds())
		})
	}
}
