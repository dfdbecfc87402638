package httpkit

import (
	"net/http"
	"time"

	"startupsignal/internal/platform/metrics"
	"startupsignal/internal/platform/net/middleware"
)

// StackOptions tunes the router wide middleware
type StackOptions struct {
	CORSOrigins []string
	Slow        time.Duration
	Metrics     *metrics.Registry
}

// CommonStack returns the router wide middleware in mount order.
// No request timeout is applied here; the scorer route bounds itself
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	stack := middleware.Defaults()
	stack = append(stack,
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{
			Slow:  o.Slow,
			Quiet: []string{"/metrics", "/api/v1/meta/health", "/api/v1/meta/ready"},
		}),
	)
	if o.Metrics != nil {
		stack = append(stack, o.Metrics.HTTP())
	}
	return stack
}

// APIStack is applied to JSON API routes only; the bundle keeps normal caching
func APIStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{middleware.NoCache()}
}

// ReadStack is APIStack plus a request timeout for routes that never reach the scorer.
// d <= 0 leaves requests unbounded
func ReadStack(d time.Duration) []func(http.Handler) http.Handler {
	stack := APIStack()
	if d > 0 {
		stack = append(stack, middleware.Timeout(d))
	}
	return stack
}
