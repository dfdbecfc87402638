package middleware

import (
	stdjson "encoding/json"
	stdhttp "net/http"
	"runtime/debug"
	"strings"

	perr "startupsignal/internal/platform/errors"
	"startupsignal/internal/platform/logger"
	pnet "startupsignal/internal/platform/net"
)

// panicWire matches the {error, details} body every failing route returns
type panicWire struct {
	Error     string `json:"error"`
	Details   string `json:"details"`
	RequestID string `json:"request_id,omitempty"`
}

// RecoverJSON converts panics into a JSON 500 and logs stack with request id
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())

			// format stack like chi recover
			lines := strings.Split(string(debug.Stack()), "\n")
			stack := strings.Join(lines, "\n\t")

			logger.C(r.Context()).Error().
				Interface("panic", v).
				Msgf("panic recovered\n%s", stack)

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}

			body := panicWire{
				Error:     "Internal server error",
				Details:   perr.Root(perr.PanicErrf("panic recovered")).Error(),
				RequestID: reqID,
			}

			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(stdhttp.StatusInternalServerError)
			_ = stdjson.NewEncoder(w).Encode(body)
		}()
		next.ServeHTTP(w, r)
	})
}
