// Package http provides the prediction bridge endpoint and the outcome summary
package http

import (
	stdhttp "net/http"
	"strconv"
	"strings"
	"time"

	"startupsignal/internal/core/scoring"
	"startupsignal/internal/modkit/httpkit"
	perr "startupsignal/internal/platform/errors"
	"startupsignal/internal/platform/net/http/bind"
	"startupsignal/internal/services/api/predict/domain"
)

// Options tunes request intake
type Options struct {
	// MaxBodyBytes caps the request body; 0 means the bind default
	MaxBodyBytes int64
	// Strict rejects bodies missing any scorer field before a process is spawned
	Strict bool
}

type handlers struct {
	p    domain.Predictor
	opts Options
}

// Register mounts POST /predict. Bodies are bare JSON, never the envelope
func Register(r httpkit.Router, p domain.Predictor, o Options) {
	h := &handlers{p: p, opts: o}
	r.Post("/predict", h.predict)
}

// RegisterSummary mounts GET /predictions/summary under the caller's prefix
func RegisterSummary(r httpkit.Router, s domain.Summarizer) {
	httpkit.Get(r, "/predictions/summary", func(req *stdhttp.Request) (any, error) {
		window, err := ParseWindow(req.URL.Query().Get("since"), 24*time.Hour)
		if err != nil {
			return nil, err
		}
		return s.Summary(req.Context(), window)
	})
}

// swagger:route POST /predict Predict predict
// @Summary Score one startup through the scorer process
// @Tags Predict
// @Accept json
// @Produce json
// @Success 200 "scorer document verbatim"
// @Failure 400 "scorer rejected the input, or the body is not a JSON object"
// @Failure 500 "scorer failed"
// @Failure 503 "no scorer slot became free"
// @Router /predict [post]
func (h *handlers) predict(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	raw, err := bind.ObjectBytes(r, h.opts.MaxBodyBytes)
	if err != nil {
		httpkit.Problem(w, badBody(err))
		return
	}
	if h.opts.Strict {
		if _, err := bind.Decode[domain.Request](raw, bind.JSONOptions{}); err != nil {
			httpkit.Problem(w, badBody(err))
			return
		}
	}

	out, err := h.p.Predict(r.Context(), raw)
	if err != nil {
		httpkit.Problem(w, err)
		return
	}
	switch out.Kind {
	case scoring.Success:
		httpkit.Raw(w, stdhttp.StatusOK, out.Document)
	case scoring.ModelRejected:
		httpkit.Raw(w, stdhttp.StatusBadRequest, out.Document)
	default:
		httpkit.Problem(w, out.Err())
	}
}

func badBody(err error) error {
	msg := perr.WireFrom(err).Message
	if e, ok := perr.As(err); ok && e.Field() != "" && !strings.Contains(msg, e.Field()) {
		msg = e.Field() + ": " + msg
	}
	return perr.WithDetail(perr.Wrap(err, perr.CodeOf(err), "Invalid request body"), msg)
}

// ParseWindow reads a duration such as 90m, 24h or 7d. Empty yields def
func ParseWindow(s string, def time.Duration) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	var d time.Duration
	var err error
	if days, ok := strings.CutSuffix(s, "d"); ok {
		var n int
		n, err = strconv.Atoi(days)
		d = time.Duration(n) * 24 * time.Hour
	} else {
		d, err = time.ParseDuration(s)
	}
	if err != nil || d <= 0 {
		return 0, perr.WithField(perr.InvalidArgf("since must be a positive duration like 24h or 7d"), "since")
	}
	return d, nil
}
