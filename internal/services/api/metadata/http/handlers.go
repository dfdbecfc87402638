// Package http provides the metadata endpoint
package http

import (
	stdhttp "net/http"

	"startupsignal/internal/modkit/httpkit"
	"startupsignal/internal/services/api/metadata/domain"
)

// Register mounts GET /api/metadata. The body is the bare metadata object
func Register(r httpkit.Router, rd domain.Reader) {
	r.Get("/api/metadata", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		httpkit.JSON(w, stdhttp.StatusOK, rd.Get())
	})
}
