// Package swaggerkit serves the OpenAPI document and the Swagger UI
package swaggerkit

import (
	_ "embed"
	"net/http"

	phttp "startupsignal/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.json
var openapi []byte

// Doc returns the embedded OpenAPI document
func Doc() []byte { return openapi }

// Mount the Swagger UI and JSON document if enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		phttp.Raw(w, http.StatusOK, openapi)
	})
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/api/docs/doc.json"),
	))
}
