package httpkit

import (
	"net/http"

	phttp "startupsignal/internal/platform/net/http"
)

// Get mounts a body-less handler whose result goes into the envelope
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, h)
}

// PostJSON mounts a handler that binds and validates a JSON body of T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, h)
}
