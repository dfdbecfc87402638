// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "startupsignal/internal/platform/net/http"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// ErrorBody is the bare {error, details} failure shape
	ErrorBody = phttp.ErrorBody

	// Response is the HTTP response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Error returns a response that maps an error to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// JSON writes v with status
func JSON(w http.ResponseWriter, status int, v any) { phttp.JSON(w, status, v) }

// Raw writes an encoded JSON document untouched
func Raw(w http.ResponseWriter, status int, doc []byte) { phttp.Raw(w, status, doc) }

// Problem writes a bare {error, details} body for err
func Problem(w http.ResponseWriter, err error) { phttp.Problem(w, err) }

// Handle adapts a Response-returning function
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }
