package modkit

import (
	"net/http"

	phttp "startupsignal/internal/platform/net/http"
	pstrings "startupsignal/internal/platform/strings"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(phttp.Router)
}

// Build applies Option funcs and returns a plain struct
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.prefix != "" {
		c.prefix = pstrings.MustPrefix(c.prefix)
	}
	if c.register == nil {
		c.register = func(phttp.Router) {}
	}
	return Built{
		Name:     c.name,
		Prefix:   c.prefix,
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:    c.ports,
		Register: c.register,
	}
}

// Mount attaches b's routes to r under b.Prefix with b.Mw applied.
// An empty prefix mounts in a group so middleware stays scoped
func (b Built) Mount(r phttp.Router) {
	scoped := func(sub phttp.Router) {
		if len(b.Mw) > 0 {
			sub.Use(b.Mw...)
		}
		b.Register(sub)
	}
	if b.Prefix == "" {
		r.Group(scoped)
		return
	}
	r.Route(b.Prefix, scoped)
}

// base implements Module from a Built; service modules embed it
type base struct{ b Built }

func (m base) MountRoutes(r phttp.Router) { m.b.Mount(r) }
func (m base) Ports() any                 { return m.b.Ports }
func (m base) Name() string               { return m.b.Name }

// New returns a Module backed by the given options
func New(opts ...Option) Module { return base{b: Build(opts...)} }
