// Package module wires metadata into the API using modkit
package module

import (
	"startupsignal/internal/modkit"
	"startupsignal/internal/modkit/httpkit"
	mdhttp "startupsignal/internal/services/api/metadata/http"
	mdsvc "startupsignal/internal/services/api/metadata/service"
)

// Ports is what metadata exposes to other modules
type Ports struct {
	Store *mdsvc.Store
}

// New loads METADATA_PATH and returns the module. The route is mounted at the root
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	path := deps.Cfg.Prefix("METADATA_").MayString("PATH", "data/metadata.json")
	return NewWithStore(mdsvc.Load(path), opts...)
}

// NewWithStore builds the module over an existing store
func NewWithStore(st *mdsvc.Store, opts ...modkit.Option) modkit.Module {
	base := []modkit.Option{
		modkit.WithName("metadata"),
		modkit.WithPorts(Ports{Store: st}),
		modkit.WithRegister(func(r httpkit.Router) { mdhttp.Register(r, st) }),
	}
	return modkit.New(append(base, opts...)...)
}
