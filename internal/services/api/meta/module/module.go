// Package module wires meta endpoints into the API using modkit
package module

import (
	"time"

	"startupsignal/internal/core/version"
	"startupsignal/internal/modkit"
	"startupsignal/internal/modkit/httpkit"
	"startupsignal/internal/platform/store"
	"startupsignal/internal/services/api/predict/domain"

	metahttp "startupsignal/internal/services/api/meta/http"
)

// New constructs the meta module under /meta. scorer is reported by /meta/scorer
func New(deps modkit.Deps, scorer domain.Info, opts ...modkit.Option) modkit.Module {
	d := metahttp.Deps{
		ServiceName: version.Service,
		StartedAt:   time.Now(),
		Scorer:      scorer,
	}
	// a nil TxRunner must stay a nil Pinger or ready would call through it
	if p, ok := deps.PG.(store.Pinger); ok && deps.PG != nil {
		d.PG = p
	}

	base := []modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
		modkit.WithRegister(func(r httpkit.Router) { metahttp.Register(r, d) }),
	}
	return modkit.New(append(base, opts...)...)
}
