package http

import (
	"io/fs"
	stdhttp "net/http"
	"os"
	"path"
	"strings"

	perr "startupsignal/internal/platform/errors"
	"startupsignal/internal/platform/logger"
)

// StaticOptions configures the presentation bundle mount
type StaticOptions struct {
	// Dir is the built bundle root, e.g. frontend/dist
	Dir string
	// Index is served for unknown paths so client-side routing works; default index.html
	Index string
	// APIPrefixes never fall back to the index; unknown API paths stay JSON 404s
	APIPrefixes []string
}

// MountStatic serves the bundle on GET /* with a single-page-app fallback
func MountStatic(r Router, opt StaticOptions) {
	if opt.Index == "" {
		opt.Index = "index.html"
	}
	log := logger.Named("static")
	if st, err := os.Stat(opt.Dir); err != nil || !st.IsDir() {
		log.Warn().Str("dir", opt.Dir).Msg("static bundle not found; only API routes will respond")
	}
	r.Get("/*", StaticHandler(os.DirFS(opt.Dir), opt))
}

// StaticHandler serves files from fsys, falling back to the index for unknown non-API paths
func StaticHandler(fsys fs.FS, opt StaticOptions) Handler {
	if opt.Index == "" {
		opt.Index = "index.html"
	}
	files := stdhttp.FileServerFS(fsys)
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		for _, p := range opt.APIPrefixes {
			if strings.HasPrefix(r.URL.Path, p) {
				RespondError(w, r, perr.NotFoundf("no route for %s", r.URL.Path))
				return
			}
		}

		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name != "" {
			if st, err := fs.Stat(fsys, name); err == nil && !st.IsDir() {
				files.ServeHTTP(w, r)
				return
			}
		}

		if _, err := fs.Stat(fsys, opt.Index); err != nil {
			RespondError(w, r, perr.NotFoundf("presentation bundle not built"))
			return
		}
		stdhttp.ServeFileFS(w, r, fsys, opt.Index)
	}
}
