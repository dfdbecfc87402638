package http_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	phttp "startupsignal/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func bundle() fstest.MapFS {
	return fstest.MapFS{
		"index.html":     {Data: []byte("<html>app</html>")},
		"assets/app.js":  {Data: []byte("console.log(1)")},
		"assets/app.css": {Data: []byte("body{}")},
	}
}

func serveStatic(h phttp.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("GET", target, nil))
	return rec
}

func TestStaticHandler_ServesFiles(t *testing.T) {
	h := phttp.StaticHandler(bundle(), phttp.StaticOptions{})
	rec := serveStatic(h, "/assets/app.js")
	if rec.Code != http.StatusOK || rec.Body.String() != "console.log(1)" {
		t.Fatalf("bad asset: %d %q", rec.Code, rec.Body.String())
	}
}

func TestStaticHandler_FallsBackToIndex(t *testing.T) {
	h := phttp.StaticHandler(bundle(), phttp.StaticOptions{})
	for _, p := range []string{"/", "/dashboard", "/deep/client/route", "/assets"} {
		rec := serveStatic(h, p)
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "app</html>") {
			t.Fatalf("%s: expected index, got %d %q", p, rec.Code, rec.Body.String())
		}
	}
}

func TestStaticHandler_APIPrefixStaysJSON404(t *testing.T) {
	h := phttp.StaticHandler(bundle(), phttp.StaticOptions{APIPrefixes: []string{"/api/"}})
	rec := serveStatic(h, "/api/unknown")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		t.Fatalf("expected json 404")
	}
}

func TestStaticHandler_MissingBundle(t *testing.T) {
	h := phttp.StaticHandler(fstest.MapFS{}, phttp.StaticOptions{})
	rec := serveStatic(h, "/")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "not built") {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestMountStatic_FromDisk(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("disk index"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := phttp.AdaptChi(chi.NewRouter())
	phttp.MountStatic(r, phttp.StaticOptions{Dir: dir})

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/anything", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "disk index" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
}
