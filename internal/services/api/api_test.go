package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"startupsignal/internal/platform/config"
	"startupsignal/internal/platform/metrics"
	phttp "startupsignal/internal/platform/net/http"
	"startupsignal/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `{"prediction":"High Success","probabilities":{"High Success":0.8,"Low Success":0.2},"feature_importance":{"revenue":0.5},"benchmarks":{"revenue":10},"user_input":{"revenue":12}}`

func newServer(t *testing.T, extra map[string]string) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	meta := filepath.Join(dir, "metadata.json")
	require.NoError(t, os.WriteFile(meta, []byte(`{"industries":["Fintech","AI"],"regions":["Europe"]}`), 0o600))
	bundle := filepath.Join(dir, "dist")
	require.NoError(t, os.MkdirAll(bundle, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(bundle, "index.html"), []byte("<html>app</html>"), 0o600))

	script := testkit.Script(t, "cat >/dev/null; printf '%s' '"+doc+"'")
	m := map[string]string{
		"SCORER_COMMAND": script,
		"METADATA_PATH":  meta,
	}
	for k, v := range extra {
		m[k] = v
	}

	mux := chi.NewRouter()
	reg := metrics.New()
	mux.Use(reg.HTTP())
	Mount(phttp.AdaptChi(mux), Options{
		Config:        config.FromMap(m),
		Metrics:       reg,
		EnableMetrics: true,
		EnableSwagger: true,
		StaticDir:     bundle,
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func TestMount_Routes(t *testing.T) {
	srv := newServer(t, nil)

	code, body := get(t, srv.URL+"/api/metadata")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"industries":["Fintech","AI"],"regions":["Europe"]}`, body)

	resp, err := http.Post(srv.URL+"/predict", "application/json", strings.NewReader(`{"industry":"Fintech"}`))
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, doc, string(b))
	assert.Contains(t, resp.Header.Get("Cache-Control"), "no-cache")

	code, body = get(t, srv.URL+"/api/v1/meta/health")
	assert.Equal(t, http.StatusOK, code)
	var env struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	assert.Equal(t, true, env.Data["ok"])

	code, body = get(t, srv.URL+"/api/v1/meta/scorer")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"max_concurrent":4`)

	code, _ = get(t, srv.URL+"/api/v1/predictions/summary")
	assert.Equal(t, http.StatusServiceUnavailable, code)

	code, body = get(t, srv.URL+"/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "startupsignal_predict_outcomes_total")

	code, body = get(t, srv.URL+"/api/docs/doc.json")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"/predict"`)
}

func TestMount_StaticFallback(t *testing.T) {
	srv := newServer(t, nil)

	code, body := get(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "<html>app</html>", body)

	code, body = get(t, srv.URL+"/results/42")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "<html>app</html>", body)

	code, body = get(t, srv.URL+"/api/unknown")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, "no route for /api/unknown")
}

func TestMount_MissingMetadataServesEmptyLists(t *testing.T) {
	srv := newServer(t, map[string]string{"METADATA_PATH": filepath.Join(t.TempDir(), "absent.json")})
	code, body := get(t, srv.URL+"/api/metadata")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"industries":[],"regions":[]}`, body)
}
