package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	phttp "startupsignal/internal/platform/net/http"
	"startupsignal/internal/services/api/metadata/domain"
	"startupsignal/internal/services/api/metadata/service"

	"github.com/go-chi/chi/v5"
)

func serve(t *testing.T, md domain.Metadata) *httptest.ResponseRecorder {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), service.Static(md))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/api/metadata", nil))
	return rec
}

func TestMetadata_BareBody(t *testing.T) {
	rec := serve(t, domain.Metadata{Industries: []string{"Fintech"}, Regions: []string{"EU", "NA"}})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var got map[string][]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got["industries"][0] != "Fintech" || len(got["regions"]) != 2 {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestMetadata_EmptyListsNotNull(t *testing.T) {
	rec := serve(t, domain.Metadata{})
	want := `{"industries":[],"regions":[]}` + "\n"
	if rec.Body.String() != want {
		t.Fatalf("body = %q, want %q", rec.Body.String(), want)
	}
}
