package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/claude/piste/internal/plan"
)

func testServer() *Server {
	return New(nil, "test-key", slog.New(slog.DiscardHandler))
}

// TestHandleBlockCatalog verifies the static catalog endpoint returns the
// seven block types in order.
func TestHandleBlockCatalog(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/blocks", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var catalog []plan.BlockTypeEntry
	if err := json.NewDecoder(rec.Body).Decode(&catalog); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(catalog) != 7 {
		t.Fatalf("catalog size = %d, want 7", len(catalog))
	}
	if catalog[0].Type != plan.BlockVitesse {
		t.Errorf("first entry = %s, want vitesse", catalog[0].Type)
	}
}

// TestHandlePaceReferences verifies distance references come before load
// references in the table endpoint.
func TestHandlePaceReferences(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/pace-references", nil))

	var refs []plan.PaceReference
	if err := json.NewDecoder(rec.Body).Decode(&refs); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(refs) == 0 {
		t.Fatal("empty reference table")
	}
	if refs[0].Kind != plan.RefDistance {
		t.Errorf("first reference kind = %s, want distance", refs[0].Kind)
	}
	if refs[len(refs)-1].Kind != plan.RefLoad {
		t.Errorf("last reference kind = %s, want load", refs[len(refs)-1].Kind)
	}
}

// TestHandlePreviewIncomplete verifies an incomplete draft previews with
// canSubmit false and a per-series validity report.
func TestHandlePreviewIncomplete(t *testing.T) {
	body := `{"title":"","series":[{"repeatCount":1,"segments":[{"blockType":"vitesse"}]}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/templates/preview", strings.NewReader(body))
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp previewResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.CanSubmit {
		t.Error("blank draft should not be submittable")
	}
	if len(resp.Series) != 1 || resp.Series[0].Valid {
		t.Errorf("series review = %+v, want one invalid series", resp.Series)
	}
}

// TestHandlePreviewComplete verifies a complete draft derives totals,
// volume string and legal pace references.
func TestHandlePreviewComplete(t *testing.T) {
	body := `{
		"title": "Séance sprint",
		"type": "sprint",
		"seriesRestInterval": 180,
		"series": [{
			"repeatCount": 2,
			"segments": [{
				"blockType": "vitesse",
				"restSeconds": 90,
				"vitesse": {"distance": 400, "distanceUnit": "m", "repetitions": 3}
			}]
		}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/templates/preview", strings.NewReader(body))
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, req)

	var resp previewResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !resp.CanSubmit {
		t.Error("complete draft should be submittable")
	}
	if resp.Totals.SeriesCount != 2 || resp.Totals.BlockCount != 1 {
		t.Errorf("totals = %+v, want 2 séries / 1 bloc", resp.Totals)
	}
	if resp.Volume != "2.4 km" {
		t.Errorf("volume = %q, want 2.4 km", resp.Volume)
	}
	if !resp.ShowSeriesRest {
		t.Error("repeating series should show the series rest")
	}
	if len(resp.Series[0].LegalReferences) == 0 {
		t.Error("distance series should expose legal references")
	}
}

// TestHandlePreviewBadJSON verifies malformed bodies get a 400.
func TestHandlePreviewBadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/templates/preview", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestHandleCreateTemplateIncomplete verifies submission of an incomplete
// draft is rejected with 422 before touching storage.
func TestHandleCreateTemplateIncomplete(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/templates", strings.NewReader(`{"title":" "}`))
	req.Header.Set("X-API-Key", "test-key")
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

// TestParseDateRange verifies query parsing and the end-before-start guard.
func TestParseDateRange(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions?start=2026-03-01&end=2026-03-31", nil)
	start, end, err := parseDateRange(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Format("2006-01-02") != "2026-03-01" || end.Format("2006-01-02") != "2026-03-31" {
		t.Errorf("range = %v .. %v", start, end)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/sessions?start=2026-03-31&end=2026-03-01", nil)
	if _, _, err := parseDateRange(req); err == nil {
		t.Error("expected error for end before start")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/sessions?start=march", nil)
	if _, _, err := parseDateRange(req); err == nil {
		t.Error("expected error for malformed date")
	}
}
