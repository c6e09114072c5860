package terminology

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ayush-fhir/api/internal/platform/fhir"
)

func newTestHandler() (*Handler, *echo.Echo) {
	h := NewHandler(newTestService(), "")
	e := echo.New()
	return h, e
}

func multipartCSV(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write([]byte(content))
	w.Close()
	return body, w.FormDataContentType()
}

func TestHandler_Search_Success(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/search?q=amlapitta", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Search(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var result SearchResult
	json.Unmarshal(rec.Body.Bytes(), &result)
	if len(result.Exact) != 1 || result.Exact[0].Code != "AY001" {
		t.Errorf("expected exact=[AY001], got %+v", result.Exact)
	}
}

func TestHandler_Search_MissingQuery(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Search(c); err == nil {
		t.Error("expected error for missing query parameter")
	}
}

func TestHandler_Translate_Success(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/translate?code=AY002&system=namaste", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Translate(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp TranslateResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Targets) != 2 {
		t.Errorf("expected 2 targets, got %+v", resp.Targets)
	}
}

func TestHandler_Translate_BadSystem(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/translate?code=AY002&system=loinc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Translate(c); err == nil {
		t.Error("expected error for unsupported system")
	}
}

func TestHandler_Suggest_Success(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/suggest?q=a", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Suggest(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp SuggestResult
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Suggestions) == 0 {
		t.Fatal("expected suggestions")
	}
	if resp.Suggestions[0].NAMASTECode != "AY001" || resp.Suggestions[0].Confidence != 92 {
		t.Errorf("expected AY001 at 92, got %+v", resp.Suggestions[0])
	}
}

func TestHandler_IngestCSV_Success(t *testing.T) {
	h, e := newTestHandler()

	body, contentType := multipartCSV(t, "namaste.csv", sampleCSV)
	req := httptest.NewRequest(http.MethodPost, "/ingest-csv", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.IngestCSV(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp map[string]int
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["ingested"] != 4 {
		t.Errorf("expected ingested=4, got %+v", resp)
	}
}

func TestHandler_IngestCSV_RejectsNonCSV(t *testing.T) {
	h, e := newTestHandler()

	body, contentType := multipartCSV(t, "data.xlsx", "junk")
	req := httptest.NewRequest(http.MethodPost, "/ingest-csv", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.IngestCSV(c); err == nil {
		t.Error("expected error for non-CSV upload")
	}
}

func TestHandler_IngestCSV_ValidationFailure(t *testing.T) {
	h, e := newTestHandler()

	body, contentType := multipartCSV(t, "bad.csv", "id,term\nX,Y\n")
	req := httptest.NewRequest(http.MethodPost, "/ingest-csv", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.IngestCSV(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var outcome fhir.OperationOutcome
	json.Unmarshal(rec.Body.Bytes(), &outcome)
	if outcome.ResourceType != "OperationOutcome" || len(outcome.Issue) != 1 {
		t.Fatalf("expected OperationOutcome body, got %s", rec.Body.String())
	}
	if outcome.Issue[0].Code != fhir.IssueTypeInvalid {
		t.Errorf("expected invalid issue, got %+v", outcome.Issue[0])
	}
	if !strings.Contains(outcome.Issue[0].Diagnostics, "missing required columns") {
		t.Errorf("expected column diagnostics, got %q", outcome.Issue[0].Diagnostics)
	}
}

func TestHandler_CodeSystem(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/codesystem", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetCodeSystem(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var cs CodeSystem
	json.Unmarshal(rec.Body.Bytes(), &cs)
	if cs.ResourceType != "CodeSystem" || len(cs.Concept) != 4 {
		t.Errorf("unexpected CodeSystem: %+v", cs)
	}
}

func TestHandler_ConceptMap(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/conceptmap", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetConceptMap(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var cm ConceptMap
	json.Unmarshal(rec.Body.Bytes(), &cm)
	if cm.ResourceType != "ConceptMap" || len(cm.Group) != 1 {
		t.Fatalf("unexpected ConceptMap: %+v", cm)
	}
	if len(cm.Group[0].Element) != 4 {
		t.Errorf("expected 4 elements, got %d", len(cm.Group[0].Element))
	}
}

func TestHandler_IngestDefault_NotConfigured(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/ingest-default", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.IngestDefault(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404 when no dataset configured, got %v", err)
	}
}
