package xiconf

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const validBody = `
tolerance:precursor:3ppm
crosslinker:SymmetricSingleAminoAcidRestricted:Name:DSSO;MASS:158.0037648;LINKEDAMINOACIDS:K,S(0.2)
fragment:BIon
fragment:YIon
fragment:PeptideIon
missedcleavages:2
`

func doRequest(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	NewRouter().ServeHTTP(rec, req)
	return rec
}

// TestHandleHealth tests the liveness endpoint
func TestHandleHealth(t *testing.T) {
	rec := doRequest(t, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("unexpected status %q", resp.Status)
	}
}

// TestHandleValidate_OK tests a clean directive file
func TestHandleValidate_OK(t *testing.T) {
	rec := doRequest(t, http.MethodPost, "/api/validate", validBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp validateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !resp.Valid || len(resp.Errors) != 0 {
		t.Errorf("expected a valid result, got %+v", resp)
	}
}

// TestHandleValidate_Invalid tests the 422 diagnostics path
func TestHandleValidate_Invalid(t *testing.T) {
	rec := doRequest(t, http.MethodPost, "/api/validate", "tolerance:precursor:3parsecs\n")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var resp validateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Valid || len(resp.Errors) == 0 {
		t.Errorf("expected errors, got %+v", resp)
	}
}

// TestHandleConvert_YAML tests the yaml output format
func TestHandleConvert_YAML(t *testing.T) {
	rec := doRequest(t, http.MethodPost, "/api/convert?format=yaml", validBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/yaml" {
		t.Errorf("unexpected content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "DSSO") {
		t.Errorf("crosslinker missing from output:\n%s", rec.Body.String())
	}
}

// TestHandleConvert_Directives tests the canonical text output
func TestHandleConvert_Directives(t *testing.T) {
	rec := doRequest(t, http.MethodPost, "/api/convert?format=directives", validBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "tolerance:precursor:3ppm\n") {
		t.Errorf("tolerance missing from output:\n%s", rec.Body.String())
	}
}

// TestHandleConvert_DefaultJSON tests that json is the default format
func TestHandleConvert_DefaultJSON(t *testing.T) {
	rec := doRequest(t, http.MethodPost, "/api/convert", validBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type %q", ct)
	}
}

// TestHandleConvert_UnknownFormat tests format rejection
func TestHandleConvert_UnknownFormat(t *testing.T) {
	rec := doRequest(t, http.MethodPost, "/api/convert?format=xml", validBody)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

// TestHandleConvert_InvalidConfig tests that broken input never converts
func TestHandleConvert_InvalidConfig(t *testing.T) {
	rec := doRequest(t, http.MethodPost, "/api/convert", "fragment:WIon\n")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}
