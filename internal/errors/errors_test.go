// ABOUTME: Tests for standardized error responses.
// ABOUTME: Verifies status codes, content type, and field propagation.

package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, http.StatusNotFound, "not_found", "slot does not exist")

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if body["error"].Code != "not_found" {
		t.Errorf("code = %q, want not_found", body["error"].Code)
	}
	if body["error"].Status != http.StatusNotFound {
		t.Errorf("embedded status = %d, want %d", body["error"].Status, http.StatusNotFound)
	}
}

func TestWriteErrorWithField(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteErrorWithField(rr, http.StatusBadRequest, "missing_field", "start is required", "start")

	var body map[string]ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if body["error"].Field != "start" {
		t.Errorf("field = %q, want start", body["error"].Field)
	}
}

func TestWriteJSONStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSONStatus(rr, http.StatusCreated, map[string]string{"id": "slot_1"})

	if rr.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusCreated)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if body["id"] != "slot_1" {
		t.Errorf("id = %q, want slot_1", body["id"])
	}
}
