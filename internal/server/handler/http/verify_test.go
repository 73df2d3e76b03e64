package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	handler "github.com/keywarden/keywarden/internal/server/handler/http"
)

func TestVerifyHandler_Password(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		code      int
		wantValid bool
	}{
		{name: "bad JSON", body: `nope`, code: http.StatusBadRequest},
		{name: "too short", body: `{"password":"short"}`, code: http.StatusOK, wantValid: false},
		{name: "empty", body: `{"password":""}`, code: http.StatusOK, wantValid: false},
		{name: "long enough", body: `{"password":"my-secure-password"}`, code: http.StatusOK, wantValid: true},
	}

	h := &handler.VerifyHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/verify/password", bytes.NewBufferString(tt.body))
			h.Password(rec, req)

			if rec.Code != tt.code {
				t.Fatalf("status = %d; want %d", rec.Code, tt.code)
			}
			if tt.code != http.StatusOK {
				return
			}
			var resp struct {
				Valid bool `json:"valid"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Valid != tt.wantValid {
				t.Errorf("valid = %v; want %v", resp.Valid, tt.wantValid)
			}
		})
	}
}

func TestVerifyHandler_KeyFormat(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		code      int
		wantValid bool
	}{
		{name: "bad JSON", body: `{`, code: http.StatusBadRequest},
		{name: "wrong prefix", body: `{"private_key":"KdeC19p7v5sGdkYjezapQTMQ7aXF2sDM6F1V5Q5ZH2mUZpWkCJ5"}`, code: http.StatusOK, wantValid: false},
		{name: "too short", body: `{"private_key":"5Jdec19"}`, code: http.StatusOK, wantValid: false},
		{name: "well formed", body: `{"private_key":"5JdeC19p7v5sGdkYjezapQTMQ7aXF2sDM6F1V5Q5ZH2mUZpWkCJ"}`, code: http.StatusOK, wantValid: true},
	}

	h := &handler.VerifyHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/verify/key-format", bytes.NewBufferString(tt.body))
			h.KeyFormat(rec, req)

			if rec.Code != tt.code {
				t.Fatalf("status = %d; want %d", rec.Code, tt.code)
			}
			if tt.code != http.StatusOK {
				return
			}
			var resp struct {
				Valid bool `json:"valid"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Valid != tt.wantValid {
				t.Errorf("valid = %v; want %v", resp.Valid, tt.wantValid)
			}
		})
	}
}
