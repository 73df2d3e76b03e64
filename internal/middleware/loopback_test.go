package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// dummyHandler records whether the wrapped handler was reached.
type dummyHandler struct {
	called bool
}

func (d *dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.called = true
	w.WriteHeader(http.StatusOK)
}

func TestRequireLoopback(t *testing.T) {
	tests := []struct {
		name         string
		remoteAddr   string
		expectedCode int
		wantCalled   bool
	}{
		{name: "ipv4 loopback", remoteAddr: "127.0.0.1:51000", expectedCode: http.StatusOK, wantCalled: true},
		{name: "ipv6 loopback", remoteAddr: "[::1]:51000", expectedCode: http.StatusOK, wantCalled: true},
		{name: "lan address", remoteAddr: "192.168.1.20:51000", expectedCode: http.StatusForbidden},
		{name: "public address", remoteAddr: "203.0.113.7:443", expectedCode: http.StatusForbidden},
		{name: "unparseable address", remoteAddr: "not-an-address", expectedCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dummy := &dummyHandler{}
			h := RequireLoopback(dummy)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/api/keys", nil)
			req.RemoteAddr = tt.remoteAddr
			h.ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Errorf("status = %d; want %d", rec.Code, tt.expectedCode)
			}
			if dummy.called != tt.wantCalled {
				t.Errorf("next handler called = %v; want %v", dummy.called, tt.wantCalled)
			}
		})
	}
}
