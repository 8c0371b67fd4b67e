package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestTokenAuth_Protect(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		header     string
		wantStatus int
	}{
		{
			name:       "valid token",
			configured: "secret-token",
			header:     "Bearer secret-token",
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong token",
			configured: "secret-token",
			header:     "Bearer wrong",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing header",
			configured: "secret-token",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing bearer prefix",
			configured: "secret-token",
			header:     "secret-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty configured token rejects everything",
			configured: "",
			header:     "Bearer ",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := TokenAuth{Token: tt.configured}.Protect(okHandler())

			req := httptest.NewRequest(http.MethodPost, "/api/feeds", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
