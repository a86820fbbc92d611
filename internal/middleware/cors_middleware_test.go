package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		allowedOrigins string
		origin         string
		wantAllow      string
	}{
		{
			name:           "wildcard reflects origin",
			allowedOrigins: "*",
			origin:         "http://localhost:4200",
			wantAllow:      "http://localhost:4200",
		},
		{
			name:           "wildcard no origin",
			allowedOrigins: "*",
			origin:         "",
			wantAllow:      "*",
		},
		{
			name:           "listed origin",
			allowedOrigins: "http://a.example,http://b.example",
			origin:         "http://b.example",
			wantAllow:      "http://b.example",
		},
		{
			name:           "unlisted origin",
			allowedOrigins: "http://a.example",
			origin:         "http://evil.example",
			wantAllow:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := CORSMiddleware(tt.allowedOrigins, "GET,POST", "Content-Type,Authorization")(next)

			req := httptest.NewRequest(http.MethodGet, "/notes", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight must not reach the handler")
	})
	handler := CORSMiddleware("*", "GET,POST,PUT,DELETE,OPTIONS", "Content-Type,Authorization")(next)

	req := httptest.NewRequest(http.MethodOptions, "/notes", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET,POST,PUT,DELETE,OPTIONS" {
		t.Errorf("Access-Control-Allow-Methods = %q", got)
	}
}
