package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Helldev from DevOps!"))
	})
}

func containsHeader(headerValue, target string) bool {
	for part := range strings.SplitSeq(headerValue, ",") {
		if strings.EqualFold(strings.TrimSpace(part), target) {
			return true
		}
	}
	return false
}

func TestSecuritySetsHeaders(t *testing.T) {
	resp := httptest.NewRecorder()
	Security()(okHandler()).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/data", nil))

	tests := []struct {
		header string
		want   string
	}{
		{"Cache-Control", "no-store"},
		{"Content-Security-Policy", "frame-ancestors 'none'"},
		{"Cross-Origin-Opener-Policy", "same-origin"},
		{"Cross-Origin-Resource-Policy", "same-origin"},
		{"Referrer-Policy", "strict-origin-when-cross-origin"},
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "DENY"},
	}
	for _, tt := range tests {
		if got := resp.Header().Get(tt.header); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.header, tt.want, got)
		}
	}
	if body := resp.Body.String(); body != "Helldev from DevOps!" {
		t.Fatalf("expected downstream body, got %q", body)
	}
}

func TestVaryAddsAccept(t *testing.T) {
	resp := httptest.NewRecorder()
	Vary()(okHandler()).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/data", nil))

	if vary := resp.Header().Get("Vary"); vary != "Accept" {
		t.Fatalf("expected Vary: Accept, got %q", vary)
	}
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestCORSAllowsAnyOriginOnGET(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://localhost/health", nil)
	req.Header.Set("Origin", "http://example.com")
	resp := httptest.NewRecorder()
	CORS()(okHandler()).ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected Access-Control-Allow-Origin '*', got %q", got)
	}
	if got := resp.Header().Get("Access-Control-Expose-Headers"); !containsHeader(got, chimiddleware.RequestIDHeader) {
		t.Fatalf("expected X-Request-Id to be exposed, got %q", got)
	}
}

func TestCORSHandlesPreflightWithoutCallingNext(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodOptions, "http://localhost/data", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "traceparent")
	resp := httptest.NewRecorder()
	CORS()(next).ServeHTTP(resp, req)

	if called {
		t.Fatal("expected preflight to be answered by the CORS middleware")
	}
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for preflight, got %d", resp.Code)
	}
	if got := resp.Header().Get("Access-Control-Allow-Headers"); !containsHeader(got, "traceparent") {
		t.Fatalf("expected traceparent in Access-Control-Allow-Headers, got %q", got)
	}
	if got := resp.Header().Get("Access-Control-Allow-Methods"); !containsHeader(got, http.MethodGet) {
		t.Fatalf("expected GET in Access-Control-Allow-Methods, got %q", got)
	}
}
