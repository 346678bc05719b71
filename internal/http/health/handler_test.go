package health

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	applog "github.com/janisto/helldev-server/internal/platform/logging"
	appmiddleware "github.com/janisto/helldev-server/internal/platform/middleware"
)

func newTestRouter() chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
	)
	api := humachi.New(router, huma.DefaultConfig("HealthTest", "test"))
	Register(api)
	return router
}

func TestGetHealth(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "health-get")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body := resp.Body.String(); body != "200 OK" {
		t.Fatalf("expected body '200 OK', got %q", body)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("expected text/plain, got %q", ct)
	}
}

func TestOperationDocumentsTextResponse(t *testing.T) {
	router := chi.NewRouter()
	api := humachi.New(router, huma.DefaultConfig("HealthTest", "test"))
	Register(api)

	op := api.OpenAPI().Paths["/health"].Get
	if op == nil || op.OperationID != "get-health" {
		t.Fatalf("expected get-health operation, got %+v", op)
	}
	if _, ok := op.Responses["200"].Content["text/plain"]; !ok {
		t.Fatalf("expected text/plain response content, got %+v", op.Responses["200"].Content)
	}
}
