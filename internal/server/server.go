// Package server assembles the router, middleware stack and routes, and runs the HTTP
// listener with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/helldev-server/internal/http/routes"
	"github.com/janisto/helldev-server/internal/platform/config"
	applog "github.com/janisto/helldev-server/internal/platform/logging"
	appmiddleware "github.com/janisto/helldev-server/internal/platform/middleware"
	"github.com/janisto/helldev-server/internal/platform/respond"
)

const (
	apiTitle = "Helldev API"

	readTimeout       = 5 * time.Second
	readHeaderTimeout = 2 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	maxHeaderBytes    = 64 << 10 // 64 KB
	maxRequestBytes   = 1 << 20  // 1 MB
)

// NewHandler builds the chi router with the middleware stack, problem-details error
// handlers and the huma API carrying the /health and /data operations.
func NewHandler(version string) http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Real-IP / X-Forwarded-For; deploy behind a trusted proxy.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(maxRequestBytes),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	api := humachi.New(router, apiConfig(version))
	routes.Register(api)
	return router
}

// apiConfig disables the OpenAPI, docs and schema routes so only the registered
// operations are reachable.
func apiConfig(version string) huma.Config {
	cfg := huma.DefaultConfig(apiTitle, version)
	cfg.OpenAPIPath = ""
	cfg.DocsPath = ""
	cfg.SchemasPath = ""
	return cfg
}

// Server owns the http.Server and its shutdown policy.
type Server struct {
	cfg     *config.Config
	httpSrv *http.Server
}

// New creates a Server listening on cfg.Addr().
func New(cfg *config.Config, version string) *Server {
	return &Server{
		cfg: cfg,
		httpSrv: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           NewHandler(version),
			ReadTimeout:       readTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
			MaxHeaderBytes:    maxHeaderBytes,
		},
	}
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// Listen binds the configured address. Bind failures such as a port already in use or
// missing permissions are reported here, before any request is served.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.httpSrv.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", s.httpSrv.Addr, err)
	}
	return ln, nil
}

// Serve accepts connections on ln until ctx is cancelled, then drains in-flight requests
// for up to the configured shutdown timeout. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	serveErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening", zap.String("addr", ln.Addr().String()))
		err := s.httpSrv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveErr <- err
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve on %s: %w", ln.Addr(), err)
		}
		return nil
	case <-ctx.Done():
		applog.LogInfo(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	applog.LogInfo(ctx, "server exited")
	return nil
}

// Run binds and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}
