// Package server serves the chart over HTTP: an interactive host page,
// static images and the pattern JSON.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/dkoosis/trendline/internal/logging"
	"github.com/dkoosis/trendline/pkg/chart"
)

// Timeouts applied to every connection.
const (
	ReadTimeout     = 5 * time.Second
	WriteTimeout    = 10 * time.Second
	IdleTimeout     = time.Minute
	ShutdownTimeout = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	Logger *slog.Logger
	// Defaults fill in query parameters a request leaves out.
	Defaults Request
	// Style overrides the sample chart's cosmetics.
	Style chart.Style
}

// Server routes chart requests.
type Server struct {
	logger   *slog.Logger
	defaults Request
	style    chart.Style
	router   *httprouter.Router
}

// New builds a Server with its routes registered.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	defaults := opts.Defaults
	if defaults.Dataset == "" {
		defaults.Dataset = DatasetSample
	}
	s := &Server{
		logger:   logger.With(slog.String("component", "http_server")),
		defaults: defaults,
		style:    opts.Style,
		router:   httprouter.New(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/", s.handlePage)
	s.router.GET("/chart.svg", s.handleImage("svg", "image/svg+xml"))
	s.router.GET("/chart.png", s.handleImage("png", "image/png"))
	s.router.GET("/api/chart", s.handleAPI)
	s.router.GET("/healthz", s.handleHealth)

	s.router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusNotFound, "not_found", "no route for "+r.URL.Path)
	})
	s.router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" not allowed on "+r.URL.Path)
	})
	s.router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v any) {
		logging.LogError(s.logger, "handler panic", fmt.Errorf("%v", v), slog.String("path", r.URL.Path))
		s.writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

// Handler returns the routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return requestLogging(s.logger)(s.router)
}

// ListenAndServe serves on addr until ctx is cancelled, then drains
// in-flight requests. ready, when non-nil, receives the bound address.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
		BaseContext:  func(net.Listener) context.Context { return logging.WithLogger(ctx, s.logger) },
	}

	s.logger.Info("starting server", slog.String("addr", ln.Addr().String()))
	if ready != nil {
		ready(ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}
