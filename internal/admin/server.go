// Package admin serves the operational HTTP endpoints: liveness, readiness
// and Prometheus metrics.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/godilite/overlay-server/internal/metrics"
	"go.uber.org/zap"
)

const defaultCheckTimeout = 2 * time.Second

// Checker reports whether a dependency is ready to serve traffic.
type Checker interface {
	Ping(ctx context.Context) error
}

// CheckerFunc adapts a function to a Checker.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Server represents the admin HTTP server
type Server struct {
	*http.Server
	router chi.Router
	logger *zap.Logger
	checks map[string]Checker
}

// NewServer creates the admin server. Every check must pass for /readyz to
// report ready.
func NewServer(addr string, logger *zap.Logger, checks map[string]Checker) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("admin")

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(logger))
	router.Use(middleware.Recoverer)

	s := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router: router,
		logger: logger,
		checks: checks,
	}

	router.Get("/healthz", s.handleHealth)
	router.Get("/readyz", s.handleReady)
	router.Handle("/metrics", metrics.Handler())

	return s
}

// Start serves in the background until Shutdown.
func (s *Server) Start() {
	s.logger.Info("admin server starting", zap.String("addr", s.Addr))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("admin server failed", zap.Error(err))
		}
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultCheckTimeout)
	defer cancel()

	code := http.StatusOK
	results := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check.Ping(ctx); err != nil {
			s.logger.Warn("readiness check failed", zap.String("check", name), zap.Error(err))
			results[name] = err.Error()
			code = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	statusText := "ready"
	if code != http.StatusOK {
		statusText = "not ready"
	}
	s.writeJSON(w, code, map[string]any{"status": statusText, "checks": results})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

// LoggingMiddleware logs every request with its status, size and duration.
func LoggingMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote", r.RemoteAddr),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}
