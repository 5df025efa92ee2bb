// Package server implements the Branchboard dashboard HTTP API.
//
// The server exposes the layout engine, the line differ, and the plan
// store over JSON endpoints consumed by the dashboard frontend:
//
//	GET    /healthz            liveness probe with build info
//	POST   /api/layout         compute a layout for a snapshot (+ optional plan)
//	POST   /api/diff           line diff between two text blobs
//	GET    /api/plans          list saved plans
//	POST   /api/plans          create or update a plan
//	GET    /api/plans/{id}     fetch one plan
//	DELETE /api/plans/{id}     delete a plan
//
// Layout responses are cached content-addressed on the snapshot, the
// plan, and the geometry config, so repeated polls of an unchanged
// repository never recompute.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/branchboard/branchboard/pkg/cache"
	"github.com/branchboard/branchboard/pkg/config"
	"github.com/branchboard/branchboard/pkg/store"
)

// Server wires the HTTP API to its backends.
type Server struct {
	cfg    config.Config
	store  store.Store
	cache  cache.Cache
	logger *log.Logger
}

// New creates a server. The store and cache are owned by the caller and
// closed by it; a nil cache disables layout caching.
func New(cfg config.Config, st store.Store, c cache.Cache, logger *log.Logger) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{cfg: cfg, store: st, cache: c, logger: logger}
}

// Router builds the chi router with all routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/diff", s.handleDiff)

		r.Route("/plans", func(r chi.Router) {
			r.Get("/", s.handleListPlans)
			r.Post("/", s.handleSavePlan)
			r.Get("/{id}", s.handleGetPlan)
			r.Delete("/{id}", s.handleDeletePlan)
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// requestLogger logs one line per request with method, path, status and
// duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}
