// Package server hosts mounted diagrams over HTTP.
//
// Each POST to /api/diagrams mounts a new [display.Diagram]. The HTML page
// at /diagrams/{id} wraps the diagram in a resizable container and reports
// the container size back to /api/diagrams/{id}/measure after every paint
// until the diagram is centered. Diagrams live in memory only.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/treedisplay/pkg/display"
	apperrors "github.com/matzehuels/treedisplay/pkg/errors"
	"github.com/matzehuels/treedisplay/pkg/pipeline"
)

// ErrNotFound is wrapped by lookups of unknown diagram IDs.
var ErrNotFound = errors.New("diagram not found")

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:7878"

// maxBodySize bounds request bodies.
const maxBodySize = 8 << 20

// Server keeps the mounted diagrams of one process.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger

	mu       sync.RWMutex
	diagrams map[string]*display.Diagram
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for request and lifecycle logs.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRunner sets the runner that renders artifacts.
func WithRunner(r *pipeline.Runner) Option {
	return func(s *Server) {
		if r != nil {
			s.runner = r
		}
	}
}

// New creates a server with no diagrams mounted.
func New(opts ...Option) *Server {
	s := &Server{
		logger:   log.New(io.Discard),
		diagrams: make(map[string]*display.Diagram),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	return s
}

// Handler returns the HTTP handler for embedding in existing servers.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api/diagrams", func(r chi.Router) {
		r.Post("/", s.handleMount)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleStatus)
			r.Delete("/", s.handleUnmount)
			r.Get("/datum", s.handleDatum)
			r.Post("/measure", s.handleMeasure)
			r.Get("/{format:svg|png|pdf}", s.handleArtifact)
		})
	})
	r.Get("/diagrams/{id}", s.handlePage)
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", "http://"+addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// Mount registers a diagram and returns it.
func (s *Server) Mount(d *display.Diagram) *display.Diagram {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diagrams[d.ID()] = d
	return d
}

// Lookup returns the diagram with the given ID.
func (s *Server) Lookup(id string) (*display.Diagram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.diagrams[id]
	if !ok {
		return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, ErrNotFound, "diagram %s", id)
	}
	return d, nil
}

// Unmount discards a diagram and its centering state.
func (s *Server) Unmount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.diagrams[id]; !ok {
		return apperrors.Wrap(apperrors.ErrCodeNotFound, ErrNotFound, "diagram %s", id)
	}
	delete(s.diagrams, id)
	return nil
}

// Len returns the number of mounted diagrams.
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.diagrams)
}
