// Package server exposes the sitemap pipeline and diagram store over HTTP.
//
// Endpoints:
//
//	GET    /healthz              liveness probe
//	POST   /api/layout           run build + layout, returns the document
//	POST   /api/render           run the full pipeline, returns one artifact
//	GET    /api/diagrams         list stored diagram IDs
//	GET    /api/diagrams/{id}    fetch a stored diagram
//	PUT    /api/diagrams/{id}    store a diagram document
//	DELETE /api/diagrams/{id}    delete a stored diagram
//
// All request and response bodies are JSON except /api/render, which
// responds with the artifact's native content type.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sitegrid/sitegrid/pkg/pipeline"
	"github.com/sitegrid/sitegrid/pkg/store"
)

// Server wires the pipeline runner and diagram store into an HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// New creates a server. A nil store disables the /api/diagrams endpoints
// (they respond 503). A nil logger falls back to the default logger.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: runner,
		store:  st,
		logger: logger,
	}
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)

		r.Route("/diagrams", func(r chi.Router) {
			r.Use(s.requireStore)
			r.Get("/", s.handleListDiagrams)
			r.Get("/{id}", s.handleGetDiagram)
			r.Put("/{id}", s.handlePutDiagram)
			r.Delete("/{id}", s.handleDeleteDiagram)
		})
	})

	return r
}

// logRequests logs one line per request with timing.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

// requireStore rejects diagram requests when no store is configured.
func (s *Server) requireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.store == nil {
			writeError(w, http.StatusServiceUnavailable, "diagram storage not configured")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
