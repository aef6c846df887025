package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sitegrid/sitegrid/pkg/diagram"
	"github.com/sitegrid/sitegrid/pkg/pipeline"
	"github.com/sitegrid/sitegrid/pkg/store"
)

// maxRequestBody caps request bodies at 10 MiB. URL lists and CSV exports
// for even very large sites stay well under this.
const maxRequestBody = 10 << 20

// layoutResponse is the body returned by POST /api/layout.
type layoutResponse struct {
	ForestHash string           `json:"forest_hash"`
	Document   diagram.Document `json:"document"`
	Stats      layoutStats      `json:"stats"`
	Cache      cacheStats       `json:"cache"`
}

type layoutStats struct {
	NodeCount   int    `json:"node_count"`
	PlacedCount int    `json:"placed_count"`
	BuildTime   string `json:"build_time"`
	LayoutTime  string `json:"layout_time"`
}

type cacheStats struct {
	BuildHit  bool `json:"build_hit"`
	LayoutHit bool `json:"layout_hit"`
}

// renderRequest is the body accepted by POST /api/render. Options carries
// the pipeline configuration; the response is the artifact for the single
// requested format.
type renderRequest struct {
	pipeline.Options
}

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatJSON: "application/json",
}

// handleLayout runs build + layout and returns the positioned document.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if !decodeJSON(w, r, &opts) {
		return
	}
	// Layout responses are always documents; rendering happens elsewhere.
	opts.Formats = []string{pipeline.FormatJSON}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, statusForPipelineError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		ForestHash: result.ForestHash,
		Document:   result.Document,
		Stats: layoutStats{
			NodeCount:   result.Stats.NodeCount,
			PlacedCount: result.Stats.PlacedCount,
			BuildTime:   result.Stats.BuildTime.String(),
			LayoutTime:  result.Stats.LayoutTime.String(),
		},
		Cache: cacheStats{
			BuildHit:  result.CacheInfo.BuildHit,
			LayoutHit: result.CacheInfo.LayoutHit,
		},
	})
}

// handleRender runs the full pipeline and streams back a single artifact.
// Exactly one output format must be requested.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Formats) != 1 {
		writeError(w, http.StatusBadRequest, "exactly one output format is required")
		return
	}
	format := req.Formats[0]

	result, err := s.runner.Execute(r.Context(), req.Options)
	if err != nil {
		writeError(w, statusForPipelineError(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// handleListDiagrams returns all stored diagram IDs.
func (s *Server) handleListDiagrams(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

// handleGetDiagram fetches a stored diagram record.
func (s *Server) handleGetDiagram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "diagram not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// putDiagramRequest is the body accepted by PUT /api/diagrams/{id}.
type putDiagramRequest struct {
	Name     string           `json:"name,omitempty"`
	Document diagram.Document `json:"document"`
}

// handlePutDiagram stores a diagram document under the path ID.
func (s *Server) handlePutDiagram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req putDiagramRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Document.Nodes) == 0 {
		writeError(w, http.StatusBadRequest, "document has no nodes")
		return
	}

	rec := &store.Record{ID: id, Name: req.Name, Document: req.Document}
	if err := s.store.Put(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleDeleteDiagram removes a stored diagram.
func (s *Server) handleDeleteDiagram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeJSON decodes a JSON request body into v, writing a 400 on failure.
// Returns false when the response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// statusForPipelineError maps pipeline failures to HTTP statuses. Option
// validation problems are the caller's fault; everything else is ours.
func statusForPipelineError(err error) int {
	msg := err.Error()
	if strings.HasPrefix(msg, "invalid options") || strings.HasPrefix(msg, "build:") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
