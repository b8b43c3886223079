package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Hanzzh/mindmap/pkg/errors"
	"github.com/Hanzzh/mindmap/pkg/pipeline"
)

// contentTypes maps output formats to response media types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatJSON: "application/json",
}

// layoutRequest is the body for POST /v1/layout and POST /v1/render.
type layoutRequest struct {
	pipeline.Options
	Format string `json:"format,omitempty"` // render only; single format
}

// statsResponse is the envelope for POST /v1/layout.
type statsResponse struct {
	TreeHash string          `json:"tree_hash"`
	Stats    pipeline.Stats  `json:"stats"`
	Layout   json.RawMessage `json:"layout"`
}

// handleLayout computes a layout and returns it as JSON.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	req.Options.Path = "" // the API never reads server-side files
	req.Options.Formats = []string{pipeline.FormatJSON}

	result, err := s.runner.Execute(r.Context(), req.Options)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		TreeHash: result.TreeHash,
		Stats:    result.Stats,
		Layout:   json.RawMessage(result.Artifacts[pipeline.FormatJSON]),
	})
}

// handleRender runs the full pipeline and returns one artifact body.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	req.Options.Path = ""
	s.renderResponse(w, r, req)
}

func (s *Server) renderResponse(w http.ResponseWriter, r *http.Request, req layoutRequest) {
	format := req.Format
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := errors.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}
	req.Options.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), req.Options)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// =============================================================================
// Document endpoints
// =============================================================================

// documentRequest is the body for document create and update.
type documentRequest struct {
	Title   string `json:"title"`
	Outline string `json:"outline"`
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	// Parse up front so the store never holds an invalid outline.
	t, err := s.runner.Parse(r.Context(), pipeline.Options{Outline: req.Outline})
	if err != nil {
		writeError(w, err)
		return
	}

	doc, err := s.store.Create(r.Context(), req.Title, req.Outline, t.Hash())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	t, err := s.runner.Parse(r.Context(), pipeline.Options{Outline: req.Outline})
	if err != nil {
		writeError(w, err)
		return
	}

	doc, err := s.store.Update(r.Context(), chi.URLParam(r, "id"), req.Title, req.Outline, t.Hash())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRenderDocument renders a stored document; format comes from the
// query string and defaults to SVG.
func (s *Server) handleRenderDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	req := layoutRequest{
		Options: pipeline.Options{
			Outline: doc.Outline,
			Style:   r.URL.Query().Get("style"),
		},
		Format: r.URL.Query().Get("format"),
	}
	s.renderResponse(w, r, req)
}

// =============================================================================
// Response helpers
// =============================================================================

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps error codes onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidOutline, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidStyle, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidLabel:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeDocumentNotFound,
		errors.ErrCodeNodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
}
