package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/redlinehq/redline/internal/core/domain"
	"github.com/redlinehq/redline/internal/logger"
)

// errorResponse is the API error payload.
type errorResponse struct {
	Error string `json:"error"`
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleList returns annotations, optionally filtered by documentId,
// pageNumber, category, creator, and threaded=true.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	documentID := q.Get("documentId")

	if q.Get("threaded") == "true" {
		threads, err := s.annotations.Threads(r.Context(), documentID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, emptyAsList(threads))
		return
	}

	filter := domain.AnnotationFilter{
		DocumentID: documentID,
		Category:   domain.Category(q.Get("category")),
		Creator:    domain.Creator(q.Get("creator")),
	}
	if raw := q.Get("pageNumber"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "pageNumber must be an integer"})
			return
		}
		filter.PageNumber = &page
	}

	list, err := s.annotations.Filter(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyAsList(list))
}

// handleCreate persists a draft annotation.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var draft domain.Annotation
	if !decodeBody(w, r, &draft) {
		return
	}

	created, err := s.annotations.Create(r.Context(), &draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleGet returns a single annotation.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	a, err := s.annotations.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// handleUpdate applies a partial patch.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch domain.AnnotationPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	updated, err := s.annotations.Update(r.Context(), r.PathValue("id"), &patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDelete removes an annotation and its replies.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.annotations.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// touchRecentRequest is the POST /api/workspace/recent payload.
type touchRecentRequest struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// handleRecentFiles returns the recent-files list.
func (s *Server) handleRecentFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.workspace.RecentFiles(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyAsList(files))
}

// handleTouchRecent records a file open.
func (s *Server) handleTouchRecent(w http.ResponseWriter, r *http.Request) {
	var req touchRecentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.workspace.TouchRecent(r.Context(), req.Path, req.Name); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleFileTree returns the stored file-tree snapshot.
func (s *Server) handleFileTree(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.workspace.FileTree(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if snapshot == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// handleSaveFileTree replaces the stored file-tree snapshot.
func (s *Server) handleSaveFileTree(w http.ResponseWriter, r *http.Request) {
	tree, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}
	if !json.Valid(tree) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "tree must be valid JSON"})
		return
	}
	if err := s.workspace.SaveFileTree(r.Context(), tree); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeBody parses a JSON request body, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}

// writeError maps domain errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidGeometry):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		logger.Error("api: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("api: encoding response: %v", err)
	}
}

// emptyAsList keeps empty results serializing as [] instead of null.
func emptyAsList[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
