package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"furrow/internal/api"
	"furrow/internal/export"
	"furrow/internal/logging"
)

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	status, err := s.admin.Status(r.Context(), Version)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleAllocations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req api.AllocateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeServiceError(w, err)
		return
	}
	alloc, err := s.admin.Allocate(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, alloc)
}

func (s *Server) handleGlobalProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	global, err := s.admin.GlobalProgress(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if global.Annotators == nil {
		global.Annotators = []api.ProgressReport{}
	}
	s.writeJSON(w, http.StatusOK, global)
}

func (s *Server) handleRoster(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	roster, err := s.admin.Roster(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, roster)
}

// handleRemoveAssignment serves DELETE /api/admin/assignments/{annotator}/{plot}.
func (s *Server) handleRemoveAssignment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	suffix := pathSuffix(r, "/api/admin/assignments/")
	parts := strings.SplitN(suffix, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		s.writeError(w, http.StatusNotFound, "assignment not found")
		return
	}
	if err := s.admin.Remove(r.Context(), parts[0], parts[1]); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// handleClearAnnotations serves DELETE /api/admin/annotations/clear: every
// annotation is deleted and every assignment reopens.
func (s *Server) handleClearAnnotations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	result, err := s.admin.ClearAnnotations(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = export.FormatCSV
	}
	if format != export.FormatCSV && format != export.FormatJSON {
		s.writeError(w, http.StatusBadRequest, "format must be csv or json")
		return
	}

	records, err := s.admin.Records(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	filename := export.Filename(format, time.Now())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	if format == export.FormatJSON {
		w.Header().Set("Content-Type", "application/json")
		if err := export.WriteJSON(w, records); err != nil {
			s.logger.Error("export failed", logging.Error(err))
		}
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	if err := export.WriteCSV(w, records); err != nil {
		s.logger.Error("export failed", logging.Error(err))
	}
}
