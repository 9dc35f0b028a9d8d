package server

import (
	"net/http"
	"strings"

	"furrow/internal/api"
	"furrow/internal/identity"
)

func (s *Server) handleQueue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	annotator, _ := identity.FromContext(r.Context())
	queue, err := s.annotator.Queue(r.Context(), annotator.ID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if queue.Entries == nil {
		queue.Entries = []api.QueueEntry{}
	}
	s.writeJSON(w, http.StatusOK, queue)
}

func (s *Server) handlePlotDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	plotID := pathSuffix(r, "/api/annotator/plots/")
	if plotID == "" || strings.Contains(plotID, "/") {
		s.writeError(w, http.StatusNotFound, "plot not found")
		return
	}
	annotator, _ := identity.FromContext(r.Context())
	detail, err := s.annotator.PlotDetail(r.Context(), annotator.ID, plotID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req api.SubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeServiceError(w, err)
		return
	}
	annotator, _ := identity.FromContext(r.Context())
	record, err := s.annotator.Submit(r.Context(), annotator, req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	annotator, _ := identity.FromContext(r.Context())
	progress, err := s.annotator.Progress(r.Context(), annotator.ID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, progress)
}
