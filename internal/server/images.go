package server

import (
	"net/http"
	"strings"
)

// handleImage serves GET /images/{plot}/{path} straight from the dataset.
// Resolution goes through the catalog so traversal outside a plot directory
// is rejected before touching the filesystem.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	suffix := pathSuffix(r, "/images/")
	parts := strings.SplitN(suffix, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		s.writeError(w, http.StatusNotFound, "image not found")
		return
	}

	full, err := s.catalog.ImagePath(parts[0], parts[1])
	if err != nil {
		s.writeError(w, http.StatusNotFound, "image not found")
		return
	}

	// Plot images never change once ingested.
	w.Header().Set("Cache-Control", "public, max-age=2592000")
	http.ServeFile(w, r, full)
}
