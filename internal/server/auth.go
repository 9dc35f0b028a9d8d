package server

import (
	"net/http"
	"strings"

	"furrow/internal/identity"
)

// authenticated resolves the bearer token against the roster and attaches
// the annotator to the request context. Unknown tokens are 401; inactive
// annotators are 403.
func (s *Server) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			s.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		annotator, err := s.identity.Lookup(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if !annotator.Active {
			s.writeError(w, http.StatusForbidden, "account disabled")
			return
		}
		next(w, r.WithContext(identity.WithAnnotator(r.Context(), annotator)))
	}
}

// requireAdmin rejects non-admin annotators. It must run inside
// authenticated.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		annotator, ok := identity.FromContext(r.Context())
		if !ok || !annotator.IsAdmin() {
			s.writeError(w, http.StatusForbidden, "admin role required")
			return
		}
		next(w, r)
	}
}
