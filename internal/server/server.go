// Package server exposes the annotation service over HTTP: bearer-token
// authenticated annotator and admin surfaces plus image serving.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"furrow/internal/api"
	"furrow/internal/assignment"
	"furrow/internal/catalog"
	"furrow/internal/config"
	"furrow/internal/identity"
	"furrow/internal/logging"
	"furrow/internal/notify"
)

// Version identifies the running build in status payloads.
const Version = "0.1.0"

// Server is the furrowd HTTP front end.
type Server struct {
	cfg       *config.Config
	logger    *slog.Logger
	identity  identity.Provider
	catalog   catalog.Provider
	annotator *api.AnnotatorService
	admin     *api.AdminService

	lock     *flock.Flock
	listener net.Listener
	server   *http.Server
}

// New wires the HTTP surface over the store, catalog, and roster.
func New(cfg *config.Config, store *assignment.Store, provider catalog.Provider, roster identity.Provider, notifier notify.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		cfg:       cfg,
		logger:    logging.WithComponent(logger, "server"),
		identity:  roster,
		catalog:   provider,
		annotator: api.NewAnnotatorService(store, provider, notifier, logger),
		admin:     api.NewAdminService(store, provider, roster, notifier, logger),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.authenticated(s.requireAdmin(s.handleStatus)))
	mux.HandleFunc("/api/annotator/queue", s.authenticated(s.handleQueue))
	mux.HandleFunc("/api/annotator/plots/", s.authenticated(s.handlePlotDetail))
	mux.HandleFunc("/api/annotator/annotations", s.authenticated(s.handleSubmit))
	mux.HandleFunc("/api/annotator/progress", s.authenticated(s.handleProgress))
	mux.HandleFunc("/api/admin/allocations", s.authenticated(s.requireAdmin(s.handleAllocations)))
	mux.HandleFunc("/api/admin/progress", s.authenticated(s.requireAdmin(s.handleGlobalProgress)))
	mux.HandleFunc("/api/admin/annotators", s.authenticated(s.requireAdmin(s.handleRoster)))
	mux.HandleFunc("/api/admin/assignments/", s.authenticated(s.requireAdmin(s.handleRemoveAssignment)))
	mux.HandleFunc("/api/admin/annotations/clear", s.authenticated(s.requireAdmin(s.handleClearAnnotations)))
	mux.HandleFunc("/api/admin/export", s.authenticated(s.requireAdmin(s.handleExport)))
	mux.HandleFunc("/images/", s.authenticated(s.handleImage))

	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start acquires the single-instance lock and begins serving. The server
// shuts down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	lockPath := filepath.Join(s.cfg.Paths.LogDir, "furrowd.lock")
	s.lock = flock.New(lockPath)
	locked, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire instance lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another furrowd instance holds %s", lockPath)
	}

	listener, err := net.Listen("tcp", s.cfg.Server.Bind)
	if err != nil {
		_ = s.lock.Unlock()
		return fmt.Errorf("listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Addr returns the bound address once started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop drains in-flight requests and releases the instance lock.
func (s *Server) Stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
	if s.lock != nil {
		_ = s.lock.Unlock()
		s.lock = nil
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps assignment error kinds to distinct HTTP statuses.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, assignment.ErrInvalidRequest):
		s.writeError(w, http.StatusBadRequest, "invalid request")
	case errors.Is(err, assignment.ErrEmptySelection):
		s.writeError(w, http.StatusBadRequest, "at least one cycle selection is required")
	case errors.Is(err, assignment.ErrNotAssigned):
		s.writeError(w, http.StatusForbidden, "plot not assigned")
	case errors.Is(err, assignment.ErrStoreUnavailable):
		s.logger.Error("store failure", logging.Error(err))
		s.writeError(w, http.StatusServiceUnavailable, "store unavailable")
	default:
		s.logger.Error("request failed", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON parses a request body strictly: unknown fields are a client
// error, per the invalid-shape contract.
func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return assignment.ErrInvalidRequest
	}
	return nil
}

func pathSuffix(r *http.Request, prefix string) string {
	return strings.TrimPrefix(r.URL.Path, prefix)
}
