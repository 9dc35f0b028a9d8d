package api

import (
	"context"
	"log/slog"

	"furrow/internal/assignment"
	"furrow/internal/catalog"
	"furrow/internal/identity"
	"furrow/internal/logging"
	"furrow/internal/notify"
)

// AdminService exposes the management operations: allocation, roster and
// progress reporting, assignment removal, and record export.
type AdminService struct {
	store     *assignment.Store
	allocator *assignment.Allocator
	catalog   catalog.Provider
	roster    identity.Provider
	notifier  notify.Service
	logger    *slog.Logger
}

// NewAdminService constructs an AdminService.
func NewAdminService(store *assignment.Store, provider catalog.Provider, roster identity.Provider, notifier notify.Service, logger *slog.Logger) *AdminService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &AdminService{
		store:     store,
		allocator: assignment.NewAllocator(store, provider),
		catalog:   provider,
		roster:    roster,
		notifier:  notifier,
		logger:    logging.WithComponent(logger, "admin-api"),
	}
}

// Allocate grants unassigned plots to an annotator. Annotators outside the
// roster are rejected before any plot is claimed.
func (s *AdminService) Allocate(ctx context.Context, req AllocateRequest) (AllocationResponse, error) {
	if _, known := s.roster.ByID(req.AnnotatorID); !known {
		return AllocationResponse{}, assignment.ErrInvalidRequest
	}
	alloc, err := s.allocator.Allocate(ctx, req.AnnotatorID, req.Count)
	if err != nil {
		return AllocationResponse{}, err
	}
	s.logger.Info("plots allocated",
		logging.String(logging.FieldAnnotator, alloc.AnnotatorID),
		logging.Int(logging.FieldCount, len(alloc.Granted)))

	if s.notifier != nil && len(alloc.Granted) > 0 {
		if nerr := s.notifier.NotifyAllocation(ctx, alloc.AnnotatorID, len(alloc.Granted), alloc.Requested); nerr != nil {
			s.logger.Warn("allocation notification failed", logging.Error(nerr))
		}
	}

	granted := alloc.Granted
	if granted == nil {
		granted = []string{}
	}
	return AllocationResponse{
		AnnotatorID: alloc.AnnotatorID,
		Requested:   alloc.Requested,
		Granted:     granted,
	}, nil
}

// Roster lists every configured annotator with their progress, including
// those with no assignments yet.
func (s *AdminService) Roster(ctx context.Context) (RosterResponse, error) {
	progressByID := make(map[string]assignment.Progress)
	all, err := s.store.GlobalProgress(ctx)
	if err != nil {
		return RosterResponse{}, err
	}
	for _, p := range all {
		progressByID[p.AnnotatorID] = p
	}

	entries := make([]RosterEntry, 0)
	for _, a := range s.roster.List() {
		progress := progressByID[a.ID]
		progress.AnnotatorID = a.ID
		report := FromProgress(progress)
		report.Name = a.Name
		entries = append(entries, RosterEntry{
			ID:       a.ID,
			Name:     a.Name,
			Role:     a.Role,
			Active:   a.Active,
			Progress: report,
		})
	}
	return RosterResponse{Annotators: entries}, nil
}

// Remove deletes an assignment and its annotation, returning the plot to the
// unassigned pool.
func (s *AdminService) Remove(ctx context.Context, annotatorID, plotID string) error {
	if err := s.store.Remove(ctx, annotatorID, plotID); err != nil {
		return err
	}
	s.logger.Info("assignment removed",
		logging.String(logging.FieldAnnotator, annotatorID),
		logging.String(logging.FieldPlot, plotID))
	return nil
}

// GlobalProgress builds the admin dashboard payload: per-annotator progress
// plus catalog-wide assignment coverage.
func (s *AdminService) GlobalProgress(ctx context.Context) (GlobalProgressResponse, error) {
	all, err := s.store.GlobalProgress(ctx)
	if err != nil {
		return GlobalProgressResponse{}, err
	}
	reports := make([]ProgressReport, 0, len(all))
	assigned := 0
	for _, p := range all {
		report := FromProgress(p)
		if a, ok := s.roster.ByID(p.AnnotatorID); ok {
			report.Name = a.Name
		}
		reports = append(reports, report)
		assigned += p.Assigned
	}

	plots, err := s.catalog.Plots(ctx)
	if err != nil {
		return GlobalProgressResponse{}, err
	}
	total := len(plots)
	unassigned := total - assigned
	if unassigned < 0 {
		unassigned = 0
	}
	return GlobalProgressResponse{
		Annotators:      reports,
		TotalPlots:      total,
		AssignedPlots:   assigned,
		UnassignedPlots: unassigned,
	}, nil
}

// Records returns every annotation for export.
func (s *AdminService) Records(ctx context.Context) ([]*assignment.Record, error) {
	return s.store.Records(ctx)
}

// ClearAnnotations deletes every annotation and reopens every assignment,
// restarting the annotation pass while keeping plot bindings intact.
func (s *AdminService) ClearAnnotations(ctx context.Context) (ClearAnnotationsResponse, error) {
	cleared, err := s.store.ClearAnnotations(ctx)
	if err != nil {
		return ClearAnnotationsResponse{}, err
	}
	s.logger.Info("annotations cleared", logging.Int64("cleared", cleared))
	return ClearAnnotationsResponse{Cleared: cleared}, nil
}

// Status aggregates runtime information for the status surface.
func (s *AdminService) Status(ctx context.Context, version string) (StatusResponse, error) {
	global, err := s.GlobalProgress(ctx)
	if err != nil {
		return StatusResponse{}, err
	}
	return StatusResponse{
		Version:         version,
		DatabasePath:    s.store.Path(),
		TotalPlots:      global.TotalPlots,
		AssignedPlots:   global.AssignedPlots,
		UnassignedPlots: global.UnassignedPlots,
		Annotators:      len(s.roster.List()),
	}, nil
}
