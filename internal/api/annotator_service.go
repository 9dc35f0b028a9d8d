package api

import (
	"context"
	"log/slog"
	"strings"

	"furrow/internal/assignment"
	"furrow/internal/catalog"
	"furrow/internal/identity"
	"furrow/internal/logging"
	"furrow/internal/notify"
)

// AnnotatorService exposes the operations an authenticated annotator may
// perform against their own queue.
type AnnotatorService struct {
	store    *assignment.Store
	catalog  catalog.Provider
	notifier notify.Service
	logger   *slog.Logger
}

// NewAnnotatorService constructs an AnnotatorService.
func NewAnnotatorService(store *assignment.Store, provider catalog.Provider, notifier notify.Service, logger *slog.Logger) *AnnotatorService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &AnnotatorService{
		store:    store,
		catalog:  provider,
		notifier: notifier,
		logger:   logging.WithComponent(logger, "annotator-api"),
	}
}

// Queue returns the annotator's plots in assignment order with the resume
// index.
func (s *AnnotatorService) Queue(ctx context.Context, annotatorID string) (QueueResponse, error) {
	assignments, start, err := s.store.Queue(ctx, annotatorID)
	if err != nil {
		return QueueResponse{}, err
	}
	return QueueResponse{
		Entries:    FromAssignments(assignments),
		StartIndex: start,
	}, nil
}

// PlotDetail returns the images and any previous submission for one of the
// annotator's plots. Plots outside the annotator's queue are not visible.
func (s *AnnotatorService) PlotDetail(ctx context.Context, annotatorID, plotID string) (*PlotDetail, error) {
	if strings.TrimSpace(plotID) == "" {
		return nil, assignment.ErrInvalidRequest
	}
	bound, err := s.store.Assignment(ctx, annotatorID, plotID)
	if err != nil {
		return nil, err
	}
	if bound == nil {
		return nil, assignment.ErrNotAssigned
	}

	cycles, err := s.catalog.PlotImages(ctx, plotID)
	if err != nil {
		return nil, assignment.ErrInvalidRequest
	}

	detail := &PlotDetail{
		PlotID: plotID,
		Cycles: FromCycles(cycles),
	}
	record, err := s.store.RecordFor(ctx, annotatorID, plotID)
	if err != nil {
		return nil, err
	}
	if record != nil {
		dto := FromRecord(record)
		detail.Record = &dto
	}
	return detail, nil
}

// Submit stores the annotator's selection for a plot and reports queue
// completion when this submission finishes their last open assignment.
func (s *AnnotatorService) Submit(ctx context.Context, annotator identity.Annotator, req SubmitRequest) (AnnotationRecord, error) {
	if strings.TrimSpace(req.PlotID) == "" {
		return AnnotationRecord{}, assignment.ErrInvalidRequest
	}
	if req.ImageCountA < 0 || req.ImageCountB < 0 {
		return AnnotationRecord{}, assignment.ErrInvalidRequest
	}

	record, err := s.store.Submit(ctx, annotator.ID, req.PlotID, ToSelection(req))
	if err != nil {
		return AnnotationRecord{}, err
	}
	s.logger.Info("annotation submitted",
		logging.String(logging.FieldAnnotator, annotator.ID),
		logging.String(logging.FieldPlot, req.PlotID))

	if s.notifier != nil {
		progress, perr := s.store.ProgressFor(ctx, annotator.ID)
		if perr == nil && progress.Assigned > 0 && progress.Completed == progress.Assigned {
			if nerr := s.notifier.NotifyQueueCompleted(ctx, annotator.DisplayName(), progress.Completed); nerr != nil {
				s.logger.Warn("queue completion notification failed", logging.Error(nerr))
			}
		}
	}
	return FromRecord(record), nil
}

// Progress returns the annotator's completion summary.
func (s *AnnotatorService) Progress(ctx context.Context, annotatorID string) (ProgressReport, error) {
	progress, err := s.store.ProgressFor(ctx, annotatorID)
	if err != nil {
		return ProgressReport{}, err
	}
	return FromProgress(progress), nil
}
