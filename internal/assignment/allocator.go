package assignment

import (
	"context"
	"strings"

	"furrow/internal/catalog"
)

// Allocator grants unassigned plots to annotators in catalog order.
type Allocator struct {
	store   *Store
	catalog catalog.Provider
}

// NewAllocator builds an allocator over the store and plot catalog.
func NewAllocator(store *Store, provider catalog.Provider) *Allocator {
	return &Allocator{store: store, catalog: provider}
}

// Allocate claims up to count unassigned plots for the annotator. When the
// unassigned pool holds fewer than count plots the grant is partial; an
// exhausted pool yields an empty grant. Neither case is an error.
func (a *Allocator) Allocate(ctx context.Context, annotatorID string, count int) (*Allocation, error) {
	annotatorID = strings.TrimSpace(annotatorID)
	if annotatorID == "" || count <= 0 {
		return nil, ErrInvalidRequest
	}

	plots, err := a.catalog.Plots(ctx)
	if err != nil {
		return nil, storeFailure("list catalog plots", err)
	}
	assigned, err := a.store.AssignedPlots(ctx)
	if err != nil {
		return nil, err
	}

	// Candidate list keeps catalog order; the claim skips any plot another
	// allocator grabs between this read and the insert.
	candidates := make([]string, 0, len(plots))
	for _, plotID := range plots {
		if _, taken := assigned[plotID]; !taken {
			candidates = append(candidates, plotID)
		}
	}

	granted, err := a.store.ClaimPlots(ctx, annotatorID, candidates, count)
	if err != nil {
		return nil, err
	}
	return &Allocation{
		AnnotatorID: annotatorID,
		Requested:   count,
		Granted:     granted,
	}, nil
}
