package assignment

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest marks malformed input: blank annotator, non-positive
	// count, unknown plot.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNotAssigned marks a submission for a plot the annotator does not hold.
	ErrNotAssigned = errors.New("plot not assigned")
	// ErrEmptySelection marks a submission that selects no image in any cycle.
	ErrEmptySelection = errors.New("empty selection")
	// ErrStoreUnavailable wraps database failures. Callers surface it; the
	// store never retries beyond its short busy backoff.
	ErrStoreUnavailable = errors.New("store unavailable")
)

func storeFailure(operation string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, operation, err)
}
