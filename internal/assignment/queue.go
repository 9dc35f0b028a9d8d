package assignment

import "context"

// ResolveStart picks the queue position an annotator should resume at: the
// first incomplete assignment, or 0 when the queue is empty or fully
// complete.
func ResolveStart(assignments []*Assignment) int {
	for i, a := range assignments {
		if !a.Completed {
			return i
		}
	}
	return 0
}

// Queue returns the annotator's assignments in assignment order along with
// the resume index.
func (s *Store) Queue(ctx context.Context, annotatorID string) ([]*Assignment, int, error) {
	assignments, err := s.AssignmentsFor(ctx, annotatorID)
	if err != nil {
		return nil, 0, err
	}
	return assignments, ResolveStart(assignments), nil
}
