package assignment

import (
	"context"
	"math"
)

// percentComplete rounds completed/assigned to one decimal place, returning
// 0 when nothing is assigned.
func percentComplete(completed, assigned int) float64 {
	if assigned == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(assigned)*1000) / 10
}

// ProgressFor summarizes one annotator's completion state. An annotator
// with no assignments reports zero progress rather than an error.
func (s *Store) ProgressFor(ctx context.Context, annotatorID string) (Progress, error) {
	ctx = ensureContext(ctx)
	var assigned, completed int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1), COALESCE(SUM(completed), 0) FROM assignments WHERE annotator_id = ?",
		annotatorID,
	).Scan(&assigned, &completed)
	if err != nil {
		return Progress{}, storeFailure("read progress", err)
	}
	return Progress{
		AnnotatorID: annotatorID,
		Assigned:    assigned,
		Completed:   completed,
		Remaining:   assigned - completed,
		Percent:     percentComplete(completed, assigned),
	}, nil
}

// GlobalProgress summarizes every annotator with at least one assignment,
// ordered by annotator ID.
func (s *Store) GlobalProgress(ctx context.Context) ([]Progress, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT annotator_id, COUNT(1), COALESCE(SUM(completed), 0) FROM assignments GROUP BY annotator_id ORDER BY annotator_id",
	)
	if err != nil {
		return nil, storeFailure("read global progress", err)
	}
	defer rows.Close()

	var all []Progress
	for rows.Next() {
		var p Progress
		if err := rows.Scan(&p.AnnotatorID, &p.Assigned, &p.Completed); err != nil {
			return nil, storeFailure("scan progress row", err)
		}
		p.Remaining = p.Assigned - p.Completed
		p.Percent = percentComplete(p.Completed, p.Assigned)
		all = append(all, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeFailure("read global progress", err)
	}
	return all, nil
}
