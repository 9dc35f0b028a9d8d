package assignment

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ClaimPlots binds unclaimed candidate plots to the annotator inside a
// single transaction, stopping after limit grants. Candidates already bound
// to any annotator are skipped via the UNIQUE(plot_id) constraint, so
// concurrent claims can never double-assign a plot. Granted IDs come back in
// candidate order.
func (s *Store) ClaimPlots(ctx context.Context, annotatorID string, candidates []string, limit int) ([]string, error) {
	if limit <= 0 || len(candidates) == 0 {
		return nil, nil
	}
	var granted []string
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		granted = granted[:0]
		now := formatTime(time.Now())
		for _, plotID := range candidates {
			res, err := tx.ExecContext(ctx,
				"INSERT INTO assignments (annotator_id, plot_id, completed, assigned_at) VALUES (?, ?, 0, ?) ON CONFLICT(plot_id) DO NOTHING",
				annotatorID, plotID, now,
			)
			if err != nil {
				return err
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if affected == 1 {
				granted = append(granted, plotID)
				if len(granted) == limit {
					break
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeFailure("claim plots", err)
	}
	return granted, nil
}

// AssignmentsFor returns the annotator's assignments in assignment order.
func (s *Store) AssignmentsFor(ctx context.Context, annotatorID string) ([]*Assignment, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+assignmentColumns+" FROM assignments WHERE annotator_id = ? ORDER BY id",
		annotatorID,
	)
	if err != nil {
		return nil, storeFailure("list assignments", err)
	}
	defer rows.Close()

	var assignments []*Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, storeFailure("scan assignment", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeFailure("list assignments", err)
	}
	return assignments, nil
}

// Assignments returns every binding across all annotators, ordered by plot.
func (s *Store) Assignments(ctx context.Context) ([]*Assignment, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+assignmentColumns+" FROM assignments ORDER BY plot_id",
	)
	if err != nil {
		return nil, storeFailure("list all assignments", err)
	}
	defer rows.Close()

	var assignments []*Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, storeFailure("scan assignment", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeFailure("list all assignments", err)
	}
	return assignments, nil
}

// Assignment returns the binding between an annotator and a plot, or nil
// when none exists.
func (s *Store) Assignment(ctx context.Context, annotatorID, plotID string) (*Assignment, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		"SELECT "+assignmentColumns+" FROM assignments WHERE annotator_id = ? AND plot_id = ?",
		annotatorID, plotID,
	)
	a, err := scanAssignment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeFailure("lookup assignment", err)
	}
	return a, nil
}

// AssignedPlots returns every plot currently bound to any annotator.
func (s *Store) AssignedPlots(ctx context.Context) (map[string]struct{}, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, "SELECT plot_id FROM assignments")
	if err != nil {
		return nil, storeFailure("list assigned plots", err)
	}
	defer rows.Close()

	assigned := make(map[string]struct{})
	for rows.Next() {
		var plotID string
		if err := rows.Scan(&plotID); err != nil {
			return nil, storeFailure("scan assigned plot", err)
		}
		assigned[plotID] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, storeFailure("list assigned plots", err)
	}
	return assigned, nil
}

// Remove deletes an assignment and its annotation record together. Removing
// a binding that does not exist is not an error.
func (s *Store) Remove(ctx context.Context, annotatorID, plotID string) error {
	if annotatorID == "" || plotID == "" {
		return ErrInvalidRequest
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM assignments WHERE annotator_id = ? AND plot_id = ?",
			annotatorID, plotID,
		); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			"DELETE FROM annotations WHERE annotator_id = ? AND plot_id = ?",
			annotatorID, plotID,
		)
		return err
	})
	if err != nil {
		return storeFailure("remove assignment", err)
	}
	return nil
}
