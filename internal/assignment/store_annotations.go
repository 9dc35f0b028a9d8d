package assignment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Submit records the annotator's selection for an assigned plot and marks
// the assignment complete, all in one transaction. Resubmission overwrites
// the selection under the record's original UUID; the completed flag never
// regresses.
func (s *Store) Submit(ctx context.Context, annotatorID, plotID string, selection Selection) (*Record, error) {
	if annotatorID == "" || plotID == "" {
		return nil, ErrInvalidRequest
	}
	if selection.Empty() {
		return nil, ErrEmptySelection
	}

	var record *Record
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var assignmentID int64
		err := tx.QueryRowContext(ctx,
			"SELECT id FROM assignments WHERE annotator_id = ? AND plot_id = ?",
			annotatorID, plotID,
		).Scan(&assignmentID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotAssigned
		}
		if err != nil {
			return err
		}

		// Keep the record ID stable across resubmissions.
		recordID := uuid.NewString()
		err = tx.QueryRowContext(ctx,
			"SELECT id FROM annotations WHERE annotator_id = ? AND plot_id = ?",
			annotatorID, plotID,
		).Scan(&recordID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		now := time.Now()
		submittedAt := formatTime(now)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO annotations (id, annotator_id, plot_id, selection_a, selection_b, image_count_a, image_count_b, submitted_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(annotator_id, plot_id) DO UPDATE SET
			   selection_a = excluded.selection_a,
			   selection_b = excluded.selection_b,
			   image_count_a = excluded.image_count_a,
			   image_count_b = excluded.image_count_b,
			   submitted_at = excluded.submitted_at`,
			recordID, annotatorID, plotID,
			nullableString(selection.ImageA), nullableString(selection.ImageB),
			selection.ImageCountA, selection.ImageCountB,
			submittedAt,
		); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE assignments SET completed = 1, completed_at = COALESCE(completed_at, ?) WHERE id = ?",
			submittedAt, assignmentID,
		); err != nil {
			return err
		}

		record = &Record{
			ID:          recordID,
			AnnotatorID: annotatorID,
			PlotID:      plotID,
			Selection:   selection,
			SubmittedAt: now.UTC(),
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotAssigned) {
			return nil, ErrNotAssigned
		}
		return nil, storeFailure("submit annotation", err)
	}
	return record, nil
}

// ClearAnnotations deletes every annotation and reopens every assignment in
// one transaction, so no assignment is left completed without a backing
// record. It returns the number of annotations deleted.
func (s *Store) ClearAnnotations(ctx context.Context) (int64, error) {
	var cleared int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM annotations")
		if err != nil {
			return err
		}
		cleared, err = res.RowsAffected()
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			"UPDATE assignments SET completed = 0, completed_at = NULL",
		)
		return err
	})
	if err != nil {
		return 0, storeFailure("clear annotations", err)
	}
	return cleared, nil
}

// RecordFor returns the annotator's annotation for a plot, or nil when none
// has been submitted.
func (s *Store) RecordFor(ctx context.Context, annotatorID, plotID string) (*Record, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM annotations WHERE annotator_id = ? AND plot_id = ?",
		annotatorID, plotID,
	)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeFailure("lookup annotation", err)
	}
	return r, nil
}

// Records returns every annotation, ordered by submission time then plot,
// for export.
func (s *Store) Records(ctx context.Context) ([]*Record, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM annotations ORDER BY submitted_at, plot_id",
	)
	if err != nil {
		return nil, storeFailure("list annotations", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, storeFailure("scan annotation", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storeFailure("list annotations", err)
	}
	return records, nil
}
