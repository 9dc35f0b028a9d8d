package assignment

import (
	"database/sql"
	"errors"
	"time"
)

const assignmentColumns = "id, annotator_id, plot_id, completed, assigned_at, completed_at"

const recordColumns = "id, annotator_id, plot_id, selection_a, selection_b, image_count_a, image_count_b, submitted_at"

func scanAssignment(scanner interface{ Scan(dest ...any) error }) (*Assignment, error) {
	var (
		id           int64
		annotatorID  string
		plotID       string
		completed    sql.NullInt64
		assignedRaw  sql.NullString
		completedRaw sql.NullString
	)
	if err := scanner.Scan(&id, &annotatorID, &plotID, &completed, &assignedRaw, &completedRaw); err != nil {
		return nil, err
	}

	a := &Assignment{
		ID:          id,
		AnnotatorID: annotatorID,
		PlotID:      plotID,
		Completed:   completed.Valid && completed.Int64 != 0,
	}
	if assigned, err := parseTimeString(assignedRaw.String); err == nil {
		a.AssignedAt = assigned
	}
	if completedRaw.Valid {
		if done, err := parseTimeString(completedRaw.String); err == nil {
			a.CompletedAt = &done
		}
	}
	return a, nil
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		id           string
		annotatorID  string
		plotID       string
		selectionA   sql.NullString
		selectionB   sql.NullString
		countA       sql.NullInt64
		countB       sql.NullInt64
		submittedRaw sql.NullString
	)
	if err := scanner.Scan(&id, &annotatorID, &plotID, &selectionA, &selectionB, &countA, &countB, &submittedRaw); err != nil {
		return nil, err
	}

	r := &Record{
		ID:          id,
		AnnotatorID: annotatorID,
		PlotID:      plotID,
		Selection: Selection{
			ImageA:      selectionA.String,
			ImageB:      selectionB.String,
			ImageCountA: int(countA.Int64),
			ImageCountB: int(countB.Int64),
		},
	}
	if submitted, err := parseTimeString(submittedRaw.String); err == nil {
		r.SubmittedAt = submitted
	}
	return r, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func formatTime(value time.Time) string {
	return value.UTC().Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
