package api

import (
	"time"

	"furrow/internal/assignment"
	"furrow/internal/catalog"
)

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}

// FromAssignment converts a stored assignment to its queue entry DTO.
func FromAssignment(a *assignment.Assignment) QueueEntry {
	entry := QueueEntry{
		PlotID:     a.PlotID,
		Completed:  a.Completed,
		AssignedAt: formatTimestamp(a.AssignedAt),
	}
	if a.CompletedAt != nil {
		entry.CompletedAt = formatTimestamp(*a.CompletedAt)
	}
	return entry
}

// FromAssignments converts a queue slice preserving order.
func FromAssignments(assignments []*assignment.Assignment) []QueueEntry {
	entries := make([]QueueEntry, 0, len(assignments))
	for _, a := range assignments {
		entries = append(entries, FromAssignment(a))
	}
	return entries
}

// FromRecord converts a stored annotation to its DTO.
func FromRecord(r *assignment.Record) AnnotationRecord {
	return AnnotationRecord{
		ID:          r.ID,
		AnnotatorID: r.AnnotatorID,
		PlotID:      r.PlotID,
		SelectionA:  r.ImageA,
		SelectionB:  r.ImageB,
		ImageCountA: r.ImageCountA,
		ImageCountB: r.ImageCountB,
		SubmittedAt: formatTimestamp(r.SubmittedAt),
	}
}

// FromProgress converts a progress summary to its DTO.
func FromProgress(p assignment.Progress) ProgressReport {
	return ProgressReport{
		AnnotatorID: p.AnnotatorID,
		Assigned:    p.Assigned,
		Completed:   p.Completed,
		Remaining:   p.Remaining,
		Percent:     p.Percent,
	}
}

// FromCycles converts catalog cycles to plot detail DTOs.
func FromCycles(cycles []catalog.Cycle) []PlotCycle {
	out := make([]PlotCycle, 0, len(cycles))
	for _, cycle := range cycles {
		images := make([]PlotImage, 0, len(cycle.Entries))
		for _, entry := range cycle.Entries {
			images = append(images, PlotImage{
				Filename: entry.Filename,
				Label:    entry.Label,
			})
		}
		out = append(out, PlotCycle{Year: cycle.Year, Images: images})
	}
	return out
}

// ToSelection converts a submit request to the storage selection.
func ToSelection(req SubmitRequest) assignment.Selection {
	return assignment.Selection{
		ImageA:      req.SelectionA,
		ImageB:      req.SelectionB,
		ImageCountA: req.ImageCountA,
		ImageCountB: req.ImageCountB,
	}
}
