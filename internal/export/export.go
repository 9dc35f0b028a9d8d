// Package export renders annotation records as CSV or JSON downloads.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"furrow/internal/assignment"
)

// Formats accepted by the download surfaces.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

var csvHeader = []string{
	"plot_id", "annotator_id",
	"selection_a", "selection_b",
	"image_count_a", "image_count_b",
	"submitted_at",
}

// WriteCSV renders records as CSV with a header row.
func WriteCSV(w io.Writer, records []*assignment.Record) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.PlotID,
			r.AnnotatorID,
			r.ImageA,
			r.ImageB,
			strconv.Itoa(r.ImageCountA),
			strconv.Itoa(r.ImageCountB),
			r.SubmittedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

type jsonRecord struct {
	ID          string `json:"id"`
	PlotID      string `json:"plotId"`
	AnnotatorID string `json:"annotatorId"`
	SelectionA  string `json:"selectionA,omitempty"`
	SelectionB  string `json:"selectionB,omitempty"`
	ImageCountA int    `json:"imageCountA"`
	ImageCountB int    `json:"imageCountB"`
	SubmittedAt string `json:"submittedAt"`
}

// WriteJSON renders records as an indented JSON array.
func WriteJSON(w io.Writer, records []*assignment.Record) error {
	out := make([]jsonRecord, 0, len(records))
	for _, r := range records {
		out = append(out, jsonRecord{
			ID:          r.ID,
			PlotID:      r.PlotID,
			AnnotatorID: r.AnnotatorID,
			SelectionA:  r.ImageA,
			SelectionB:  r.ImageB,
			ImageCountA: r.ImageCountA,
			ImageCountB: r.ImageCountB,
			SubmittedAt: r.SubmittedAt.UTC().Format(time.RFC3339),
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// Filename builds a timestamped download name like
// annotations_20250115_093045.csv.
func Filename(format string, now time.Time) string {
	return fmt.Sprintf("annotations_%s.%s", now.Format("20060102_150405"), format)
}
