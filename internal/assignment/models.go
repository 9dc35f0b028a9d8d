package assignment

import "time"

// Assignment binds one plot to one annotator.
type Assignment struct {
	ID          int64
	AnnotatorID string
	PlotID      string
	Completed   bool
	AssignedAt  time.Time
	CompletedAt *time.Time
}

// Selection carries the chosen harvest image per growth cycle. At least one
// cycle must name an image; the counts record how many images each cycle
// offered at submission time.
type Selection struct {
	ImageA      string
	ImageB      string
	ImageCountA int
	ImageCountB int
}

// Empty reports whether the selection names no image in either cycle.
func (s Selection) Empty() bool { return s.ImageA == "" && s.ImageB == "" }

// Record is a persisted annotation. Its ID is a UUID minted on first
// submission and stable across resubmissions.
type Record struct {
	ID          string
	AnnotatorID string
	PlotID      string
	Selection
	SubmittedAt time.Time
}

// Allocation reports the outcome of an allocation request. Granted holds the
// claimed plot IDs in catalog order; it may be shorter than Requested when
// the unassigned pool runs dry.
type Allocation struct {
	AnnotatorID string
	Requested   int
	Granted     []string
}

// Progress summarizes one annotator's completion state. Remaining is always
// Assigned minus Completed.
type Progress struct {
	AnnotatorID string
	Assigned    int
	Completed   int
	Remaining   int
	Percent     float64
}
