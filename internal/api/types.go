package api

// AllocateRequest asks for plots to be assigned to an annotator.
type AllocateRequest struct {
	AnnotatorID string `json:"annotatorId"`
	Count       int    `json:"count"`
}

// AllocationResponse reports the granted plots. Granted can be shorter than
// Requested when the unassigned pool runs low; it is never padded.
type AllocationResponse struct {
	AnnotatorID string   `json:"annotatorId"`
	Requested   int      `json:"requested"`
	Granted     []string `json:"granted"`
}

// SubmitRequest carries an annotator's selection for one plot. At least one
// of selectionA/selectionB must be set.
type SubmitRequest struct {
	PlotID      string `json:"plotId"`
	SelectionA  string `json:"selectionA,omitempty"`
	SelectionB  string `json:"selectionB,omitempty"`
	ImageCountA int    `json:"imageCountA,omitempty"`
	ImageCountB int    `json:"imageCountB,omitempty"`
}

// AnnotationRecord is the transport form of a stored annotation.
type AnnotationRecord struct {
	ID          string `json:"id"`
	AnnotatorID string `json:"annotatorId"`
	PlotID      string `json:"plotId"`
	SelectionA  string `json:"selectionA,omitempty"`
	SelectionB  string `json:"selectionB,omitempty"`
	ImageCountA int    `json:"imageCountA"`
	ImageCountB int    `json:"imageCountB"`
	SubmittedAt string `json:"submittedAt,omitempty"`
}

// QueueEntry is one plot in an annotator's working queue.
type QueueEntry struct {
	PlotID      string `json:"plotId"`
	Completed   bool   `json:"completed"`
	AssignedAt  string `json:"assignedAt,omitempty"`
	CompletedAt string `json:"completedAt,omitempty"`
}

// QueueResponse lists an annotator's queue in assignment order plus the
// index to resume at.
type QueueResponse struct {
	Entries    []QueueEntry `json:"entries"`
	StartIndex int          `json:"startIndex"`
}

// PlotImage describes one selectable image.
type PlotImage struct {
	Filename string `json:"filename"`
	Label    string `json:"label"`
}

// PlotCycle groups a plot's images by growth-cycle year.
type PlotCycle struct {
	Year   int         `json:"year"`
	Images []PlotImage `json:"images"`
}

// PlotDetail is everything the annotation view needs for one plot: images by
// cycle plus any previous submission.
type PlotDetail struct {
	PlotID string            `json:"plotId"`
	Cycles []PlotCycle       `json:"cycles"`
	Record *AnnotationRecord `json:"record,omitempty"`
}

// ProgressReport summarizes one annotator's completion state.
type ProgressReport struct {
	AnnotatorID string  `json:"annotatorId"`
	Name        string  `json:"name,omitempty"`
	Assigned    int     `json:"assigned"`
	Completed   int     `json:"completed"`
	Remaining   int     `json:"remaining"`
	Percent     float64 `json:"percent"`
}

// GlobalProgressResponse is the admin dashboard payload.
type GlobalProgressResponse struct {
	Annotators      []ProgressReport `json:"annotators"`
	TotalPlots      int              `json:"totalPlots"`
	AssignedPlots   int              `json:"assignedPlots"`
	UnassignedPlots int              `json:"unassignedPlots"`
}

// ClearAnnotationsResponse reports the outcome of a bulk annotation reset.
type ClearAnnotationsResponse struct {
	Cleared int64 `json:"cleared"`
}

// RosterEntry pairs a roster identity with its progress.
type RosterEntry struct {
	ID       string         `json:"id"`
	Name     string         `json:"name,omitempty"`
	Role     string         `json:"role"`
	Active   bool           `json:"active"`
	Progress ProgressReport `json:"progress"`
}

// RosterResponse wraps the annotator roster.
type RosterResponse struct {
	Annotators []RosterEntry `json:"annotators"`
}

// StatusResponse aggregates service runtime information.
type StatusResponse struct {
	Version         string `json:"version"`
	DatabasePath    string `json:"databasePath"`
	TotalPlots      int    `json:"totalPlots"`
	AssignedPlots   int    `json:"assignedPlots"`
	UnassignedPlots int    `json:"unassignedPlots"`
	Annotators      int    `json:"annotators"`
}
