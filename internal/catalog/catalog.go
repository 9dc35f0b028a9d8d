package catalog

import "context"

// Date is a sortable capture date parsed from an image filename. Month and
// Day are zero when the filename only reveals a year.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Before reports whether d sorts earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// ImageEntry describes one image inside a plot directory.
type ImageEntry struct {
	// Filename is the path relative to the plot directory, always with
	// forward slashes.
	Filename string
	// Label is the human-readable capture date, e.g. "Dec 5, 2024".
	Label string
	Date  Date
}

// Cycle groups a plot's images by growth-cycle year.
type Cycle struct {
	Year    int
	Entries []ImageEntry
}

// Provider exposes the read-only plot dataset. The dataset is external
// immutable input; nothing in the service writes to it.
type Provider interface {
	// Plots returns all plot identifiers in stable numeric-aware order.
	Plots(ctx context.Context) ([]string, error)
	// PlotImages returns the plot's images grouped by cycle year, cycles
	// and entries both in ascending date order.
	PlotImages(ctx context.Context, plotID string) ([]Cycle, error)
	// ImagePath resolves a relative image filename to an absolute path
	// inside the plot directory, rejecting traversal outside it.
	ImagePath(plotID, relative string) (string, error)
}
