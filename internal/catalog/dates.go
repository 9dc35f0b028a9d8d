package catalog

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// Filename conventions accumulated over several ingestion passes. The
// current dataset uses YYYY_MM_DD.png; older plots carry month-name forms
// like "Dec_2024_05.tif" or "5dec,2024.tif".
var (
	numericDatePattern = regexp.MustCompile(`^(\d{4})_(\d{1,2})_(\d{1,2})\.png$`)
	legacyPatterns     = []*regexp.Regexp{
		regexp.MustCompile(`([a-z]+)_(\d{4})`),
		regexp.MustCompile(`(\d+)([a-z]+),(\d{4})`),
		regexp.MustCompile(`(\d+)([a-z]+)(\d{4})`),
		regexp.MustCompile(`([a-z]+)(\d+)_(\d{4})`),
	}
	bareYearPattern = regexp.MustCompile(`20\d{2}`)
)

var monthNumbers = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

var monthLabels = [...]string{"", "Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// ParseDate extracts a capture date from an image filename or path. It
// reports ok=false when the name encodes no date at all, not even a year.
func ParseDate(filenameOrPath string) (Date, bool) {
	name := path.Base(strings.ReplaceAll(filenameOrPath, "\\", "/"))
	lower := strings.ToLower(name)

	if m := numericDatePattern.FindStringSubmatch(lower); m != nil {
		return Date{Year: atoi(m[1]), Month: atoi(m[2]), Day: atoi(m[3])}, true
	}

	for _, pattern := range legacyPatterns {
		m := pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		groups := m[1:]
		switch len(groups) {
		case 2:
			if month, ok := monthNumbers[groups[0]]; ok {
				return Date{Year: atoi(groups[1]), Month: month, Day: 1}, true
			}
		case 3:
			if isDigits(groups[0]) {
				if month, ok := monthNumbers[groups[1]]; ok {
					return Date{Year: atoi(groups[2]), Month: month, Day: atoi(groups[0])}, true
				}
			} else if month, ok := monthNumbers[groups[0]]; ok {
				return Date{Year: atoi(groups[2]), Month: month, Day: atoi(groups[1])}, true
			}
		}
	}

	if m := bareYearPattern.FindString(name); m != "" {
		return Date{Year: atoi(m)}, true
	}
	return Date{}, false
}

// Label renders a date for display: "Dec 5, 2024", "Dec 2024", or "2024"
// depending on how much the filename revealed.
func (d Date) Label() string {
	if d.Month <= 0 || d.Month >= len(monthLabels) {
		return strconv.Itoa(d.Year)
	}
	if d.Day > 0 {
		return fmt.Sprintf("%s %d, %d", monthLabels[d.Month], d.Day, d.Year)
	}
	return fmt.Sprintf("%s %d", monthLabels[d.Month], d.Year)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
