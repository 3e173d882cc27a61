package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Present marks an open-ended stint
const Present = "Present"

// Status is the kind of stint a team label describes
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusLoan     Status = "Loan"
	StatusStandIn  Status = "Stand-in"
	StatusTrial    Status = "Trial"
)

var (
	isoDatePattern    = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	yearPattern       = regexp.MustCompile(`\d{4}`)
	trailingParenText = regexp.MustCompile(`\s*\(([^)]+)\)\s*$`)

	titleCaser = cases.Title(language.Und)
)

// Fragment is one normalized career line
type Fragment struct {
	DateStart string `json:"date_start"`
	DateEnd   string `json:"date_end"`
	DateRange string `json:"date_range"`
	Team      string `json:"team"`
	Status    Status `json:"status"`
}

// IsOngoing reports whether the fragment has no end yet
func (f Fragment) IsOngoing() bool {
	return f.DateEnd == Present
}

// Parse normalizes a raw date range and team label.
// The second return value is false when the date range has no four-digit
// year, which means the line is section boilerplate rather than a stint.
func Parse(dateRange, team string) (Fragment, bool) {
	frag := Fragment{
		DateStart: StartDate(dateRange),
		DateEnd:   EndDate(dateRange),
		DateRange: dateRange,
		Team:      CleanTeam(team),
		Status:    ExtractStatus(team),
	}
	return frag, HasYear(dateRange)
}

// HasYear reports whether s contains a four-digit run
func HasYear(s string) bool {
	return yearPattern.MatchString(s)
}

// StartDate returns the first ISO date in the range, or "" if there is none
func StartDate(dateRange string) string {
	return isoDatePattern.FindString(dateRange)
}

// EndDate returns Present when the range is open-ended, otherwise the last ISO
// date of the range. A single date is a start with no end, so it yields "".
func EndDate(dateRange string) string {
	if strings.Contains(strings.ToLower(dateRange), "present") {
		return Present
	}
	dates := isoDatePattern.FindAllString(dateRange, -1)
	if len(dates) < 2 {
		return ""
	}
	return dates[len(dates)-1]
}

// CleanTeam strips one trailing parenthetical annotation from a team label
func CleanTeam(team string) string {
	return strings.TrimSpace(trailingParenText.ReplaceAllString(team, ""))
}

// ExtractStatus maps the trailing parenthetical of a team label to a Status.
// Labels without one are Active; unknown annotations are kept title-cased.
func ExtractStatus(team string) Status {
	m := trailingParenText.FindStringSubmatch(team)
	if m == nil {
		return StatusActive
	}

	note := strings.ToLower(strings.TrimSpace(m[1]))
	switch {
	case strings.Contains(note, "inactive"):
		return StatusInactive
	case strings.Contains(note, "loan"):
		return StatusLoan
	case strings.Contains(note, "stand-in"), strings.Contains(note, "standin"):
		return StatusStandIn
	case strings.Contains(note, "trial"):
		return StatusTrial
	case note == "":
		return StatusActive
	default:
		return Status(titleCaser.String(note))
	}
}
