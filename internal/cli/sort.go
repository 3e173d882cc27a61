package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/careerdb/internal/career"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByTeams SortOrder = "teams"
	SortBySpan  SortOrder = "span"
	SortByName  SortOrder = "name"
	SortByStart SortOrder = "start"
)

func parseSortOrder(s string) (SortOrder, bool) {
	switch o := SortOrder(strings.ToLower(s)); o {
	case SortByTeams, SortBySpan, SortByName, SortByStart:
		return o, true
	}
	return "", false
}

// sortStats sorts player statistics based on the specified sort order
func sortStats(stats []career.PlayerStatistics, sortOrder SortOrder) {
	switch sortOrder {
	case SortByTeams:
		sort.SliceStable(stats, func(i, j int) bool {
			if stats[i].TotalTeams != stats[j].TotalTeams {
				return stats[i].TotalTeams > stats[j].TotalTeams
			}
			return compareByName(stats[i], stats[j])
		})
	case SortBySpan:
		sort.SliceStable(stats, func(i, j int) bool {
			if stats[i].CareerSpanYears != stats[j].CareerSpanYears {
				return stats[i].CareerSpanYears > stats[j].CareerSpanYears
			}
			return compareByName(stats[i], stats[j])
		})
	case SortByName:
		sort.SliceStable(stats, func(i, j int) bool {
			return compareByName(stats[i], stats[j])
		})
	case SortByStart:
		sort.SliceStable(stats, func(i, j int) bool {
			return compareByStart(stats[i], stats[j])
		})
	}
}

func compareByName(i, j career.PlayerStatistics) bool {
	return strings.ToLower(i.PlayerID) < strings.ToLower(j.PlayerID)
}

// compareByStart compares two players by career start date
// Returns true if player i should come before player j
func compareByStart(i, j career.PlayerStatistics) bool {
	// If both dates are known, compare them; ISO dates sort lexically
	if i.CareerStartDate != "" && j.CareerStartDate != "" {
		if i.CareerStartDate != j.CareerStartDate {
			return i.CareerStartDate < j.CareerStartDate
		}
		return compareByName(i, j)
	}

	// If only one date is known, put the known one first
	if i.CareerStartDate != "" {
		return true
	}
	if j.CareerStartDate != "" {
		return false
	}

	return compareByName(i, j)
}

// sortedCounts turns a count map into a slice, largest first
func sortedCounts(m map[string]int) []career.Count {
	counts := make([]career.Count, 0, len(m))
	for name, n := range m {
		counts = append(counts, career.Count{Name: name, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})
	return counts
}
