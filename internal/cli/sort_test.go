package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pfrederiksen/careerdb/internal/career"
)

func statIDs(stats []career.PlayerStatistics) []string {
	ids := make([]string, len(stats))
	for i, s := range stats {
		ids[i] = s.PlayerID
	}
	return ids
}

func TestSortStats(t *testing.T) {
	base := []career.PlayerStatistics{
		{PlayerID: "charlie", TotalTeams: 2, CareerSpanYears: 1, CareerStartDate: "2019-01-01"},
		{PlayerID: "Alpha", TotalTeams: 5, CareerSpanYears: 3, CareerStartDate: ""},
		{PlayerID: "bravo", TotalTeams: 5, CareerSpanYears: 6, CareerStartDate: "2016-05-01"},
		{PlayerID: "delta", TotalTeams: 1, CareerSpanYears: 6, CareerStartDate: "2019-01-01"},
	}

	tests := []struct {
		order SortOrder
		want  []string
	}{
		{SortByTeams, []string{"Alpha", "bravo", "charlie", "delta"}},
		{SortBySpan, []string{"bravo", "delta", "Alpha", "charlie"}},
		{SortByName, []string{"Alpha", "bravo", "charlie", "delta"}},
		{SortByStart, []string{"bravo", "charlie", "delta", "Alpha"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			stats := append([]career.PlayerStatistics(nil), base...)
			sortStats(stats, tt.order)
			assert.Equal(t, tt.want, statIDs(stats))
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	order, ok := parseSortOrder("SPAN")
	assert.True(t, ok)
	assert.Equal(t, SortBySpan, order)

	_, ok = parseSortOrder("age")
	assert.False(t, ok)
}

func TestSortedCounts(t *testing.T) {
	got := sortedCounts(map[string]int{"b": 2, "a": 2, "c": 5})
	assert.Equal(t, []career.Count{{Name: "c", Count: 5}, {Name: "a", Count: 2}, {Name: "b", Count: 2}}, got)
	assert.Empty(t, sortedCounts(nil))
}
