package tier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/careerdb/internal/career"
	"github.com/pfrederiksen/careerdb/internal/player"
)

func TestMatcher_IsTier1(t *testing.T) {
	m := Default()

	tests := []struct {
		name string
		team string
		want bool
	}{
		{"exact", "Sentinels", true},
		{"case insensitive", "FNATIC", true},
		{"padded", "  Paper Rex  ", true},
		{"contains allowlisted name", "Sentinels Academy", true},
		{"contained in allowlisted name", "Cloud", true},
		{"abbreviation", "PRX", true},
		{"empty", "", false},
		{"blank", "   ", false},
		{"unrelated", "Paradox", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.IsTier1(tt.team))
		})
	}
}

func TestNew_IgnoresBlankAndDuplicates(t *testing.T) {
	m := New([]string{"Alpha", "alpha", " ", "", "Beta"})

	assert.Equal(t, 2, m.Len())
	assert.True(t, m.IsTier1("ALPHA"))
	assert.False(t, m.IsTier1("Gamma"))
}

func TestMatcher_Filter(t *testing.T) {
	m := New([]string{"Alpha", "Beta"})
	players := []*player.Player{
		{
			ID:          "current",
			CurrentTeam: "Alpha",
			Career: []player.RawEntry{
				{DateRange: "2020-01-01 — Present", Team: "Alpha"},
				{DateRange: "2019-01-01 — 2020-01-01", Team: "Beta"},
			},
		},
		{
			ID:     "history",
			Career: []player.RawEntry{{DateRange: "2019", Team: "Beta Academy"}},
		},
		{ID: "none", CurrentTeam: "Gamma"},
		nil,
	}

	results := m.Filter(players)

	require.Len(t, results, 2)
	assert.Equal(t, "current", results[0].Player.ID)
	assert.Equal(t, []string{"Alpha", "Beta"}, results[0].Teams)
	assert.Equal(t, 2, results[0].Count())
	assert.Equal(t, "history", results[1].Player.ID)
	assert.Equal(t, []string{"Beta Academy"}, results[1].Teams)
}

func TestMatcher_Filter_CleansHistoryLabels(t *testing.T) {
	m := Default()
	players := []*player.Player{{
		ID:          "loaned",
		CurrentTeam: "Sentinels",
		Career: []player.RawEntry{
			{DateRange: "2021-01-01 — 2021-06-01", Team: "Sentinels (Loan)"},
			{DateRange: "2021-06-01 — Present", Team: "Sentinels"},
			{DateRange: "2020-01-01 — 2021-01-01", Team: "Paradox"},
		},
	}}

	results := m.Filter(players)

	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Count())
	assert.Equal(t, []string{"Sentinels"}, results[0].Teams)
}

func TestMatcher_Expand(t *testing.T) {
	m := New([]string{"Alpha"})
	results := []Result{{Player: &player.Player{ID: "p"}, Teams: []string{"Alpha"}}}
	stints := []career.Stint{
		{PlayerID: "p", StintNumber: 1, Team: "Gamma"},
		{PlayerID: "q", StintNumber: 1, Team: "Alpha"},
		{PlayerID: "p", StintNumber: 2, Team: "Alpha"},
	}

	rows := m.Expand(stints, results)

	require.Len(t, rows, 2)
	assert.False(t, rows[0].IsTier1)
	assert.True(t, rows[1].IsTier1)
	assert.Equal(t, 1, rows[1].Tier1TeamsCount)
	assert.Equal(t, 2, rows[1].StintNumber)
}
