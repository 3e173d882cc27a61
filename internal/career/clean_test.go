package career

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/careerdb/internal/noise"
	"github.com/pfrederiksen/careerdb/internal/player"
)

func TestCleaner_Clean_BridgesRemovedStint(t *testing.T) {
	stints := []Stint{
		{StintID: 1, PlayerID: "p", StintNumber: 1, Team: "Team A", DateStart: "2019-01-01"},
		{StintID: 2, PlayerID: "p", StintNumber: 2, Team: "S-Tier", DateStart: "2019-06-01"},
		{StintID: 3, PlayerID: "p", StintNumber: 3, Team: "Team C", DateStart: "2020-01-01", YearStart: 2020},
	}

	ds, report := testCleaner().Clean(stints, nil)

	require.Len(t, ds.Stints, 2)
	assert.Equal(t, 1, ds.Stints[0].StintNumber)
	assert.Equal(t, 2, ds.Stints[1].StintNumber)
	assert.Equal(t, 1, ds.Stints[0].StintID)
	assert.Equal(t, 3, ds.Stints[1].StintID, "stint IDs survive cleaning")

	require.Len(t, ds.Transitions, 1)
	tr := ds.Transitions[0]
	assert.Equal(t, "Team A", tr.FromTeam)
	assert.Equal(t, "Team C", tr.ToTeam)
	assert.Equal(t, "2020-01-01", tr.TransitionDate)
	assert.Equal(t, 1, tr.TransitionID)

	assert.Equal(t, 3, report.StintsBefore)
	assert.Equal(t, 1, report.StintsRemoved)
	assert.Equal(t, map[string]int{"S-Tier": 1}, report.RemovedTeams)
}

func TestCleaner_Clean_SampleDataset(t *testing.T) {
	stints := testBuilder().Build(samplePlayers())
	require.Len(t, stints, 8)

	ds, report := testCleaner().Clean(stints, nil)

	assertInvariants(t, ds)
	assert.Len(t, ds.Stints, 7)
	assert.Len(t, ds.Transitions, 4)
	assert.Len(t, ds.Stats, 3)
	assert.Equal(t, 3, report.PlayersBefore)
	assert.Equal(t, 3, report.PlayersAfter)

	boaster := Timeline(ds.Stints, "Boaster")
	require.Len(t, boaster, 1)
	assert.Equal(t, "Fnatic", boaster[0].Team)
	assert.Equal(t, 1, boaster[0].StintNumber)

	c := noise.Default()
	for _, s := range ds.Stints {
		assert.False(t, c.IsNoise(s.Team), s.Team)
	}
}

func TestCleaner_ZeroValueUsesDefaultVocabulary(t *testing.T) {
	stints := []Stint{
		{PlayerID: "p", StintNumber: 1, Team: "Team A"},
		{PlayerID: "p", StintNumber: 2, Team: "S-Tier"},
	}

	var c Cleaner
	ds, report := c.Clean(stints, nil)

	require.Len(t, ds.Stints, 1)
	assert.Equal(t, "Team A", ds.Stints[0].Team)
	assert.Equal(t, 1, report.StintsRemoved)
}

func TestCleaner_Clean_DropsPlayerWithOnlyNoise(t *testing.T) {
	stints := []Stint{
		{PlayerID: "ghost", StintNumber: 1, Team: "1st"},
		{PlayerID: "ghost", StintNumber: 2, Team: "Retired"},
		{PlayerID: "real", StintNumber: 1, Team: "Fnatic"},
	}

	ds, report := testCleaner().Clean(stints, nil)

	require.Len(t, ds.Stats, 1)
	assert.Equal(t, "real", ds.Stats[0].PlayerID)
	assert.Equal(t, 2, report.PlayersBefore)
	assert.Equal(t, 1, report.PlayersAfter)
	assert.Equal(t, 2, report.StintsRemoved)
}

func TestCleaner_Clean_OverlaysPriorIdentity(t *testing.T) {
	stints := []Stint{
		{PlayerID: "p", StintNumber: 1, Team: "Team A", RealName: "stale", Country: "stale"},
		{PlayerID: "q", StintNumber: 1, Team: "Team Q", RealName: "Q Name"},
	}
	prior := []PlayerStatistics{
		{
			PlayerID:       "p",
			RealName:       "Real Name",
			Country:        "Norway",
			CurrentTeam:    "Team A",
			PlayerStatus:   player.StatusActive,
			IsActive:       true,
			HasCurrentTeam: true,
			TotalTeams:     99,
		},
	}

	ds, _ := testCleaner().Clean(stints, prior)

	require.Len(t, ds.Stats, 2)
	p := ds.Stats[0]
	assert.Equal(t, "Real Name", p.RealName)
	assert.Equal(t, "Norway", p.Country)
	assert.Equal(t, "Team A", p.CurrentTeam)
	assert.True(t, p.IsActive)
	assert.True(t, p.HasCurrentTeam)
	assert.Equal(t, 1, p.TotalTeams, "aggregates are recomputed")

	q := ds.Stats[1]
	assert.Equal(t, "Q Name", q.RealName, "players missing from prior keep derived identity")
}

func TestCleaner_CleanDataset(t *testing.T) {
	ds := Derive(testBuilder().Build(samplePlayers()))

	cleaned, report := testCleaner().CleanDataset(ds)

	assert.Equal(t, len(ds.Transitions), report.TransitionsBefore)
	assert.Equal(t, len(cleaned.Transitions), report.TransitionsAfter)
	assert.Less(t, report.TransitionsAfter, report.TransitionsBefore)
	assertInvariants(t, cleaned)
}

func TestCleaner_Clean_CountsNoise(t *testing.T) {
	c := testCleaner()
	stints := []Stint{
		{PlayerID: "p", StintNumber: 1, Team: "TBD"},
		{PlayerID: "p", StintNumber: 2, Team: "Team A"},
	}

	c.Clean(stints, nil)

	assert.Equal(t, int64(1), c.Metrics.Counter("stints.noise"))
}

func TestCleaner_Clean_IsStable(t *testing.T) {
	stints := testBuilder().Build(samplePlayers())

	once, _ := testCleaner().Clean(stints, nil)
	twice, report := testCleaner().Clean(once.Stints, once.Stats)

	assert.Equal(t, once, twice)
	assert.Zero(t, report.StintsRemoved)
}
