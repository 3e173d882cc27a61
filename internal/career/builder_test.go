package career

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/careerdb/internal/normalize"
	"github.com/pfrederiksen/careerdb/internal/player"
)

func TestBuilder_BuildPlayer_ClosedInactiveStint(t *testing.T) {
	b := testBuilder()
	p := &player.Player{
		ID: "p1",
		Career: []player.RawEntry{
			{DateRange: "2020-04-13 — 2020-07-02", Team: "Team X (Inactive)"},
		},
	}

	stints := b.BuildPlayer(p, 1)

	require.Len(t, stints, 1)
	s := stints[0]
	assert.Equal(t, "2020-04-13", s.DateStart)
	assert.Equal(t, "2020-07-02", s.DateEnd)
	assert.Equal(t, "Team X", s.Team)
	assert.Equal(t, normalize.StatusInactive, s.Status)
	assert.Equal(t, 80, s.DurationDays)
	assert.Equal(t, 2020, s.YearStart)
	assert.Equal(t, 2020, s.YearEnd)
	assert.False(t, s.IsCurrentTeam)
	assert.Equal(t, 1, s.StintNumber)
}

func TestBuilder_BuildPlayer_PresentStint(t *testing.T) {
	b := testBuilder()
	p := &player.Player{
		ID:     "p1",
		Career: []player.RawEntry{{DateRange: "2021-01-10 — Present", Team: "Sentinels"}},
	}

	stints := b.BuildPlayer(p, 1)

	require.Len(t, stints, 1)
	assert.True(t, stints[0].IsCurrentTeam)
	assert.Equal(t, fixedNow.Year(), stints[0].YearEnd)
	assert.Equal(t, normalize.Present, stints[0].DateEnd)
	assert.Greater(t, stints[0].DurationDays, 0)
}

func TestBuilder_BuildPlayer_SkipsEntriesWithoutYear(t *testing.T) {
	b := testBuilder()
	p := &player.Player{
		ID: "p1",
		Career: []player.RawEntry{
			{DateRange: "Timeline", Team: "Header"},
			{DateRange: "2019-01-01 — 2019-02-01", Team: "A"},
			{DateRange: "", Team: "Blank"},
			{DateRange: "2019-02-01 — 2019-03-01", Team: "B"},
		},
	}

	stints := b.BuildPlayer(p, 10)

	require.Len(t, stints, 2)
	assert.Equal(t, []int{1, 2}, []int{stints[0].StintNumber, stints[1].StintNumber})
	assert.Equal(t, []int{10, 11}, []int{stints[0].StintID, stints[1].StintID})
	assert.Equal(t, []string{"A", "B"}, []string{stints[0].Team, stints[1].Team})
	assert.EqualValues(t, 2, b.Metrics.Counter("stints.skipped"))
	assert.EqualValues(t, 2, b.Metrics.Counter("stints.built"))
}

func TestBuilder_BuildPlayer_NoHistory(t *testing.T) {
	b := testBuilder()
	assert.Empty(t, b.BuildPlayer(&player.Player{ID: "p1"}, 1))
	assert.Empty(t, b.BuildPlayer(&player.Player{ID: "p2", Career: []player.RawEntry{}}, 1))
}

func TestBuilder_BuildPlayer_SingleDate(t *testing.T) {
	b := testBuilder()
	p := &player.Player{
		ID:     "p1",
		Career: []player.RawEntry{{DateRange: "2018-03-03", Team: "Solo"}},
	}

	stints := b.BuildPlayer(p, 1)

	require.Len(t, stints, 1)
	assert.Equal(t, "2018-03-03", stints[0].DateStart)
	assert.Equal(t, "", stints[0].DateEnd)
	assert.Equal(t, 0, stints[0].DurationDays)
	assert.False(t, stints[0].IsCurrentTeam)
}

func TestBuilder_Build_AssignsSequentialIDs(t *testing.T) {
	b := testBuilder()

	stints := b.Build(samplePlayers())

	require.Len(t, stints, 8)
	for i, s := range stints {
		assert.Equal(t, i+1, s.StintID)
		assert.GreaterOrEqual(t, s.DurationDays, 0)
	}

	boaster := Timeline(stints, "Boaster")
	require.Len(t, boaster, 2)
	assert.Equal(t, "S-Tier", boaster[0].Team)
	assert.Equal(t, 1, boaster[0].StintNumber)
	assert.Equal(t, "Fnatic", boaster[1].Team)
	assert.Equal(t, 2, boaster[1].StintNumber)

	assert.Empty(t, Timeline(stints, "Rookie"))
}

func TestBuilder_Build_IgnoresNilPlayers(t *testing.T) {
	b := testBuilder()
	stints := b.Build([]*player.Player{nil, {ID: "x", Career: []player.RawEntry{{DateRange: "2020-01-01", Team: "T"}}}})
	require.Len(t, stints, 1)
	assert.Equal(t, "x", stints[0].PlayerID)
}

func TestBuilder_Build_CopiesIdentity(t *testing.T) {
	b := testBuilder()
	stints := b.Build(samplePlayers()[:1])

	for _, s := range stints {
		assert.Equal(t, "Tyson Ngo", s.RealName)
		assert.Equal(t, "Canada", s.Country)
		assert.Equal(t, "Sentinels", s.CurrentTeam)
		assert.Equal(t, player.StatusActive, s.PlayerStatus)
	}
}

func TestBuilder_DurationNeverNegative(t *testing.T) {
	b := testBuilder()
	p := &player.Player{
		ID: "p1",
		Career: []player.RawEntry{
			{DateRange: "2021-05-05 — 2020-01-01", Team: "Backwards"},
			{DateRange: "2030-01-01 — Present", Team: "Future"},
			{DateRange: "2021-13-45 — 2022-01-01", Team: "Bad Month"},
		},
	}

	for _, s := range b.BuildPlayer(p, 1) {
		assert.Equal(t, 0, s.DurationDays, s.Team)
	}
}
