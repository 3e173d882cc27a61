package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/careerdb/internal/career"
	"github.com/pfrederiksen/careerdb/internal/normalize"
	"github.com/pfrederiksen/careerdb/internal/player"
	"github.com/pfrederiksen/careerdb/internal/store"
)

func TestWriteOutput_Formats(t *testing.T) {
	result := &MergeResult{Output: "all", Inputs: []string{"a", "b"}, Players: 3, Duplicates: []string{"x"}}

	var text bytes.Buffer
	require.NoError(t, WriteOutput(&text, result, FormatText, true))
	assert.Contains(t, text.String(), `Merged 2 batches into "all"`)
	assert.Contains(t, text.String(), "Duplicates removed: 1")
	assert.Contains(t, text.String(), "  x\n")

	var js bytes.Buffer
	require.NoError(t, WriteOutput(&js, result, FormatJSON, false))
	var decoded MergeResult
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, *result, decoded)

	assert.Error(t, WriteOutput(&js, result, OutputFormat("xml"), false))
}

func TestBuildResult_Text(t *testing.T) {
	summary := career.Summary{Stints: 2, Players: 1, TopTeams: []career.Count{{Name: "Fnatic", Count: 1}}}
	result := &BuildResult{
		Dataset:     "default",
		Stints:      2,
		Transitions: 1,
		Players:     1,
		Clean: &career.CleanReport{
			StintsBefore:  3,
			StintsRemoved: 1,
			RemovedTeams:  map[string]int{"S-Tier": 1},
		},
		Files:   []string{"out/career_stints.csv"},
		RunID:   "run-1",
		Summary: &summary,
	}

	var quiet bytes.Buffer
	require.NoError(t, result.writeText(&quiet, false))
	out := quiet.String()
	assert.Contains(t, out, "Career stints:     2")
	assert.Contains(t, out, "Cleaning removed 1 of 3 stints")
	assert.Contains(t, out, "out/career_stints.csv")
	assert.Contains(t, out, "Stored as run run-1")
	assert.NotContains(t, out, "S-Tier")
	assert.NotContains(t, out, "Top teams")

	var verbose bytes.Buffer
	require.NoError(t, result.writeText(&verbose, true))
	assert.Contains(t, verbose.String(), "S-Tier")
	assert.Contains(t, verbose.String(), "Top teams:")
	assert.Contains(t, verbose.String(), "1. Fnatic: 1")
}

func TestSummaryResult_Text(t *testing.T) {
	result := &SummaryResult{
		Summary: career.Summary{
			Stints: 8, Transitions: 5, Players: 3, Active: 2,
			EarliestYear: 2018, LatestYear: 2025,
			TopCountries: []career.Count{{Name: "Canada", Count: 2}},
		},
		Players: []career.PlayerStatistics{
			{PlayerID: "TenZ", Country: "Canada", TotalTeams: 3, UniqueTeams: 2, CareerSpanYears: 5, CurrentTeam: "Sentinels"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, result.writeText(&buf, false))
	out := buf.String()
	assert.Contains(t, out, "Stints: 8  Transitions: 5  Players: 3")
	assert.Contains(t, out, "Years covered: 2018 - 2025")
	assert.Contains(t, out, "Top countries:")
	assert.Contains(t, out, "PLAYER")
	assert.Contains(t, out, "TenZ")
	assert.NotContains(t, out, "Stint types")
}

func TestSummaryResult_Timeline(t *testing.T) {
	result := &SummaryResult{
		Player: "TenZ",
		Timeline: []career.Stint{
			{StintNumber: 1, DateRange: "2020-04-13 — 2020-07-02", Team: "Cloud9 (Inactive)", Status: normalize.StatusInactive, DurationDays: 80},
			{StintNumber: 2, DateRange: "2021-05-01 — Present", Team: "Sentinels", Status: normalize.StatusActive},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, result.writeText(&buf, false))
	out := buf.String()
	assert.Contains(t, out, "Career of TenZ:")
	assert.Contains(t, out, "(Inactive)")
	assert.Contains(t, out, "80 days")
	assert.NotContains(t, out, "(Active)")

	buf.Reset()
	empty := &SummaryResult{Player: "nobody"}
	require.NoError(t, empty.writeText(&buf, false))
	assert.Equal(t, "No stints found for nobody.\n", buf.String())
}

func TestTier1Result_Text(t *testing.T) {
	result := &Tier1Result{
		Players: 4,
		Tier1: []Tier1Player{
			{PlayerID: "Alpha", Country: "Sweden", Teams: []string{"Fnatic", "Team Liquid"}, Count: 2},
		},
		TopTeams: []career.Count{{Name: "Fnatic", Count: 1}},
		Files:    []string{"career_tier1_players.csv"},
	}

	var buf bytes.Buffer
	require.NoError(t, result.writeText(&buf, true))
	out := buf.String()
	assert.Contains(t, out, "Found 1 players with tier-1 experience (25.0% of 4)")
	assert.Contains(t, out, "Fnatic, Team Liquid")
	assert.Contains(t, out, "Most common tier-1 teams:")
	assert.Contains(t, out, "Saved to: career_tier1_players.csv")

	buf.Reset()
	require.NoError(t, (&Tier1Result{}).writeText(&buf, false))
	assert.Contains(t, buf.String(), "Found 0 players")
}

func TestExtractResult_Text(t *testing.T) {
	result := &ExtractResult{Source: "pages", Batch: "default", Players: 1, WithHistory: 1, Missing: []string{"Beta"}}

	var buf bytes.Buffer
	require.NoError(t, result.writeText(&buf, false))
	assert.Contains(t, buf.String(), "Missing player pages: 1")
	assert.NotContains(t, buf.String(), "Beta")

	buf.Reset()
	require.NoError(t, result.writeText(&buf, true))
	assert.Contains(t, buf.String(), "  Beta\n")
}

func TestRunsResult_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&RunsResult{}).writeText(&buf, false))
	assert.Equal(t, "No stored runs found.\n", buf.String())

	buf.Reset()
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	result := &RunsResult{Runs: []store.Run{{ID: "abc", Label: "build default", Stints: 8, CreatedAt: created}}}
	require.NoError(t, result.writeText(&buf, false))
	assert.Contains(t, buf.String(), "abc")
	assert.Contains(t, buf.String(), "2025-03-01T12:00:00Z")
}

func TestSummaryResult_Profile(t *testing.T) {
	retired := newPlayerProfile(&player.Player{
		ID: "Boaster", RealName: "Jake Howlett", Country: "United Kingdom",
		Status: player.StatusRetired, CurrentTeam: " ",
	})
	assert.False(t, retired.IsActive)
	assert.False(t, retired.HasCurrentTeam)

	result := &SummaryResult{
		Player:   "Boaster",
		Profile:  retired,
		Timeline: []career.Stint{{StintNumber: 1, DateRange: "2019 — Present", Team: "Fnatic"}},
	}

	var buf bytes.Buffer
	require.NoError(t, result.writeText(&buf, false))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Boaster (Jake Howlett)\n"))
	assert.Contains(t, out, "From:   United Kingdom\n")
	assert.Contains(t, out, "Team:   none\n")
	assert.Contains(t, out, "Status: Retired\n")
	assert.Contains(t, out, "Career of Boaster:")
}

func TestBatchesResult_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&BatchesResult{DataDir: "/data"}).writeText(&buf, false))
	assert.Equal(t, "Data directory: /data\nNo stored batches found.\n", buf.String())

	scraped := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	result := &BatchesResult{
		DataDir: "/data",
		Batches: []BatchInfo{{Name: "default", Source: "portal", ScrapedAt: scraped, Players: 2, IDs: []string{"Alpha", "Beta"}}},
	}

	buf.Reset()
	require.NoError(t, result.writeText(&buf, false))
	assert.Contains(t, buf.String(), "2025-03-01T12:00:00Z")
	assert.NotContains(t, buf.String(), "  Alpha")

	buf.Reset()
	require.NoError(t, result.writeText(&buf, true))
	assert.Contains(t, buf.String(), "default:\n  Alpha\n  Beta\n")
}
