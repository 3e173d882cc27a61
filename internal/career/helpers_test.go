package career

import (
	"time"

	"github.com/pfrederiksen/careerdb/internal/logger"
	"github.com/pfrederiksen/careerdb/internal/player"
)

var fixedNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func testBuilder() *Builder {
	return &Builder{
		Now:     func() time.Time { return fixedNow },
		Log:     logger.Nop(),
		Metrics: logger.NewMetrics(),
	}
}

func testCleaner() *Cleaner {
	c := NewCleaner(nil)
	c.Log = logger.Nop()
	c.Metrics = logger.NewMetrics()
	return c
}

func samplePlayers() []*player.Player {
	return []*player.Player{
		{
			ID:          "TenZ",
			RealName:    "Tyson Ngo",
			Country:     "Canada",
			CurrentTeam: "Sentinels",
			Status:      player.StatusActive,
			Career: []player.RawEntry{
				{DateRange: "2020-04-13 — 2020-07-02", Team: "Cloud9 (Inactive)"},
				{DateRange: "2020-07-02 — 2021-05-01", Team: "Sentinels (Loan)"},
				{DateRange: "2021-05-01 — Present", Team: "Sentinels"},
			},
		},
		{
			ID:       "Boaster",
			RealName: "Jake Howlett",
			Country:  "United Kingdom",
			Status:   player.StatusActive,
			Career: []player.RawEntry{
				{DateRange: "History", Team: "Team"},
				{DateRange: "2020-02-01 — 2020-06-01", Team: "S-Tier"},
				{DateRange: "2020-06-01 — Present", Team: "Fnatic"},
			},
		},
		{
			ID:       "Retiree",
			RealName: "Old Timer",
			Country:  "Sweden",
			Status:   player.StatusRetired,
			Career: []player.RawEntry{
				{DateRange: "2019-01-01 — 2019-06-01", Team: "Team A"},
				{DateRange: "2019-06-01 — 2020-01-01", Team: "Team B (Stand-in)"},
				{DateRange: "2020-01-01 — 2021-01-01", Team: "Team A"},
			},
		},
		{
			ID:       "Rookie",
			RealName: "No History",
			Country:  "Brazil",
			Status:   player.StatusActive,
		},
	}
}
