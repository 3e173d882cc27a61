package career

import (
	"sort"

	"github.com/pfrederiksen/careerdb/internal/normalize"
	"github.com/pfrederiksen/careerdb/internal/player"
)

// Stint is one player's assignment to one team over a time interval
type Stint struct {
	StintID       int              `json:"stint_id" csv:"stint_id"`
	PlayerID      string           `json:"player_id" csv:"player_id"`
	RealName      string           `json:"real_name" csv:"real_name"`
	Country       string           `json:"country" csv:"country"`
	CurrentTeam   string           `json:"current_team" csv:"current_team"`
	PlayerStatus  player.Status    `json:"player_status" csv:"player_status"`
	StintNumber   int              `json:"stint_number" csv:"stint_number"`
	Team          string           `json:"team" csv:"team"`
	DateStart     string           `json:"date_start" csv:"date_start"`
	DateEnd       string           `json:"date_end" csv:"date_end"`
	DateRange     string           `json:"date_range" csv:"date_range"`
	Status        normalize.Status `json:"stint_status" csv:"stint_status"`
	IsCurrentTeam bool             `json:"is_current_team" csv:"is_current_team"`
	DurationDays  int              `json:"duration_days" csv:"duration_days"`
	YearStart     int              `json:"year_start" csv:"year_start"`
	YearEnd       int              `json:"year_end" csv:"year_end"`
	Roles         string           `json:"roles,omitempty" csv:"roles"`
	PlayerURL     string           `json:"player_url,omitempty" csv:"player_url"`
}

// Transition is a move between two consecutive stints of the same player
type Transition struct {
	TransitionID     int              `json:"transition_id" csv:"transition_id"`
	PlayerID         string           `json:"player_id" csv:"player_id"`
	RealName         string           `json:"real_name" csv:"real_name"`
	Country          string           `json:"country" csv:"country"`
	FromTeam         string           `json:"from_team" csv:"from_team"`
	ToTeam           string           `json:"to_team" csv:"to_team"`
	FromStintStatus  normalize.Status `json:"from_stint_status" csv:"from_stint_status"`
	ToStintStatus    normalize.Status `json:"to_stint_status" csv:"to_stint_status"`
	TransitionDate   string           `json:"transition_date" csv:"transition_date"`
	TransitionYear   int              `json:"transition_year" csv:"transition_year"`
	FromDurationDays int              `json:"from_duration_days" csv:"from_duration_days"`
	StintNumber      int              `json:"stint_number" csv:"stint_number"`
}

// PlayerStatistics aggregates one player's stints
type PlayerStatistics struct {
	PlayerID                 string        `json:"player_id" csv:"player_id"`
	RealName                 string        `json:"real_name" csv:"real_name"`
	Country                  string        `json:"country" csv:"country"`
	CurrentTeam              string        `json:"current_team" csv:"current_team"`
	PlayerStatus             player.Status `json:"player_status" csv:"player_status"`
	TotalTeams               int           `json:"total_teams" csv:"total_teams"`
	UniqueTeams              int           `json:"unique_teams" csv:"unique_teams"`
	TeamsPlayedMultipleTimes int           `json:"teams_played_multiple_times" csv:"teams_played_multiple_times"`
	CareerStartDate          string        `json:"career_start_date" csv:"career_start_date"`
	CareerEndDate            string        `json:"career_end_date" csv:"career_end_date"`
	CareerStartYear          int           `json:"career_start_year" csv:"career_start_year"`
	CareerEndYear            int           `json:"career_end_year" csv:"career_end_year"`
	CareerSpanYears          int           `json:"career_span_years" csv:"career_span_years"`
	TotalCareerDays          int           `json:"total_career_days" csv:"total_career_days"`
	AvgStintDurationDays     float64       `json:"avg_stint_duration_days" csv:"avg_stint_duration_days"`
	IsActive                 bool          `json:"is_active" csv:"is_active"`
	HasCurrentTeam           bool          `json:"has_current_team" csv:"has_current_team"`
	InactiveStints           int           `json:"inactive_stints" csv:"inactive_stints"`
	LoanStints               int           `json:"loan_stints" csv:"loan_stints"`
	StandinStints            int           `json:"standin_stints" csv:"standin_stints"`
	Roles                    string        `json:"roles,omitempty" csv:"roles"`
	PlayerURL                string        `json:"player_url,omitempty" csv:"player_url"`
}

// Dataset holds the three relational views produced by one pipeline pass
type Dataset struct {
	Stints      []Stint            `json:"stints"`
	Transitions []Transition       `json:"transitions"`
	Stats       []PlayerStatistics `json:"player_stats"`
}

// playerGroup is one player's stints ordered by stint number
type playerGroup struct {
	playerID string
	stints   []Stint
}

// groupByPlayer builds the player → stints map in a single pass. Groups come
// back in order of first appearance, each stably sorted by stint number.
func groupByPlayer(stints []Stint) []playerGroup {
	index := make(map[string]int)
	groups := make([]playerGroup, 0)

	for _, s := range stints {
		i, ok := index[s.PlayerID]
		if !ok {
			i = len(groups)
			index[s.PlayerID] = i
			groups = append(groups, playerGroup{playerID: s.PlayerID})
		}
		groups[i].stints = append(groups[i].stints, s)
	}

	for i := range groups {
		g := groups[i].stints
		sort.SliceStable(g, func(a, b int) bool {
			return g[a].StintNumber < g[b].StintNumber
		})
	}

	return groups
}

// Timeline returns one player's stints ordered by stint number
func Timeline(stints []Stint, playerID string) []Stint {
	out := make([]Stint, 0)
	for _, s := range stints {
		if s.PlayerID == playerID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StintNumber < out[j].StintNumber
	})
	return out
}
