package career

import "sort"

// Count is a labelled tally
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Summary describes a dataset at a glance
type Summary struct {
	Stints       int     `json:"stints"`
	Transitions  int     `json:"transitions"`
	Players      int     `json:"players"`
	Active       int     `json:"active_players"`
	WithTeam     int     `json:"players_with_team"`
	FreeAgents   int     `json:"free_agents"`
	AvgTeams     float64 `json:"avg_teams_per_player"`
	MaxTeams     int     `json:"max_teams"`
	AvgSpanYears float64 `json:"avg_career_span_years"`
	MaxSpanYears int     `json:"max_career_span_years"`
	EarliestYear int     `json:"earliest_career_start"`
	LatestYear   int     `json:"latest_activity"`
	TopCountries []Count `json:"top_countries"`
	TopTeams     []Count `json:"top_teams"`
	StintTypes   []Count `json:"stint_types"`
}

// Summarize tallies a dataset. topN bounds the country and team lists; zero or
// less means no bound.
func Summarize(ds Dataset, topN int) Summary {
	sum := Summary{
		Stints:      len(ds.Stints),
		Transitions: len(ds.Transitions),
		Players:     len(ds.Stats),
	}

	countries := make(map[string]int)
	var totalTeams, totalSpan int
	for _, st := range ds.Stats {
		if st.IsActive {
			sum.Active++
			if !st.HasCurrentTeam {
				sum.FreeAgents++
			}
		}
		if st.HasCurrentTeam {
			sum.WithTeam++
		}
		if st.Country != "" {
			countries[st.Country]++
		}

		totalTeams += st.TotalTeams
		totalSpan += st.CareerSpanYears
		if st.TotalTeams > sum.MaxTeams {
			sum.MaxTeams = st.TotalTeams
		}
		if st.CareerSpanYears > sum.MaxSpanYears {
			sum.MaxSpanYears = st.CareerSpanYears
		}
		if st.CareerStartYear > 0 && (sum.EarliestYear == 0 || st.CareerStartYear < sum.EarliestYear) {
			sum.EarliestYear = st.CareerStartYear
		}
		if st.CareerEndYear > sum.LatestYear {
			sum.LatestYear = st.CareerEndYear
		}
	}
	if sum.Players > 0 {
		sum.AvgTeams = float64(totalTeams) / float64(sum.Players)
		sum.AvgSpanYears = float64(totalSpan) / float64(sum.Players)
	}

	teams := make(map[string]int)
	types := make(map[string]int)
	for _, s := range ds.Stints {
		teams[s.Team]++
		types[string(s.Status)]++
	}

	sum.TopCountries = topCounts(countries, topN)
	sum.TopTeams = topCounts(teams, topN)
	sum.StintTypes = topCounts(types, 0)

	return sum
}

// topCounts orders tallies by count descending, then name
func topCounts(m map[string]int, n int) []Count {
	out := make([]Count, 0, len(m))
	for name, c := range m {
		out = append(out, Count{Name: name, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
