package career

import (
	"github.com/pfrederiksen/careerdb/internal/logger"
	"github.com/pfrederiksen/careerdb/internal/noise"
)

// Cleaner removes noise-labelled stints and rebuilds the dataset around them.
// The zero value uses the default noise vocabulary.
type Cleaner struct {
	Classifier *noise.Classifier
	Log        *logger.Logger
	Metrics    *logger.Metrics
}

// CleanReport summarizes what a clean pass removed
type CleanReport struct {
	StintsBefore      int            `json:"stints_before"`
	StintsRemoved     int            `json:"stints_removed"`
	TransitionsBefore int            `json:"transitions_before"`
	TransitionsAfter  int            `json:"transitions_after"`
	PlayersBefore     int            `json:"players_before"`
	PlayersAfter      int            `json:"players_after"`
	RemovedTeams      map[string]int `json:"removed_teams,omitempty"`
}

// NewCleaner creates a Cleaner. A nil classifier uses the default vocabulary.
func NewCleaner(c *noise.Classifier) *Cleaner {
	if c == nil {
		c = noise.Default()
	}
	return &Cleaner{Classifier: c}
}

// Clean drops stints whose team is noise, renumbers each player's surviving
// stints from 1 and recomputes transitions and statistics from the result.
// prior is only consulted for identity fields (name, country, current team,
// lifecycle status), which are never derived from noisy rows.
func (c *Cleaner) Clean(stints []Stint, prior []PlayerStatistics) (Dataset, CleanReport) {
	report := CleanReport{
		StintsBefore:  len(stints),
		PlayersBefore: len(groupByPlayer(stints)),
		RemovedTeams:  make(map[string]int),
	}

	kept := make([]Stint, 0, len(stints))
	for _, s := range stints {
		if c.classifier().IsNoise(s.Team) {
			report.RemovedTeams[s.Team]++
			report.StintsRemoved++
			continue
		}
		kept = append(kept, s)
	}

	resequenced := make([]Stint, 0, len(kept))
	for _, g := range groupByPlayer(kept) {
		for i, s := range g.stints {
			s.StintNumber = i + 1
			resequenced = append(resequenced, s)
		}
	}

	ds := Derive(resequenced)
	ds.Stats = withIdentity(ds.Stats, prior)

	report.TransitionsAfter = len(ds.Transitions)
	report.PlayersAfter = len(ds.Stats)

	c.addCounter("stints.noise", int64(report.StintsRemoved))
	c.log().Info("Cleaned career dataset", logger.Fields{
		"stints_removed": report.StintsRemoved,
		"stints_kept":    len(ds.Stints),
		"transitions":    report.TransitionsAfter,
		"players":        report.PlayersAfter,
	})

	return ds, report
}

// CleanDataset cleans a previously derived dataset
func (c *Cleaner) CleanDataset(ds Dataset) (Dataset, CleanReport) {
	cleaned, report := c.Clean(ds.Stints, ds.Stats)
	report.TransitionsBefore = len(ds.Transitions)
	return cleaned, report
}

// withIdentity copies identity fields from prior rows onto recomputed ones
func withIdentity(stats, prior []PlayerStatistics) []PlayerStatistics {
	if len(prior) == 0 {
		return stats
	}

	byID := make(map[string]PlayerStatistics, len(prior))
	for _, p := range prior {
		if _, ok := byID[p.PlayerID]; !ok {
			byID[p.PlayerID] = p
		}
	}

	out := make([]PlayerStatistics, len(stats))
	for i, st := range stats {
		if p, ok := byID[st.PlayerID]; ok {
			st.RealName = p.RealName
			st.Country = p.Country
			st.CurrentTeam = p.CurrentTeam
			st.PlayerStatus = p.PlayerStatus
			st.IsActive = p.IsActive
			st.HasCurrentTeam = p.HasCurrentTeam
			st.Roles = p.Roles
			st.PlayerURL = p.PlayerURL
		}
		out[i] = st
	}
	return out
}

func (c *Cleaner) classifier() *noise.Classifier {
	if c.Classifier == nil {
		return noise.Default()
	}
	return c.Classifier
}

func (c *Cleaner) log() *logger.Logger {
	if c.Log == nil {
		return logger.Default()
	}
	return c.Log
}

func (c *Cleaner) addCounter(name string, delta int64) {
	if c.Metrics == nil {
		logger.AddCounter(name, delta)
		return
	}
	c.Metrics.AddCounter(name, delta)
}
