package career

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/careerdb/internal/normalize"
	"github.com/pfrederiksen/careerdb/internal/player"
)

// derived is the per-player output of the fold
type derived struct {
	transitions []Transition
	stats       PlayerStatistics
}

// Derive computes transitions and player statistics from a stint collection.
// The returned Dataset carries a copy of the input stints. Running Derive on
// the same input always produces identical output.
func Derive(stints []Stint) Dataset {
	groups := groupByPlayer(stints)
	parts := make([]derived, len(groups))
	for i, g := range groups {
		parts[i] = deriveGroup(g)
	}
	return assemble(stints, parts)
}

// DeriveParallel is Derive with player groups spread over workers.
// Groups are disjoint, and results are concatenated in group order, so the
// output matches Derive exactly.
func DeriveParallel(ctx context.Context, stints []Stint, workers int) (Dataset, error) {
	if workers <= 1 {
		return Derive(stints), nil
	}

	groups := groupByPlayer(stints)
	parts := make([]derived, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, chunk := range chunkRanges(len(groups), workers) {
		lo, hi := chunk[0], chunk[1]
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return eris.Wrap(err, "career: derive cancelled")
				}
				parts[i] = deriveGroup(groups[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Dataset{}, err
	}
	return assemble(stints, parts), nil
}

// chunkRanges splits n items into at most k contiguous [lo, hi) ranges
func chunkRanges(n, k int) [][2]int {
	if n == 0 {
		return nil
	}
	if k > n {
		k = n
	}
	size := (n + k - 1) / k
	ranges := make([][2]int, 0, k)
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		ranges = append(ranges, [2]int{lo, hi})
	}
	return ranges
}

func assemble(stints []Stint, parts []derived) Dataset {
	ds := Dataset{
		Stints:      append(make([]Stint, 0, len(stints)), stints...),
		Transitions: make([]Transition, 0),
		Stats:       make([]PlayerStatistics, 0, len(parts)),
	}

	for _, p := range parts {
		for _, t := range p.transitions {
			t.TransitionID = len(ds.Transitions) + 1
			ds.Transitions = append(ds.Transitions, t)
		}
		ds.Stats = append(ds.Stats, p.stats)
	}

	return ds
}

func deriveGroup(g playerGroup) derived {
	return derived{
		transitions: transitionsFor(g),
		stats:       statsFor(g),
	}
}

// transitionsFor pairs each stint with the next one by position, so a gap in
// stint numbers left by filtering does not break the chain
func transitionsFor(g playerGroup) []Transition {
	if len(g.stints) < 2 {
		return nil
	}

	out := make([]Transition, 0, len(g.stints)-1)
	for i := 0; i < len(g.stints)-1; i++ {
		cur, next := g.stints[i], g.stints[i+1]
		out = append(out, Transition{
			PlayerID:         g.playerID,
			RealName:         cur.RealName,
			Country:          cur.Country,
			FromTeam:         cur.Team,
			ToTeam:           next.Team,
			FromStintStatus:  cur.Status,
			ToStintStatus:    next.Status,
			TransitionDate:   next.DateStart,
			TransitionYear:   next.YearStart,
			FromDurationDays: cur.DurationDays,
			StintNumber:      cur.StintNumber,
		})
	}
	return out
}

// statsFor folds one non-empty player group into its statistics row
func statsFor(g playerGroup) PlayerStatistics {
	first := g.stints[0]
	st := PlayerStatistics{
		PlayerID:       g.playerID,
		RealName:       first.RealName,
		Country:        first.Country,
		CurrentTeam:    first.CurrentTeam,
		PlayerStatus:   first.PlayerStatus,
		TotalTeams:     len(g.stints),
		IsActive:       first.PlayerStatus == player.StatusActive,
		HasCurrentTeam: strings.TrimSpace(first.CurrentTeam) != "",
		Roles:          first.Roles,
		PlayerURL:      first.PlayerURL,
	}

	teams := make(map[string]struct{}, len(g.stints))
	for _, s := range g.stints {
		teams[s.Team] = struct{}{}

		if s.DateStart != "" && (st.CareerStartDate == "" || s.DateStart < st.CareerStartDate) {
			st.CareerStartDate = s.DateStart
		}
		if s.DateEnd != "" && s.DateEnd > st.CareerEndDate {
			st.CareerEndDate = s.DateEnd
		}

		if s.YearStart > 0 && (st.CareerStartYear == 0 || s.YearStart < st.CareerStartYear) {
			st.CareerStartYear = s.YearStart
		}
		if s.YearEnd > st.CareerEndYear {
			st.CareerEndYear = s.YearEnd
		}

		st.TotalCareerDays += s.DurationDays

		switch s.Status {
		case normalize.StatusInactive:
			st.InactiveStints++
		case normalize.StatusLoan:
			st.LoanStints++
		case normalize.StatusStandIn:
			st.StandinStints++
		}
	}

	st.UniqueTeams = len(teams)
	st.TeamsPlayedMultipleTimes = st.TotalTeams - st.UniqueTeams
	if st.CareerStartYear > 0 && st.CareerEndYear > st.CareerStartYear {
		st.CareerSpanYears = st.CareerEndYear - st.CareerStartYear
	}
	st.AvgStintDurationDays = float64(st.TotalCareerDays) / float64(st.TotalTeams)

	return st
}
