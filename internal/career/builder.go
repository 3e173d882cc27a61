package career

import (
	"time"

	"github.com/pfrederiksen/careerdb/internal/logger"
	"github.com/pfrederiksen/careerdb/internal/normalize"
	"github.com/pfrederiksen/careerdb/internal/player"
)

// Builder turns raw player histories into stints
type Builder struct {
	// Now resolves open-ended stints. Defaults to time.Now.
	Now func() time.Time

	Log     *logger.Logger
	Metrics *logger.Metrics
}

// NewBuilder creates a Builder that uses the wall clock and the default logger
func NewBuilder() *Builder {
	return &Builder{Now: time.Now}
}

// Build converts every player's history. Stint IDs are assigned sequentially
// from 1 across the whole collection, in player order.
func (b *Builder) Build(players []*player.Player) []Stint {
	stints := make([]Stint, 0, len(players)*4)
	nextID := 1

	for _, p := range players {
		if p == nil {
			continue
		}
		built := b.BuildPlayer(p, nextID)
		nextID += len(built)
		stints = append(stints, built...)
	}

	b.log().Info("Built career stints", logger.Fields{
		"players": len(players),
		"stints":  len(stints),
	})
	return stints
}

// BuildPlayer converts one player's history, numbering stint IDs from firstID.
// Entries whose date range has no year are skipped without consuming a stint
// number. A player without history yields an empty slice.
func (b *Builder) BuildPlayer(p *player.Player, firstID int) []Stint {
	stints := make([]Stint, 0, len(p.Career))
	now := b.now()

	for i, entry := range p.Career {
		frag, ok := normalize.Parse(entry.DateRange, entry.Team)
		if !ok {
			b.log().Debug("Skipping career entry without a year", logger.Fields{
				"player_id":  p.ID,
				"index":      i,
				"date_range": entry.DateRange,
				"team":       entry.Team,
			})
			b.incr("stints.skipped")
			continue
		}

		stints = append(stints, newStint(p, frag, firstID+len(stints), len(stints)+1, now))
		b.incr("stints.built")
	}

	return stints
}

func newStint(p *player.Player, frag normalize.Fragment, id, number int, now time.Time) Stint {
	yearEnd := normalize.Year(frag.DateEnd)
	if frag.DateEnd == "" || frag.IsOngoing() {
		yearEnd = now.Year()
	}

	return Stint{
		StintID:       id,
		PlayerID:      p.ID,
		RealName:      p.RealName,
		Country:       p.Country,
		CurrentTeam:   p.CurrentTeam,
		PlayerStatus:  p.Status,
		StintNumber:   number,
		Team:          frag.Team,
		DateStart:     frag.DateStart,
		DateEnd:       frag.DateEnd,
		DateRange:     frag.DateRange,
		Status:        frag.Status,
		IsCurrentTeam: frag.IsOngoing(),
		DurationDays:  normalize.DaysBetween(frag.DateStart, frag.DateEnd, now),
		YearStart:     normalize.Year(frag.DateStart),
		YearEnd:       yearEnd,
		Roles:         p.Roles,
		PlayerURL:     p.URL,
	}
}

func (b *Builder) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

func (b *Builder) log() *logger.Logger {
	if b.Log == nil {
		return logger.Default()
	}
	return b.Log
}

func (b *Builder) incr(name string) {
	if b.Metrics == nil {
		logger.IncrCounter(name)
		return
	}
	b.Metrics.IncrCounter(name)
}
