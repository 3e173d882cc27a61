package player

import (
	"strings"
	"time"
)

// Status is the lifecycle status of a player as listed on the portal page
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusRetired  Status = "Retired"
)

// RawEntry is one scraped line of a player's career history
type RawEntry struct {
	DateRange string `json:"date_range"`
	Team      string `json:"team"`
}

// Player represents a scraped player profile
type Player struct {
	ID          string     `json:"player_id"`
	RealName    string     `json:"real_name"`
	Country     string     `json:"country"`
	CurrentTeam string     `json:"current_team"`
	Status      Status     `json:"status"`
	Roles       string     `json:"roles,omitempty"`
	BirthDate   string     `json:"birth_date,omitempty"`
	URL         string     `json:"player_url,omitempty"`
	Region      string     `json:"region,omitempty"`
	Career      []RawEntry `json:"career_history,omitempty"` // in scrape order, may be nil
}

// HasCurrentTeam reports whether the portal listed a team for the player
func (p *Player) HasCurrentTeam() bool {
	return strings.TrimSpace(p.CurrentTeam) != ""
}

// IsActive reports whether the player's lifecycle status is Active
func (p *Player) IsActive() bool {
	return p.Status == StatusActive
}

// ParseStatus maps free text to a Status. Unknown values default to Active,
// matching how the portal renders rows without a status colour.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inactive":
		return StatusInactive
	case "retired":
		return StatusRetired
	default:
		return StatusActive
	}
}

// Batch is one scrape run's worth of players
type Batch struct {
	Source    string    `json:"source,omitempty"`
	ScrapedAt time.Time `json:"scraped_at"`
	Players   []*Player `json:"players"`
}

// NewBatch creates a batch stamped with the current time
func NewBatch(source string, players []*Player) *Batch {
	if players == nil {
		players = make([]*Player, 0)
	}
	return &Batch{
		Source:    source,
		ScrapedAt: time.Now().UTC(),
		Players:   players,
	}
}

// IDs returns the player IDs of the batch in order, skipping nil entries
func (b *Batch) IDs() []string {
	ids := make([]string, 0, len(b.Players))
	for _, p := range b.Players {
		if p != nil {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
