package tier

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/careerdb/internal/career"
	"github.com/pfrederiksen/careerdb/internal/normalize"
	"github.com/pfrederiksen/careerdb/internal/player"
)

// DefaultTeams returns the international league partners, former top-flight
// organisations and their common abbreviations
func DefaultTeams() []string {
	return []string{
		// Americas
		"Sentinels", "Cloud9", "100 Thieves", "Evil Geniuses", "NRG", "FURIA",
		"LOUD", "Leviatán", "KRÜ Esports", "MIBR", "G2 Esports", "Envy", "Team Envy",

		// EMEA
		"Fnatic", "Team Liquid", "NAVI", "Team Vitality", "Giants Gaming", "GIANTX",
		"Karmine Corp", "KOI", "BBL Esports", "FUT Esports", "Gentle Mates",
		"PCIFIC Esports", "Team Heretics", "Heretics",

		// Pacific
		"Paper Rex", "DRX", "T1", "Gen.G", "Global Esports", "Team Secret",
		"Talon Esports", "Rex Regum Qeon", "ZETA DIVISION", "DetonatioN FocusMe",
		"BOOM Esports", "Nongshim RedForce", "Nongshim", "NS RedForce",

		// China
		"EDward Gaming", "FunPlus Phoenix", "Attacking Soul Esports", "Bilibili Gaming",
		"JD Gaming", "Trace Esports", "Dragon Ranger Gaming", "Nova Esports",

		// Former
		"OpTic Gaming", "The Guard", "XSET", "FPX", "M3 Champions", "Acend",
		"Gambit Esports", "Guild Esports",

		// Abbreviations
		"NRG Esports", "FNC", "TL", "VIT", "PRX", "EDG", "BLG", "TE", "TEC", "KC",
		"GIA", "GIA Gaming", "G2", "TH", "BOOM", "NS", "ENVY", "NV",
	}
}

// Matcher tells tier-1 teams from the rest
type Matcher struct {
	exact map[string]struct{}
	names []string
}

// New creates a Matcher for the given allowlist. Blank names are ignored and
// duplicates collapse case-insensitively.
func New(teams []string) *Matcher {
	m := &Matcher{exact: make(map[string]struct{}, len(teams))}
	for _, t := range teams {
		key := fold(t)
		if key == "" {
			continue
		}
		if _, ok := m.exact[key]; ok {
			continue
		}
		m.exact[key] = struct{}{}
		m.names = append(m.names, key)
	}
	sort.Strings(m.names)
	return m
}

// Default returns a Matcher for DefaultTeams
func Default() *Matcher {
	return New(DefaultTeams())
}

// Len returns the number of distinct allowlist entries
func (m *Matcher) Len() int {
	return len(m.names)
}

// IsTier1 reports whether team is on the allowlist. An empty name never matches.
func (m *Matcher) IsTier1(team string) bool {
	key := fold(team)
	if key == "" {
		return false
	}

	if _, ok := m.exact[key]; ok {
		return true
	}

	for _, name := range m.names {
		if strings.Contains(key, name) || strings.Contains(name, key) {
			return true
		}
	}
	return false
}

// Result is a player with tier-1 experience
type Result struct {
	Player *player.Player `json:"player"`

	// Teams lists distinct tier-1 team names in the order first seen:
	// current team, then career history. History labels are cleaned of
	// status suffixes such as "(Loan)".
	Teams []string `json:"tier_1_teams"`
}

// Count returns the number of distinct tier-1 teams
func (r Result) Count() int {
	return len(r.Teams)
}

// Filter keeps players whose current team or any career entry is tier-1.
// Player order is preserved.
func (m *Matcher) Filter(players []*player.Player) []Result {
	results := make([]Result, 0)

	for _, p := range players {
		if p == nil {
			continue
		}

		seen := make(map[string]struct{})
		var teams []string
		add := func(team string) {
			if !m.IsTier1(team) {
				return
			}
			if _, ok := seen[team]; ok {
				return
			}
			seen[team] = struct{}{}
			teams = append(teams, team)
		}

		add(p.CurrentTeam)
		for _, entry := range p.Career {
			add(normalize.CleanTeam(entry.Team))
		}

		if len(teams) > 0 {
			results = append(results, Result{Player: p, Teams: teams})
		}
	}

	return results
}

// Row is a stint of a tier-1 player flagged by whether that stint's team is
// itself tier-1
type Row struct {
	career.Stint
	IsTier1         bool `json:"is_tier_1" csv:"is_tier_1"`
	Tier1TeamsCount int  `json:"tier_1_teams_count" csv:"tier_1_teams_count"`
}

// Expand returns one row per stint belonging to a player in results, in stint
// order. Stints of other players are dropped.
func (m *Matcher) Expand(stints []career.Stint, results []Result) []Row {
	counts := make(map[string]int, len(results))
	for _, r := range results {
		counts[r.Player.ID] = r.Count()
	}

	rows := make([]Row, 0)
	for _, s := range stints {
		n, ok := counts[s.PlayerID]
		if !ok {
			continue
		}
		rows = append(rows, Row{
			Stint:           s,
			IsTier1:         m.IsTier1(s.Team),
			Tier1TeamsCount: n,
		})
	}
	return rows
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
