package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"

	"github.com/pfrederiksen/careerdb/internal/career"
	"github.com/pfrederiksen/careerdb/internal/normalize"
	"github.com/pfrederiksen/careerdb/internal/player"
	"github.com/pfrederiksen/careerdb/internal/store"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// textRenderer is implemented by every command result
type textRenderer interface {
	writeText(w io.Writer, verbose bool) error
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result textRenderer, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return result.writeText(w, verbose)
	default:
		return eris.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// ExtractResult reports an extract run
type ExtractResult struct {
	ExtractedAt time.Time `json:"extracted_at"`
	Source      string    `json:"source"`
	Batch       string    `json:"batch"`
	Players     int       `json:"players"`
	WithHistory int       `json:"with_history"`
	Missing     []string  `json:"missing_pages,omitempty"`
}

func (r *ExtractResult) writeText(w io.Writer, verbose bool) error {
	fmt.Fprintf(w, "Extracted %d players from %s into batch %q\n", r.Players, r.Source, r.Batch)
	if r.WithHistory > 0 {
		fmt.Fprintf(w, "Players with career history: %d\n", r.WithHistory)
	}
	if len(r.Missing) > 0 {
		fmt.Fprintf(w, "Missing player pages: %d\n", len(r.Missing))
		if verbose {
			for _, id := range r.Missing {
				fmt.Fprintf(w, "  %s\n", id)
			}
		}
	}
	return nil
}

// MergeResult reports a merge of batches
type MergeResult struct {
	Output     string   `json:"output"`
	Inputs     []string `json:"inputs"`
	Players    int      `json:"players"`
	Duplicates []string `json:"duplicates"`
}

func (r *MergeResult) writeText(w io.Writer, verbose bool) error {
	fmt.Fprintf(w, "Merged %d batches into %q\n", len(r.Inputs), r.Output)
	fmt.Fprintf(w, "Players: %d\n", r.Players)
	fmt.Fprintf(w, "Duplicates removed: %d\n", len(r.Duplicates))
	if verbose {
		for _, id := range r.Duplicates {
			fmt.Fprintf(w, "  %s\n", id)
		}
	}
	return nil
}

// BuildResult reports a build or clean run
type BuildResult struct {
	BuiltAt     time.Time           `json:"built_at"`
	Batch       string              `json:"batch,omitempty"`
	Dataset     string              `json:"dataset"`
	Stints      int                 `json:"stints"`
	Transitions int                 `json:"transitions"`
	Players     int                 `json:"players"`
	Clean       *career.CleanReport `json:"clean,omitempty"`
	Files       []string            `json:"files,omitempty"`
	RunID       string              `json:"run_id,omitempty"`
	Summary     *career.Summary     `json:"summary,omitempty"`
}

func (r *BuildResult) writeText(w io.Writer, verbose bool) error {
	fmt.Fprintf(w, "Dataset %q\n", r.Dataset)
	fmt.Fprintf(w, "  Career stints:     %d\n", r.Stints)
	fmt.Fprintf(w, "  Team transitions:  %d\n", r.Transitions)
	fmt.Fprintf(w, "  Player statistics: %d\n", r.Players)

	if r.Clean != nil {
		fmt.Fprintf(w, "\nCleaning removed %d of %d stints\n", r.Clean.StintsRemoved, r.Clean.StintsBefore)
		if verbose && len(r.Clean.RemovedTeams) > 0 {
			for _, c := range sortedCounts(r.Clean.RemovedTeams) {
				fmt.Fprintf(w, "  %-24s %d\n", c.Name, c.Count)
			}
		}
	}

	if len(r.Files) > 0 {
		fmt.Fprintln(w, "\nFiles written:")
		for _, f := range r.Files {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}
	if r.RunID != "" {
		fmt.Fprintf(w, "\nStored as run %s\n", r.RunID)
	}

	if r.Summary != nil && verbose {
		fmt.Fprintln(w)
		return writeSummaryText(w, r.Summary)
	}
	return nil
}

// SummaryResult reports on a stored dataset
type SummaryResult struct {
	Dataset  string                    `json:"dataset"`
	Summary  career.Summary            `json:"summary"`
	Players  []career.PlayerStatistics `json:"players,omitempty"`
	Player   string                    `json:"player,omitempty"`
	Profile  *PlayerProfile            `json:"profile,omitempty"`
	Timeline []career.Stint            `json:"timeline,omitempty"`
}

// PlayerProfile is the identity of a player as stored in a batch
type PlayerProfile struct {
	PlayerID       string        `json:"player_id"`
	RealName       string        `json:"real_name,omitempty"`
	Country        string        `json:"country,omitempty"`
	Region         string        `json:"region,omitempty"`
	CurrentTeam    string        `json:"current_team,omitempty"`
	Status         player.Status `json:"status"`
	Roles          string        `json:"roles,omitempty"`
	IsActive       bool          `json:"is_active"`
	HasCurrentTeam bool          `json:"has_current_team"`
}

func newPlayerProfile(p *player.Player) *PlayerProfile {
	return &PlayerProfile{
		PlayerID:       p.ID,
		RealName:       p.RealName,
		Country:        p.Country,
		Region:         p.Region,
		CurrentTeam:    p.CurrentTeam,
		Status:         p.Status,
		Roles:          p.Roles,
		IsActive:       p.IsActive(),
		HasCurrentTeam: p.HasCurrentTeam(),
	}
}

func (r *SummaryResult) writeText(w io.Writer, verbose bool) error {
	if r.Player != "" {
		if r.Profile != nil {
			writeProfileText(w, r.Profile)
		}
		return writeTimelineText(w, r.Player, r.Timeline)
	}

	if err := writeSummaryText(w, &r.Summary); err != nil {
		return err
	}

	if len(r.Players) > 0 {
		fmt.Fprintln(w)
		return writeStatsText(w, r.Players)
	}
	return nil
}

func writeSummaryText(w io.Writer, s *career.Summary) error {
	fmt.Fprintf(w, "Stints: %d  Transitions: %d  Players: %d\n", s.Stints, s.Transitions, s.Players)
	fmt.Fprintf(w, "Active: %d  With team: %d  Free agents: %d\n", s.Active, s.WithTeam, s.FreeAgents)
	fmt.Fprintf(w, "Teams per player: avg %.1f, max %d\n", s.AvgTeams, s.MaxTeams)
	fmt.Fprintf(w, "Career span (years): avg %.1f, max %d\n", s.AvgSpanYears, s.MaxSpanYears)
	if s.EarliestYear > 0 {
		fmt.Fprintf(w, "Years covered: %d - %d\n", s.EarliestYear, s.LatestYear)
	}

	writeCounts(w, "Top countries", s.TopCountries)
	writeCounts(w, "Top teams", s.TopTeams)
	writeCounts(w, "Stint types", s.StintTypes)
	return nil
}

func writeCounts(w io.Writer, title string, counts []career.Count) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for i, c := range counts {
		fmt.Fprintf(w, "  %2d. %s: %d\n", i+1, c.Name, c.Count)
	}
}

func writeStatsText(w io.Writer, stats []career.PlayerStatistics) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER\tCOUNTRY\tTEAMS\tUNIQUE\tSPAN\tCURRENT TEAM")
	for _, st := range stats {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n",
			st.PlayerID, st.Country, st.TotalTeams, st.UniqueTeams, st.CareerSpanYears, st.CurrentTeam)
	}
	return tw.Flush()
}

func writeProfileText(w io.Writer, p *PlayerProfile) {
	name := p.PlayerID
	if p.RealName != "" {
		name += " (" + p.RealName + ")"
	}
	fmt.Fprintln(w, name)

	if p.Country != "" {
		location := p.Country
		if p.Region != "" {
			location += ", " + p.Region
		}
		fmt.Fprintf(w, "  From:   %s\n", location)
	}
	if p.HasCurrentTeam {
		fmt.Fprintf(w, "  Team:   %s\n", p.CurrentTeam)
	} else {
		fmt.Fprintln(w, "  Team:   none")
	}
	if p.IsActive {
		fmt.Fprintln(w, "  Status: Active")
	} else {
		fmt.Fprintf(w, "  Status: %s\n", p.Status)
	}
	if p.Roles != "" {
		fmt.Fprintf(w, "  Roles:  %s\n", p.Roles)
	}
	fmt.Fprintln(w)
}

func writeTimelineText(w io.Writer, playerID string, stints []career.Stint) error {
	if len(stints) == 0 {
		fmt.Fprintf(w, "No stints found for %s.\n", playerID)
		return nil
	}

	fmt.Fprintf(w, "Career of %s:\n", playerID)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, s := range stints {
		status := ""
		if s.Status != "" && s.Status != normalize.StatusActive {
			status = "(" + string(s.Status) + ")"
		}
		fmt.Fprintf(tw, "  %d.\t%s\t%s\t%s\t%d days\n", s.StintNumber, s.DateRange, s.Team, status, s.DurationDays)
	}
	return tw.Flush()
}

// Tier1Player is one row of a tier-1 report
type Tier1Player struct {
	PlayerID    string   `json:"player_id"`
	RealName    string   `json:"real_name"`
	Country     string   `json:"country"`
	CurrentTeam string   `json:"current_team"`
	Teams       []string `json:"tier_1_teams"`
	Count       int      `json:"tier_1_teams_count"`
}

// Tier1Result reports a tier-1 filter run
type Tier1Result struct {
	Players  int            `json:"players"`
	Tier1    []Tier1Player  `json:"tier_1_players"`
	Expanded int            `json:"expanded_rows,omitempty"`
	Files    []string       `json:"files,omitempty"`
	TopTeams []career.Count `json:"top_teams,omitempty"`
}

func (r *Tier1Result) writeText(w io.Writer, verbose bool) error {
	pct := 0.0
	if r.Players > 0 {
		pct = float64(len(r.Tier1)) / float64(r.Players) * 100
	}
	fmt.Fprintf(w, "Found %d players with tier-1 experience (%.1f%% of %d)\n", len(r.Tier1), pct, r.Players)

	if verbose {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "\nPLAYER\tCOUNTRY\tTIER-1 TEAMS")
		for _, p := range r.Tier1 {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", p.PlayerID, p.Country, strings.Join(p.Teams, ", "))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	writeCounts(w, "Most common tier-1 teams", r.TopTeams)

	for _, f := range r.Files {
		fmt.Fprintf(w, "Saved to: %s\n", f)
	}
	return nil
}

// RunsResult lists stored runs
type RunsResult struct {
	Runs []store.Run `json:"runs"`
}

func (r *RunsResult) writeText(w io.Writer, verbose bool) error {
	if len(r.Runs) == 0 {
		fmt.Fprintln(w, "No stored runs found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL\tCREATED\tSTINTS\tTRANSITIONS\tPLAYERS")
	for _, run := range r.Runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID, run.Label, run.CreatedAt.Format(time.RFC3339), run.Stints, run.Transitions, run.Players)
	}
	return tw.Flush()
}

// BatchInfo describes one stored player batch
type BatchInfo struct {
	Name      string    `json:"name"`
	Source    string    `json:"source,omitempty"`
	ScrapedAt time.Time `json:"scraped_at"`
	Players   int       `json:"players"`
	IDs       []string  `json:"player_ids,omitempty"`
}

// BatchesResult lists the player batches in the data directory
type BatchesResult struct {
	DataDir string      `json:"data_dir"`
	Batches []BatchInfo `json:"batches"`
}

func (r *BatchesResult) writeText(w io.Writer, verbose bool) error {
	fmt.Fprintf(w, "Data directory: %s\n", r.DataDir)
	if len(r.Batches) == 0 {
		fmt.Fprintln(w, "No stored batches found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSOURCE\tSCRAPED\tPLAYERS")
	for _, b := range r.Batches {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", b.Name, b.Source, b.ScrapedAt.Format(time.RFC3339), b.Players)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if verbose {
		for _, b := range r.Batches {
			fmt.Fprintf(w, "\n%s:\n", b.Name)
			for _, id := range b.IDs {
				fmt.Fprintf(w, "  %s\n", id)
			}
		}
	}
	return nil
}
