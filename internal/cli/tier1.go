package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/careerdb/internal/career"
	"github.com/pfrederiksen/careerdb/internal/export"
	"github.com/pfrederiksen/careerdb/internal/logger"
	"github.com/pfrederiksen/careerdb/internal/tier"
)

// tier1PlayerRow is the CSV shape of a tier-1 player
type tier1PlayerRow struct {
	PlayerID    string `csv:"player_id"`
	RealName    string `csv:"real_name"`
	Country     string `csv:"country"`
	CurrentTeam string `csv:"current_team"`
	Status      string `csv:"status"`
	Teams       string `csv:"tier_1_teams"`
	Count       int    `csv:"tier_1_teams_count"`
}

func newTier1Cmd(opts *options) *cobra.Command {
	var (
		batchName   string
		datasetName string
		outDir      string
		prefix      string
		noWrite     bool
		top         int
	)

	cmd := &cobra.Command{
		Use:   "tier1",
		Short: "List players with tier-1 team experience",
		Long: `Find players whose current team or any career entry matches the tier-1
allowlist (tier1.teams in the config, or the built-in list). Writes
<prefix>_tier1_players.csv and, when a dataset has been built,
<prefix>_tier1_stints.csv with every stint of those players flagged
is_tier_1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.storage()
			if err != nil {
				return err
			}

			batch, err := st.LoadBatch(batchName)
			if err != nil {
				return eris.Wrap(err, "loading batch")
			}

			matcher := opts.cfg.Tier1Matcher()
			results := matcher.Filter(batch.Players)

			teamCounts := make(map[string]int)
			result := &Tier1Result{
				Players: len(batch.Players),
				Tier1:   make([]Tier1Player, 0, len(results)),
			}
			rows := make([]tier1PlayerRow, 0, len(results))
			for _, r := range results {
				result.Tier1 = append(result.Tier1, Tier1Player{
					PlayerID:    r.Player.ID,
					RealName:    r.Player.RealName,
					Country:     r.Player.Country,
					CurrentTeam: r.Player.CurrentTeam,
					Teams:       r.Teams,
					Count:       r.Count(),
				})
				rows = append(rows, tier1PlayerRow{
					PlayerID:    r.Player.ID,
					RealName:    r.Player.RealName,
					Country:     r.Player.Country,
					CurrentTeam: r.Player.CurrentTeam,
					Status:      string(r.Player.Status),
					Teams:       strings.Join(r.Teams, "; "),
					Count:       r.Count(),
				})
				for _, team := range r.Teams {
					teamCounts[team]++
				}
			}
			result.TopTeams = sortedCounts(teamCounts)
			if top >= 0 && len(result.TopTeams) > top {
				result.TopTeams = result.TopTeams[:top]
			}

			if !noWrite {
				files, expanded, err := writeTier1(opts, st.LoadDataset, datasetName, outDir, prefix, matcher, results, rows)
				if err != nil {
					return err
				}
				result.Files = files
				result.Expanded = expanded
			}

			opts.log.Info("Filtered tier-1 players", logger.Fields{
				"players": result.Players,
				"tier_1":  len(result.Tier1),
			})
			return WriteOutput(cmd.OutOrStdout(), result, opts.outputFormat(), opts.verbose)
		},
	}

	cmd.Flags().StringVar(&batchName, "batch", "", "Batch to filter (default batch if empty)")
	cmd.Flags().StringVar(&datasetName, "dataset", "", "Dataset whose stints are expanded (default dataset if empty)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for CSV files (overrides config)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "File name prefix (overrides config)")
	cmd.Flags().BoolVar(&noWrite, "no-write", false, "Only report, do not write CSV files")
	cmd.Flags().IntVar(&top, "top", 10, "Number of most common tier-1 teams to show")
	return cmd
}

func writeTier1(opts *options, loadDataset func(string) (career.Dataset, error), datasetName, outDir, prefix string,
	matcher *tier.Matcher, results []tier.Result, rows []tier1PlayerRow) ([]string, int, error) {
	if outDir == "" {
		outDir = opts.cfg.Export.OutDir
	}
	if prefix == "" {
		prefix = opts.cfg.Export.Prefix
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, 0, eris.Wrap(err, "creating output directory")
	}
	base := filepath.Join(outDir, prefix)

	playersPath := base + "_tier1_players.csv"
	if err := export.WriteRows(playersPath, rows); err != nil {
		return nil, 0, err
	}
	files := []string{playersPath}

	ds, err := loadDataset(datasetName)
	if err != nil {
		return files, 0, eris.Wrap(err, "loading dataset")
	}
	if len(ds.Stints) == 0 {
		opts.log.Warn("No dataset built; skipping tier-1 stints", logger.Fields{"dataset": batchLabel(datasetName)})
		return files, 0, nil
	}

	expanded := matcher.Expand(ds.Stints, results)
	stintsPath := base + "_tier1_stints.csv"
	if err := export.WriteRows(stintsPath, expanded); err != nil {
		return files, 0, err
	}
	return append(files, stintsPath), len(expanded), nil
}
