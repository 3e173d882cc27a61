package cli

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/careerdb/internal/career"
	"github.com/pfrederiksen/careerdb/internal/storage"
)

func newSummaryCmd(opts *options) *cobra.Command {
	var (
		datasetName string
		runID       string
		playerID    string
		batchName   string
		sortFlag    string
		top         int
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize a built dataset",
		Long: `Print totals, top countries, top teams and stint type counts for a
dataset. With --player, print that player's career timeline instead,
headed by their profile from the batch named by --batch.
With --limit, also list players ordered by --sort (teams, span, name or
start).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			order, ok := parseSortOrder(sortFlag)
			if !ok {
				return eris.Errorf("invalid sort: %s (must be 'teams', 'span', 'name' or 'start')", sortFlag)
			}

			ds, label, err := loadSummaryDataset(cmd, opts, datasetName, runID)
			if err != nil {
				return err
			}

			result := &SummaryResult{Dataset: label}
			if playerID != "" {
				result.Player = playerID
				result.Timeline = career.Timeline(ds.Stints, playerID)
				profile, err := loadProfile(opts, batchName, playerID)
				if err != nil {
					return err
				}
				result.Profile = profile
				return WriteOutput(cmd.OutOrStdout(), result, opts.outputFormat(), opts.verbose)
			}

			result.Summary = career.Summarize(ds, top)
			if limit > 0 {
				stats := make([]career.PlayerStatistics, len(ds.Stats))
				copy(stats, ds.Stats)
				sortStats(stats, order)
				if len(stats) > limit {
					stats = stats[:limit]
				}
				result.Players = stats
			}

			return WriteOutput(cmd.OutOrStdout(), result, opts.outputFormat(), opts.verbose)
		},
	}

	cmd.Flags().StringVar(&datasetName, "dataset", "", "Dataset to summarize (default dataset if empty)")
	cmd.Flags().StringVar(&runID, "run", "", "Summarize a stored SQLite run instead of a saved dataset")
	cmd.Flags().StringVar(&playerID, "player", "", "Print the career timeline of one player")
	cmd.Flags().StringVar(&batchName, "batch", "", "Batch holding the --player profile (default batch if empty)")
	cmd.Flags().StringVar(&sortFlag, "sort", string(SortByTeams), "Player sort order: teams, span, name or start")
	cmd.Flags().IntVar(&top, "top", summaryTopN, "Number of top countries and teams to show")
	cmd.Flags().IntVar(&limit, "limit", 0, "Number of players to list (0 lists none)")
	return cmd
}

func loadSummaryDataset(cmd *cobra.Command, opts *options, datasetName, runID string) (career.Dataset, string, error) {
	if runID != "" {
		s, err := openStore(cmd.Context(), opts)
		if err != nil {
			return career.Dataset{}, "", err
		}
		defer s.Close()

		ds, err := s.LoadDataset(cmd.Context(), runID)
		if err != nil {
			return career.Dataset{}, "", err
		}
		return ds, runID, nil
	}

	st, err := opts.storage()
	if err != nil {
		return career.Dataset{}, "", err
	}
	ds, err := st.LoadDataset(datasetName)
	if err != nil {
		return career.Dataset{}, "", eris.Wrap(err, "loading dataset")
	}
	if len(ds.Stints) == 0 {
		return career.Dataset{}, "", eris.Errorf("dataset %q is empty; run build first", batchLabel(datasetName))
	}
	return ds, batchLabel(datasetName), nil
}

// loadProfile looks up a player's identity. A player missing from the batch
// has no profile.
func loadProfile(opts *options, batchName, playerID string) (*PlayerProfile, error) {
	st, err := opts.storage()
	if err != nil {
		return nil, err
	}

	p, err := st.GetPlayerByID(batchName, playerID)
	if eris.Is(err, storage.ErrPlayerNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return newPlayerProfile(p), nil
}
