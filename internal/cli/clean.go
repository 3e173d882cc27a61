package cli

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/careerdb/internal/career"
	"github.com/pfrederiksen/careerdb/internal/export"
	"github.com/pfrederiksen/careerdb/internal/logger"
)

func newCleanCmd(opts *options) *cobra.Command {
	var (
		datasetName string
		into        string
		fromCSV     string
		fromJSON    string
		fromXLSX    string
		exports     exportFlags
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove noise rows from a built dataset",
		Long: `Drop stints whose team label is a tournament tier, placement or other
non-team text, renumber the remaining stints and re-derive transitions and
statistics. Player identity fields are kept from the input statistics.

The input is a saved dataset, or an export given with --from-csv (file
prefix), --from-json or --from-xlsx.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.storage()
			if err != nil {
				return err
			}

			var ds career.Dataset
			switch {
			case fromCSV != "":
				ds, err = export.ReadCSV(fromCSV)
			case fromJSON != "":
				ds, err = export.ReadJSON(fromJSON)
			case fromXLSX != "":
				ds, err = export.ReadXLSX(fromXLSX)
			default:
				ds, err = st.LoadDataset(datasetName)
			}
			if err != nil {
				return eris.Wrap(err, "loading dataset")
			}
			if len(ds.Stints) == 0 {
				return eris.New("dataset has no stints; run build first")
			}

			cls, err := opts.cfg.NoiseClassifier()
			if err != nil {
				return err
			}
			cleaner := career.NewCleaner(cls)
			cleaner.Log = opts.log

			cleaned, report := cleaner.CleanDataset(ds)

			if into == "" {
				into = datasetName
			}
			if err := st.SaveDataset(cleaned, into); err != nil {
				return eris.Wrap(err, "saving dataset")
			}

			if exports.label == "" {
				exports.label = "clean " + batchLabel(into)
			}
			files, runID, err := exportDataset(cmd.Context(), opts, cleaned, exports)
			if err != nil {
				return err
			}

			opts.log.Info("Saved cleaned dataset", logger.Fields{
				"dataset":        batchLabel(into),
				"stints_removed": report.StintsRemoved,
			})

			result := &BuildResult{
				BuiltAt:     time.Now().UTC(),
				Dataset:     batchLabel(into),
				Stints:      len(cleaned.Stints),
				Transitions: len(cleaned.Transitions),
				Players:     len(cleaned.Stats),
				Clean:       &report,
				Files:       files,
				RunID:       runID,
			}
			return WriteOutput(cmd.OutOrStdout(), result, opts.outputFormat(), opts.verbose)
		},
	}

	cmd.Flags().StringVar(&datasetName, "dataset", "", "Dataset to clean (default dataset if empty)")
	cmd.Flags().StringVar(&into, "into", "", "Dataset name to save (defaults to --dataset)")
	cmd.Flags().StringVar(&fromCSV, "from-csv", "", "Read <prefix>_stints.csv and friends instead of a saved dataset")
	cmd.Flags().StringVar(&fromJSON, "from-json", "", "Read a JSON export instead of a saved dataset")
	cmd.Flags().StringVar(&fromXLSX, "from-xlsx", "", "Read an Excel export instead of a saved dataset")
	cmd.MarkFlagsMutuallyExclusive("from-csv", "from-json", "from-xlsx")
	exports.register(cmd)
	return cmd
}
