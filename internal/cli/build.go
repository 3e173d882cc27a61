package cli

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/careerdb/internal/career"
	"github.com/pfrederiksen/careerdb/internal/logger"
)

const summaryTopN = 10

func newBuildCmd(opts *options) *cobra.Command {
	var (
		batchName   string
		datasetName string
		noClean     bool
		exports     exportFlags
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the career dataset from a player batch",
		Long: `Turn the career histories of a player batch into career stints, team
transitions and per-player statistics. Noise rows are removed unless
--no-clean is given or pipeline.clean is false. The dataset is saved to
the data directory and exported in the configured formats.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()

			st, err := opts.storage()
			if err != nil {
				return err
			}

			batch, err := st.LoadBatch(batchName)
			if err != nil {
				return eris.Wrap(err, "loading batch")
			}
			if len(batch.Players) == 0 {
				return eris.Errorf("batch %q has no players", batchLabel(batchName))
			}

			builder := career.NewBuilder()
			builder.Log = opts.log
			stints := builder.Build(batch.Players)

			ds, err := career.DeriveParallel(cmd.Context(), stints, opts.workers())
			if err != nil {
				return eris.Wrap(err, "deriving dataset")
			}

			result := &BuildResult{
				BuiltAt: time.Now().UTC(),
				Batch:   batchLabel(batchName),
				Dataset: batchLabel(datasetName),
			}

			if opts.cfg.Pipeline.Clean && !noClean {
				cls, err := opts.cfg.NoiseClassifier()
				if err != nil {
					return err
				}
				cleaner := career.NewCleaner(cls)
				cleaner.Log = opts.log

				var report career.CleanReport
				ds, report = cleaner.CleanDataset(ds)
				result.Clean = &report
			}

			if err := st.SaveDataset(ds, datasetName); err != nil {
				return eris.Wrap(err, "saving dataset")
			}

			if exports.label == "" {
				exports.label = "build " + batchLabel(batchName)
			}
			files, runID, err := exportDataset(cmd.Context(), opts, ds, exports)
			if err != nil {
				return err
			}

			summary := career.Summarize(ds, summaryTopN)
			result.Stints = len(ds.Stints)
			result.Transitions = len(ds.Transitions)
			result.Players = len(ds.Stats)
			result.Files = files
			result.RunID = runID
			result.Summary = &summary

			logger.SetGauge("dataset.players", float64(result.Players))
			logger.RecordTiming("build", time.Since(start))
			opts.log.Info("Built dataset", logger.Fields{
				"batch":       result.Batch,
				"stints":      result.Stints,
				"transitions": result.Transitions,
				"players":     result.Players,
				"duration_ms": time.Since(start).Milliseconds(),
			})

			return WriteOutput(cmd.OutOrStdout(), result, opts.outputFormat(), opts.verbose)
		},
	}

	cmd.Flags().StringVar(&batchName, "batch", "", "Batch to build from (default batch if empty)")
	cmd.Flags().StringVar(&datasetName, "dataset", "", "Dataset name to save (default dataset if empty)")
	cmd.Flags().BoolVar(&noClean, "no-clean", false, "Skip noise cleaning")
	exports.register(cmd)
	return cmd
}
