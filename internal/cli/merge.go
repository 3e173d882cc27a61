package cli

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/careerdb/internal/logger"
	"github.com/pfrederiksen/careerdb/internal/player"
)

func newMergeCmd(opts *options) *cobra.Command {
	var into string

	cmd := &cobra.Command{
		Use:   "merge BATCH [BATCH...]",
		Short: "Merge player batches, dropping duplicate player IDs",
		Long: `Merge several batches into one. When the same player ID appears more
than once, the record from the first batch listed wins. Use "default"
to name the default batch.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.storage()
			if err != nil {
				return err
			}

			batches := make([]*player.Batch, 0, len(args))
			for _, name := range args {
				b, err := store.LoadBatch(name)
				if err != nil {
					return eris.Wrapf(err, "loading batch %s", name)
				}
				if len(b.Players) == 0 {
					opts.log.Warn("Batch is empty", logger.Fields{"batch": name})
				}
				batches = append(batches, b)
			}

			merged, res := player.MergeBatches("merge", batches...)
			if err := store.SaveBatch(merged, into); err != nil {
				return eris.Wrap(err, "saving merged batch")
			}

			logger.AddCounter("players.merged.duplicates", int64(len(res.Duplicates)))
			opts.log.Info("Merged batches", logger.Fields{
				"inputs":     len(args),
				"players":    len(merged.Players),
				"duplicates": len(res.Duplicates),
			})

			result := &MergeResult{
				Output:     batchLabel(into),
				Inputs:     args,
				Players:    len(merged.Players),
				Duplicates: res.Duplicates,
			}
			return WriteOutput(cmd.OutOrStdout(), result, opts.outputFormat(), opts.verbose)
		},
	}

	cmd.Flags().StringVar(&into, "into", "merged", "Batch name to write")
	return cmd
}
