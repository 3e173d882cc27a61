package cli

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

func newBatchesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "batches",
		Short: "List stored player batches",
		Long: `List the player batches in the data directory with their source,
extraction time and player count. With --verbose, also list each batch's
player IDs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.storage()
			if err != nil {
				return err
			}

			names, err := st.ListBatches()
			if err != nil {
				return err
			}

			result := &BatchesResult{DataDir: st.Dir(), Batches: make([]BatchInfo, 0, len(names))}
			for _, name := range names {
				batch, err := st.LoadBatch(name)
				if err != nil {
					return eris.Wrap(err, "loading batch")
				}
				ids := batch.IDs()
				info := BatchInfo{
					Name:      name,
					Source:    batch.Source,
					ScrapedAt: batch.ScrapedAt,
					Players:   len(ids),
				}
				if opts.verbose {
					info.IDs = ids
				}
				result.Batches = append(result.Batches, info)
			}

			return WriteOutput(cmd.OutOrStdout(), result, opts.outputFormat(), opts.verbose)
		},
	}
}
