package cli

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/careerdb/internal/config"
	"github.com/pfrederiksen/careerdb/internal/logger"
)

func newRunsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Manage datasets stored in SQLite",
	}

	cmd.AddCommand(
		newRunsListCmd(opts),
		newRunsExportCmd(opts),
		newRunsDeleteCmd(opts),
	)
	return cmd
}

func newRunsListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			runs, err := s.ListRuns(cmd.Context())
			if err != nil {
				return err
			}
			return WriteOutput(cmd.OutOrStdout(), &RunsResult{Runs: runs}, opts.outputFormat(), opts.verbose)
		},
	}
}

func newRunsExportCmd(opts *options) *cobra.Command {
	var exports exportFlags

	cmd := &cobra.Command{
		Use:   "export RUN_ID",
		Short: "Export a stored run to CSV, Excel or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			ds, err := s.LoadDataset(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			// Re-storing a run would only duplicate it
			resolved := exports.resolve(opts.cfg)
			formats := make([]string, 0, len(resolved.formats))
			for _, f := range resolved.formats {
				if !strings.EqualFold(f, config.FormatSQLite) {
					formats = append(formats, f)
				}
			}
			if len(formats) == 0 {
				return eris.New("no file export format selected")
			}
			resolved.formats = formats

			files, _, err := exportDataset(cmd.Context(), opts, ds, resolved)
			if err != nil {
				return err
			}

			result := &BuildResult{
				Dataset:     args[0],
				Stints:      len(ds.Stints),
				Transitions: len(ds.Transitions),
				Players:     len(ds.Stats),
				Files:       files,
			}
			return WriteOutput(cmd.OutOrStdout(), result, opts.outputFormat(), opts.verbose)
		},
	}

	exports.register(cmd)
	return cmd
}

func newRunsDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete RUN_ID",
		Short: "Delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.DeleteRun(cmd.Context(), args[0]); err != nil {
				return err
			}

			opts.log.Info("Deleted run", logger.Fields{"run_id": args[0]})
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", args[0])
			return nil
		},
	}
}
