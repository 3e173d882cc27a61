package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/careerdb/internal/config"
	"github.com/pfrederiksen/careerdb/internal/extract"
	"github.com/pfrederiksen/careerdb/internal/logger"
	"github.com/pfrederiksen/careerdb/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version is set at build time with -ldflags "-X ...cli.Version=v1.2.3"
var Version = "dev"

// options holds the persistent flags and the configuration they resolve to
type options struct {
	configFile string
	dataDir    string
	format     string
	verbose    bool

	cfg *config.Config
	log *logger.Logger
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "careerdb",
		Short: "Build a relational career dataset from player wiki pages",
		Long: `A CLI tool that turns scraped player career histories into three
relational views: career stints, team transitions and per-player statistics.
Noise rows such as tournament tiers and placements are cleaned out before
export to CSV, Excel, JSON or SQLite.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose && opts.log != nil {
				opts.log.Debug("Run metrics", logger.GetMetricsSnapshot().Fields())
			}
		},
	}

	// Define flags
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Config file (default: ./careerdb.yaml or ~/.careerdb/careerdb.yaml)")
	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Data directory for batches and datasets (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newExtractCmd(opts),
		newMergeCmd(opts),
		newBatchesCmd(opts),
		newBuildCmd(opts),
		newCleanCmd(opts),
		newTier1Cmd(opts),
		newSummaryCmd(opts),
		newRunsCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// setup loads configuration, applies flag overrides and installs the logger
func (o *options) setup(cmd *cobra.Command) error {
	format := OutputFormat(strings.ToLower(o.format))
	if format != FormatText && format != FormatJSON {
		return eris.Errorf("invalid format: %s (must be 'text' or 'json')", o.format)
	}

	cfg, err := config.Load(o.configFile)
	if err != nil {
		return err
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if o.verbose {
		cfg.Log.Level = string(logger.LevelDebug)
	}

	l, err := config.InitLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	o.cfg = cfg
	o.log = l
	return nil
}

func (o *options) outputFormat() OutputFormat {
	return OutputFormat(strings.ToLower(o.format))
}

func (o *options) storage() (*storage.Storage, error) {
	st, err := storage.New(o.cfg.DataDir)
	if err != nil {
		return nil, eris.Wrap(err, "initializing storage")
	}
	return st, nil
}

func (o *options) parser() *extract.Parser {
	p := extract.New(o.cfg.Extract.BaseURL)
	p.Log = o.log
	return p
}

// workers bounds concurrent work; never below one
func (o *options) workers() int {
	if o.cfg.Pipeline.Workers < 1 {
		return 1
	}
	return o.cfg.Pipeline.Workers
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "careerdb %s\n", Version)
		},
	}
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
