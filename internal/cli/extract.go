package cli

import (
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/careerdb/internal/extract"
	"github.com/pfrederiksen/careerdb/internal/logger"
	"github.com/pfrederiksen/careerdb/internal/player"
)

func newExtractCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract players from downloaded wiki pages",
		Long: `Parse wiki pages that were saved to disk into a player batch.

Start with a portal or category page to list players, then run
"extract pages" against a directory of player pages to fill in
career histories.`,
	}

	cmd.AddCommand(
		newExtractPortalCmd(opts),
		newExtractCategoryCmd(opts),
		newExtractPagesCmd(opts),
	)
	return cmd
}

type listFlags struct {
	batch   string
	region  string
	country string
	append  bool
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.batch, "batch", "", "Batch name to write (default batch if empty)")
	cmd.Flags().StringVar(&f.region, "region", "", "Region stored on every player (looked up from the country if empty)")
	cmd.Flags().BoolVar(&f.append, "append", false, "Merge into the existing batch instead of replacing it")
}

func newExtractPortalCmd(opts *options) *cobra.Command {
	flags := &listFlags{}
	cmd := &cobra.Command{
		Use:   "portal FILE",
		Short: "Extract the player list from a portal page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtractList(cmd, opts, flags, "portal", args[0], func(p *extract.Parser, f *os.File) ([]*player.Player, error) {
				return p.Portal(f, flags.region)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newExtractCategoryCmd(opts *options) *cobra.Command {
	flags := &listFlags{}
	cmd := &cobra.Command{
		Use:   "category FILE",
		Short: "Extract the player list from a category page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtractList(cmd, opts, flags, "category", args[0], func(p *extract.Parser, f *os.File) ([]*player.Player, error) {
				return p.Category(f, flags.country, flags.region)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&flags.country, "country", "", "Country stored on every player")
	return cmd
}

func runExtractList(cmd *cobra.Command, opts *options, flags *listFlags, source, path string,
	parse func(*extract.Parser, *os.File) ([]*player.Player, error)) error {
	f, err := os.Open(path)
	if err != nil {
		return eris.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	players, err := parse(opts.parser(), f)
	if err != nil {
		return err
	}

	store, err := opts.storage()
	if err != nil {
		return err
	}

	batch := player.NewBatch(source, players)
	if flags.append {
		existing, err := store.LoadBatch(flags.batch)
		if err != nil {
			return eris.Wrap(err, "loading batch")
		}
		var merged *player.MergeResult
		batch, merged = player.MergeBatches(source, existing, batch)
		logger.AddCounter("players.merged.duplicates", int64(len(merged.Duplicates)))
	}

	if err := store.SaveBatch(batch, flags.batch); err != nil {
		return eris.Wrap(err, "saving batch")
	}

	opts.log.Info("Extracted player list", logger.Fields{
		"source":  source,
		"file":    path,
		"players": len(players),
		"batch":   batchLabel(flags.batch),
	})

	result := &ExtractResult{
		ExtractedAt: batch.ScrapedAt,
		Source:      source,
		Batch:       batchLabel(flags.batch),
		Players:     len(batch.Players),
	}
	return WriteOutput(cmd.OutOrStdout(), result, opts.outputFormat(), opts.verbose)
}

func newExtractPagesCmd(opts *options) *cobra.Command {
	var batchName string

	cmd := &cobra.Command{
		Use:   "pages DIR",
		Short: "Fill career histories from downloaded player pages",
		Long: `Read DIR/<player_id>.html for every player in the batch and fill in
career history, roles and birth date. Slashes and spaces in player IDs
are replaced with underscores in file names. Players without a page are
reported and left unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtractPages(cmd, opts, batchName, args[0])
		},
	}

	cmd.Flags().StringVar(&batchName, "batch", "", "Batch to update (default batch if empty)")
	return cmd
}

func runExtractPages(cmd *cobra.Command, opts *options, batchName, dir string) error {
	store, err := opts.storage()
	if err != nil {
		return err
	}

	batch, err := store.LoadBatch(batchName)
	if err != nil {
		return eris.Wrap(err, "loading batch")
	}
	if len(batch.Players) == 0 {
		return eris.Errorf("batch %q has no players; run extract portal or category first", batchLabel(batchName))
	}

	start := time.Now()
	parser := opts.parser()
	missing := make([]bool, len(batch.Players))
	var parsed atomic.Int64

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(opts.workers())
	for i, p := range batch.Players {
		if p == nil {
			continue
		}
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := os.Open(pageFile(dir, p.ID))
			if os.IsNotExist(err) {
				missing[i] = true
				return nil
			}
			if err != nil {
				return eris.Wrapf(err, "opening page for %s", p.ID)
			}
			defer f.Close()

			if err := parser.PlayerPage(f, p); err != nil {
				return eris.Wrapf(err, "parsing page for %s", p.ID)
			}
			parsed.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := store.SaveBatch(batch, batchName); err != nil {
		return eris.Wrap(err, "saving batch")
	}

	result := &ExtractResult{
		ExtractedAt: batch.ScrapedAt,
		Source:      dir,
		Batch:       batchLabel(batchName),
		Players:     int(parsed.Load()),
	}
	for i, p := range batch.Players {
		if p == nil {
			continue
		}
		if missing[i] {
			result.Missing = append(result.Missing, p.ID)
		}
		if len(p.Career) > 0 {
			result.WithHistory++
		}
	}

	logger.RecordTiming("extract.pages", time.Since(start))
	opts.log.Info("Extracted player pages", logger.Fields{
		"dir":          dir,
		"parsed":       result.Players,
		"missing":      len(result.Missing),
		"with_history": result.WithHistory,
	})

	return WriteOutput(cmd.OutOrStdout(), result, opts.outputFormat(), opts.verbose)
}

// pageFile returns where the page of playerID is expected under dir
func pageFile(dir, playerID string) string {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(playerID)
	return filepath.Join(dir, name+".html")
}

func batchLabel(name string) string {
	if name == "" {
		return "default"
	}
	return name
}
