package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/careerdb/internal/career"
	"github.com/pfrederiksen/careerdb/internal/config"
	"github.com/pfrederiksen/careerdb/internal/export"
	"github.com/pfrederiksen/careerdb/internal/logger"
	"github.com/pfrederiksen/careerdb/internal/storage"
	"github.com/pfrederiksen/careerdb/internal/store"
)

// exportFlags override the export section of the config for one command
type exportFlags struct {
	formats []string
	outDir  string
	prefix  string
	label   string
}

func (f *exportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.formats, "export", nil, "Export formats: csv, xlsx, json, sqlite (overrides config)")
	cmd.Flags().StringVar(&f.outDir, "out-dir", "", "Directory for exported files (overrides config)")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "File name prefix for exported files (overrides config)")
	cmd.Flags().StringVar(&f.label, "label", "", "Label for the SQLite run")
}

// resolve fills unset flags from cfg
func (f exportFlags) resolve(cfg *config.Config) exportFlags {
	if len(f.formats) == 0 {
		f.formats = cfg.Export.Formats
	}
	if f.outDir == "" {
		f.outDir = cfg.Export.OutDir
	}
	if f.prefix == "" {
		f.prefix = cfg.Export.Prefix
	}
	return f
}

// exportDataset writes ds in every requested format. It returns the files
// written and, when sqlite is among the formats, the stored run ID.
func exportDataset(ctx context.Context, opts *options, ds career.Dataset, flags exportFlags) ([]string, string, error) {
	flags = flags.resolve(opts.cfg)

	if len(flags.formats) > 0 && flags.outDir != "" {
		if err := os.MkdirAll(flags.outDir, 0755); err != nil {
			return nil, "", eris.Wrap(err, "creating output directory")
		}
	}
	base := filepath.Join(flags.outDir, flags.prefix)

	var files []string
	var runID string
	for _, format := range flags.formats {
		switch strings.ToLower(format) {
		case config.FormatCSV:
			paths, err := export.WriteCSV(base, ds)
			if err != nil {
				return files, runID, err
			}
			files = append(files, paths.All()...)
		case config.FormatXLSX:
			path := base + ".xlsx"
			if err := export.WriteXLSX(path, ds); err != nil {
				return files, runID, err
			}
			files = append(files, path)
		case config.FormatJSON:
			path := base + ".json"
			if err := export.WriteJSON(path, ds); err != nil {
				return files, runID, err
			}
			files = append(files, path)
		case config.FormatSQLite:
			id, err := saveRun(ctx, opts, ds, flags.label)
			if err != nil {
				return files, runID, err
			}
			runID = id
		default:
			return files, runID, eris.Errorf("unknown export format %q", format)
		}
	}

	opts.log.Debug("Exported dataset", logger.Fields{
		"formats": flags.formats,
		"files":   len(files),
		"run_id":  runID,
	})
	return files, runID, nil
}

// openStore opens and migrates the configured SQLite store
func openStore(ctx context.Context, opts *options) (*store.Store, error) {
	path, err := storage.ExpandHome(opts.cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, eris.Wrap(err, "creating store directory")
	}

	s, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func saveRun(ctx context.Context, opts *options, ds career.Dataset, label string) (string, error) {
	s, err := openStore(ctx, opts)
	if err != nil {
		return "", err
	}
	defer s.Close()

	return s.SaveDataset(ctx, label, ds)
}
