package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/careerdb/internal/config"
)

const configHierarchy = `Configuration hierarchy (highest to lowest priority):
  1. CLI flags
  2. Environment variables (CAREERDB_*, also read from .env)
  3. Config file (./careerdb.yaml or ~/.careerdb/careerdb.yaml)
  4. Built-in defaults`

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage careerdb configuration",
		Long:  "Manage careerdb configuration files and settings.\n\n" + configHierarchy,
	}

	cmd.AddCommand(newConfigShowCmd(opts), newConfigInitCmd())
	return cmd
}

func newConfigShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.outputFormat() == FormatJSON {
				return writeJSON(cmd.OutOrStdout(), opts.cfg)
			}

			data, err := yaml.Marshal(opts.cfg)
			if err != nil {
				return eris.Wrap(err, "marshaling config")
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var (
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return eris.Wrap(err, "finding home directory")
				}
				path = filepath.Join(home, ".careerdb", "careerdb.yaml")
			}

			if _, err := os.Stat(path); err == nil && !force {
				return eris.Errorf("config file already exists: %s (use --force to overwrite)", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return eris.Wrap(err, "creating config directory")
			}

			data, err := yaml.Marshal(config.Default())
			if err != nil {
				return eris.Wrap(err, "marshaling config")
			}

			header := "# careerdb configuration\n#\n"
			for _, line := range strings.Split(configHierarchy, "\n") {
				header += "# " + line + "\n"
			}
			header += "\n"

			if err := os.WriteFile(path, append([]byte(header), data...), 0644); err != nil {
				return eris.Wrap(err, "writing config file")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Where to write the file (default ~/.careerdb/careerdb.yaml)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
