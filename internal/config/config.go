// Package config loads careerdb settings from a YAML file, a .env file and
// CAREERDB_* environment variables, in increasing order of priority.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"

	"github.com/pfrederiksen/careerdb/internal/logger"
	"github.com/pfrederiksen/careerdb/internal/noise"
	"github.com/pfrederiksen/careerdb/internal/storage"
	"github.com/pfrederiksen/careerdb/internal/tier"
)

// EnvPrefix prefixes every environment override, e.g. CAREERDB_LOG_LEVEL
const EnvPrefix = "CAREERDB"

// Config holds the full application configuration.
type Config struct {
	DataDir  string         `yaml:"data_dir" mapstructure:"data_dir"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Extract  ExtractConfig  `yaml:"extract" mapstructure:"extract"`
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
	Noise    NoiseConfig    `yaml:"noise" mapstructure:"noise"`
	Tier1    Tier1Config    `yaml:"tier1" mapstructure:"tier1"`
	Export   ExportConfig   `yaml:"export" mapstructure:"export"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ExtractConfig configures HTML extraction.
type ExtractConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// PipelineConfig configures the build pipeline.
type PipelineConfig struct {
	// Workers bounds parallel derivation; 0 or 1 derives sequentially
	Workers int `yaml:"workers" mapstructure:"workers"`

	// Clean runs the noise cleaner after every build
	Clean bool `yaml:"clean" mapstructure:"clean"`
}

// NoiseConfig extends the built-in noise vocabulary.
type NoiseConfig struct {
	ExtraExact    []string `yaml:"extra_exact" mapstructure:"extra_exact"`
	ExtraPatterns []string `yaml:"extra_patterns" mapstructure:"extra_patterns"`
}

// Tier1Config overrides the tier-1 allowlist. Empty uses the built-in list.
type Tier1Config struct {
	Teams []string `yaml:"teams" mapstructure:"teams"`
}

// ExportConfig configures dataset output.
type ExportConfig struct {
	Formats []string `yaml:"formats" mapstructure:"formats"`
	OutDir  string   `yaml:"out_dir" mapstructure:"out_dir"`
	Prefix  string   `yaml:"prefix" mapstructure:"prefix"`
}

// StoreConfig configures the SQLite dataset store.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// Export formats
const (
	FormatCSV    = "csv"
	FormatXLSX   = "xlsx"
	FormatJSON   = "json"
	FormatSQLite = "sqlite"
)

var validFormats = map[string]bool{
	FormatCSV:    true,
	FormatXLSX:   true,
	FormatJSON:   true,
	FormatSQLite: true,
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", storage.DefaultDataDir)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("extract.base_url", "https://liquipedia.net")
	v.SetDefault("pipeline.workers", 4)
	v.SetDefault("pipeline.clean", true)
	v.SetDefault("noise.extra_exact", []string{})
	v.SetDefault("noise.extra_patterns", []string{})
	v.SetDefault("tier1.teams", []string{})
	v.SetDefault("export.formats", []string{FormatCSV, FormatXLSX})
	v.SetDefault("export.out_dir", ".")
	v.SetDefault("export.prefix", "career")
	v.SetDefault("store.path", filepath.Join(storage.DefaultDataDir, "careerdb.db"))
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(err)
	}
	return &cfg
}

// Load reads configuration from file and environment. An empty configFile
// searches for careerdb.yaml in the working directory and ~/.careerdb; a
// missing file is not an error there, but an explicit one must exist.
func Load(configFile string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load(".env")

	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("careerdb")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".careerdb"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that viper cannot type-check
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return eris.Wrap(err, "config: log.level")
	}
	switch logger.Format(strings.ToLower(c.Log.Format)) {
	case logger.FormatJSON, logger.FormatConsole:
	default:
		return eris.Errorf("config: log.format must be json or console, got %q", c.Log.Format)
	}
	if c.Pipeline.Workers < 0 {
		return eris.Errorf("config: pipeline.workers must not be negative, got %d", c.Pipeline.Workers)
	}
	for _, f := range c.Export.Formats {
		if !validFormats[strings.ToLower(f)] {
			return eris.Errorf("config: unknown export format %q", f)
		}
	}
	return nil
}

// InitLogger builds the logger described by cfg and installs it as the
// package default.
func InitLogger(cfg LogConfig, w io.Writer) (*logger.Logger, error) {
	level, err := logger.ParseLevel(cfg.Level)
	if err != nil {
		return nil, eris.Wrap(err, "config: parse log level")
	}

	l := logger.NewWithFormat(level, w, logger.Format(strings.ToLower(cfg.Format)))
	logger.SetDefault(l)
	return l, nil
}

// NoiseClassifier compiles the built-in vocabulary plus the configured extras
func (c *Config) NoiseClassifier() (*noise.Classifier, error) {
	vocab := noise.DefaultVocabulary().Extend(c.Noise.ExtraExact, c.Noise.ExtraPatterns)
	cls, err := noise.New(vocab)
	if err != nil {
		return nil, eris.Wrap(err, "config: noise vocabulary")
	}
	return cls, nil
}

// Tier1Matcher returns the configured allowlist, or the built-in one
func (c *Config) Tier1Matcher() *tier.Matcher {
	if len(c.Tier1.Teams) == 0 {
		return tier.Default()
	}
	return tier.New(c.Tier1.Teams)
}

// HasFormat reports whether the export formats include f
func (c *Config) HasFormat(f string) bool {
	for _, have := range c.Export.Formats {
		if strings.EqualFold(have, f) {
			return true
		}
	}
	return false
}
