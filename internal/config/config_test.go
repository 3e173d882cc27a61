package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/careerdb/internal/logger"
)

// chdir switches to a fresh directory so no careerdb.yaml or .env is found
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
	t.Setenv("HOME", dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "~/.local/share/careerdb", cfg.DataDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "https://liquipedia.net", cfg.Extract.BaseURL)
	assert.Equal(t, 4, cfg.Pipeline.Workers)
	assert.True(t, cfg.Pipeline.Clean)
	assert.Empty(t, cfg.Noise.ExtraExact)
	assert.Empty(t, cfg.Tier1.Teams)
	assert.Equal(t, []string{"csv", "xlsx"}, cfg.Export.Formats)
	assert.Equal(t, "career", cfg.Export.Prefix)
	assert.Equal(t, "~/.local/share/careerdb/careerdb.db", cfg.Store.Path)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdir(t)

	yaml := `
data_dir: /tmp/careerdb
log:
  level: debug
  format: console
pipeline:
  workers: 8
  clean: false
noise:
  extra_exact: ["Showcase"]
  extra_patterns: ["^Week \\d+$"]
tier1:
  teams: ["Alpha", "Beta"]
export:
  formats: [json, sqlite]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "careerdb.yaml"), []byte(yaml), 0644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/careerdb", cfg.DataDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 8, cfg.Pipeline.Workers)
	assert.False(t, cfg.Pipeline.Clean)
	assert.Equal(t, []string{"json", "sqlite"}, cfg.Export.Formats)
	assert.True(t, cfg.HasFormat("SQLITE"))
	assert.False(t, cfg.HasFormat("csv"))

	cls, err := cfg.NoiseClassifier()
	require.NoError(t, err)
	assert.True(t, cls.IsNoise("showcase"))
	assert.True(t, cls.IsNoise("Week 3"))
	assert.True(t, cls.IsNoise("S-Tier"))

	m := cfg.Tier1Matcher()
	assert.Equal(t, 2, m.Len())
	assert.True(t, m.IsTier1("Alpha"))
}

func TestLoadExplicitFile(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pipeline:\n  workers: 2\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Pipeline.Workers)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t)
	t.Setenv("CAREERDB_LOG_LEVEL", "warn")
	t.Setenv("CAREERDB_PIPELINE_WORKERS", "16")
	t.Setenv("CAREERDB_STORE_PATH", "/var/lib/careerdb.db")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 16, cfg.Pipeline.Workers)
	assert.Equal(t, "/var/lib/careerdb.db", cfg.Store.Path)
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CAREERDB_EXPORT_PREFIX=vct\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("CAREERDB_EXPORT_PREFIX") }) //nolint:errcheck

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "vct", cfg.Export.Prefix)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"negative workers", func(c *Config) { c.Pipeline.Workers = -1 }, true},
		{"unknown export", func(c *Config) { c.Export.Formats = []string{"parquet"} }, true},
		{"export case", func(c *Config) { c.Export.Formats = []string{"CSV"} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNoiseClassifier_BadPattern(t *testing.T) {
	cfg := Default()
	cfg.Noise.ExtraPatterns = []string{"("}

	_, err := cfg.NoiseClassifier()
	assert.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	prev := logger.Default()
	t.Cleanup(func() { logger.SetDefault(prev) })

	var buf bytes.Buffer
	l, err := InitLogger(LogConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)
	assert.Same(t, l, logger.Default())

	logger.Debug("hello", nil)
	assert.Contains(t, buf.String(), `"message":"hello"`)

	_, err = InitLogger(LogConfig{Level: "nope"}, &buf)
	assert.Error(t, err)
}

func TestDefaultTier1Matcher(t *testing.T) {
	m := Default().Tier1Matcher()
	assert.True(t, m.IsTier1("Sentinels"))
}
