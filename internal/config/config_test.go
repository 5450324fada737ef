package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sgsplit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Designer_", cfg.Split.FolderPrefix)
	assert.Equal(t, "SplitImg_Report.xlsx", cfg.Split.ReportName)
	assert.Equal(t, 60, cfg.Split.MaxWorkers)
	assert.Equal(t, 5, cfg.Classify.SampleSize)
	assert.Equal(t, 6, cfg.Labels().LightIndex)
	assert.Equal(t, 4, cfg.Labels().OtherIndex)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
split:
  extensions: [".PNG", " .webp"]
classify:
  sample_size: 8
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{".png", ".webp"}, cfg.Split.Extensions)
	assert.Equal(t, 8, cfg.Classify.SampleSize)
	assert.Equal(t, "Designer_", cfg.Split.FolderPrefix)
	assert.True(t, cfg.Tagging.Enabled)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("SGSPLIT_TEST_PREFIX", "Retoucher_")
	path := writeConfig(t, `
split:
  folder_prefix: ${SGSPLIT_TEST_PREFIX}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Retoucher_", cfg.Split.FolderPrefix)
}

func TestLoadFromEnvPath(t *testing.T) {
	path := writeConfig(t, "tagging:\n  enabled: false\n")
	t.Setenv(PathEnv, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Tagging.Enabled)
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv(PathEnv, "")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "split: [unclosed"))
	assert.ErrorContains(t, err, "parse yaml")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty prefix", func(c *Config) { c.Split.FolderPrefix = "" }},
		{"empty report name", func(c *Config) { c.Split.ReportName = "" }},
		{"no extensions", func(c *Config) { c.Split.Extensions = nil }},
		{"extension without dot", func(c *Config) { c.Split.Extensions = []string{"png"} }},
		{"zero min workers", func(c *Config) { c.Split.MinWorkers = 0 }},
		{"too many workers", func(c *Config) { c.Split.MaxWorkers = 61 }},
		{"inverted bounds", func(c *Config) { c.Split.MinWorkers = 10; c.Split.MaxWorkers = 5 }},
		{"zero sample", func(c *Config) { c.Classify.SampleSize = 0 }},
		{"same fills", func(c *Config) { c.Report.OtherFill = c.Report.LightFill }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
