// Package config loads sgsplit settings from YAML with environment
// substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lumipallolabs/sgsplit/internal/logging"
	"github.com/lumipallolabs/sgsplit/internal/report"
	"github.com/lumipallolabs/sgsplit/internal/tagging"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFile is read from the working directory when no path is given
	DefaultFile = "sgsplit.yaml"
	// PathEnv overrides DefaultFile
	PathEnv = "SGSPLIT_CONFIG"
)

// Config is the full application configuration
type Config struct {
	Split    SplitConfig    `yaml:"split"`
	Classify ClassifyConfig `yaml:"classify"`
	Tagging  TaggingConfig  `yaml:"tagging"`
	Report   ReportConfig   `yaml:"report"`
}

// SplitConfig controls scanning and folder layout
type SplitConfig struct {
	FolderPrefix string   `yaml:"folder_prefix"`
	ReportName   string   `yaml:"report_name"`
	Extensions   []string `yaml:"extensions"`
	MinWorkers   int      `yaml:"min_workers"`
	MaxWorkers   int      `yaml:"max_workers"`
}

// ClassifyConfig controls corner sampling
type ClassifyConfig struct {
	SampleSize int `yaml:"sample_size"`
}

// TaggingConfig controls OS labels
type TaggingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	LightLabel int    `yaml:"light_label"`
	OtherLabel int    `yaml:"other_label"`
	LightTag   string `yaml:"light_tag"`
	OtherTag   string `yaml:"other_tag"`
}

// ReportConfig controls the workbook colors
type ReportConfig struct {
	LightFill string `yaml:"light_fill"`
	OtherFill string `yaml:"other_fill"`
}

// Default returns the built-in configuration
func Default() *Config {
	labels := tagging.DefaultLabels()
	return &Config{
		Split: SplitConfig{
			FolderPrefix: "Designer_",
			ReportName:   "SplitImg_Report.xlsx",
			Extensions:   []string{".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tiff"},
			MinWorkers:   1,
			MaxWorkers:   60,
		},
		Classify: ClassifyConfig{SampleSize: 5},
		Tagging: TaggingConfig{
			Enabled:    true,
			LightLabel: labels.LightIndex,
			OtherLabel: labels.OtherIndex,
			LightTag:   labels.LightName,
			OtherTag:   labels.OtherName,
		},
		Report: ReportConfig{
			LightFill: report.DefaultLightFill,
			OtherFill: report.DefaultOtherFill,
		},
	}
}

// Load reads .env (if present), then the YAML file at path. An empty path
// falls back to $SGSPLIT_CONFIG and then DefaultFile; only an explicitly
// named file has to exist. Values missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Debug.Printf("config: .env: %v", err)
	}

	explicit := path != ""
	if !explicit {
		path = os.Getenv(PathEnv)
		explicit = path != ""
	}
	if path == "" {
		path = DefaultFile
	}

	cfg := Default()

	rawBytes, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			logging.Debug.Printf("config: %s not found, using defaults", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// ${VAR} and $VAR are substituted from the environment before parsing
	content := os.ExpandEnv(string(rawBytes))

	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	logging.Debug.Printf("config: loaded %s", path)
	return cfg, nil
}

func (c *Config) normalize() {
	for i, ext := range c.Split.Extensions {
		c.Split.Extensions[i] = strings.ToLower(strings.TrimSpace(ext))
	}
}

// Validate checks the settings the pipeline depends on
func (c *Config) Validate() error {
	s := c.Split
	if s.FolderPrefix == "" {
		return fmt.Errorf("split.folder_prefix is required")
	}
	if s.ReportName == "" {
		return fmt.Errorf("split.report_name is required")
	}
	if len(s.Extensions) == 0 {
		return fmt.Errorf("split.extensions must not be empty")
	}
	for _, ext := range s.Extensions {
		if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("split.extensions: %q must start with a dot", ext)
		}
	}
	if s.MinWorkers < 1 || s.MaxWorkers > 60 || s.MinWorkers > s.MaxWorkers {
		return fmt.Errorf("split: worker bounds %d..%d must lie within 1..60", s.MinWorkers, s.MaxWorkers)
	}
	if c.Classify.SampleSize < 1 {
		return fmt.Errorf("classify.sample_size must be at least 1")
	}
	if strings.EqualFold(c.Report.LightFill, c.Report.OtherFill) {
		return fmt.Errorf("report: light_fill and other_fill must differ")
	}
	return nil
}

// Labels returns the tagging labels
func (c *Config) Labels() tagging.Labels {
	return tagging.Labels{
		LightIndex: c.Tagging.LightLabel,
		OtherIndex: c.Tagging.OtherLabel,
		LightName:  c.Tagging.LightTag,
		OtherName:  c.Tagging.OtherTag,
	}
}

// Fills returns the report colors
func (c *Config) Fills() report.Fills {
	return report.Fills{Light: c.Report.LightFill, Other: c.Report.OtherFill}
}
