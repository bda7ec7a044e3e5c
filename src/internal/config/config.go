// Package config loads the application configuration from a TOML file.
// Every setting has a default, so the pipeline runs without a config file at
// all; the static overrides table file is the only required input besides
// the export itself.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths points at the pipeline's inputs and output.
type Paths struct {
	ExportCSV  string `toml:"export_csv"`
	OutputJSON string `toml:"output_json"`
	Overrides  string `toml:"overrides"`
}

// Lookup controls the external metadata services.
type Lookup struct {
	APIKey           string `toml:"api_key"`
	RequestTimeout   int    `toml:"request_timeout"`   // seconds per call
	PhasePause       int    `toml:"phase_pause"`       // seconds between bulk phases
	AnnotationSource string `toml:"annotation_source"` // catalog | scrape
}

// Stats controls report extras.
type Stats struct {
	Year int `toml:"year"` // 0 disables the books_in_<year> counter
}

// Config is the full application configuration.
type Config struct {
	Paths  Paths  `toml:"paths"`
	Lookup Lookup `toml:"lookup"`
	Stats  Stats  `toml:"stats"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Paths: Paths{
			ExportCSV:  "goodreads_library_export.csv",
			OutputJSON: "reading_stats.json",
			Overrides:  "data/overrides.yaml",
		},
		Lookup: Lookup{
			RequestTimeout:   10,
			PhasePause:       2,
			AnnotationSource: "catalog",
		},
		Stats: Stats{Year: time.Now().Year()},
	}
}

// Load reads the config at path, layered over defaults. A missing file is
// fine; a present but invalid file is a fatal setup error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot work with.
func (c *Config) Validate() error {
	if c.Paths.ExportCSV == "" {
		return errors.New("config: paths.export_csv must not be empty")
	}
	if c.Paths.OutputJSON == "" {
		return errors.New("config: paths.output_json must not be empty")
	}
	if c.Lookup.RequestTimeout < 0 || c.Lookup.PhasePause < 0 {
		return errors.New("config: lookup timings must not be negative")
	}
	switch c.Lookup.AnnotationSource {
	case "catalog", "scrape":
	default:
		return fmt.Errorf("config: lookup.annotation_source must be catalog or scrape, got %q", c.Lookup.AnnotationSource)
	}
	return nil
}

// APIKey returns the configured catalog API key, with the environment
// variable taking precedence over the file.
func (c *Config) APIKey() string {
	if v := os.Getenv("GOOGLE_BOOKS_API_KEY"); v != "" {
		return v
	}
	return c.Lookup.APIKey
}

// RequestTimeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Lookup.RequestTimeout) * time.Second
}

// PhasePause as a duration.
func (c *Config) PhasePause() time.Duration {
	return time.Duration(c.Lookup.PhasePause) * time.Second
}

// Sample returns the annotated sample configuration.
func Sample() string { return sampleConfig }

// WriteSample writes the sample config to path, refusing to overwrite.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}
