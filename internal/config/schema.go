package config

import (
	"fmt"

	"github.com/jackzampolin/tocsplit/internal/toc"
)

// Config holds tocsplit configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Output        string    `mapstructure:"output" yaml:"output"`                   // Destination directory
	Deep          bool      `mapstructure:"deep" yaml:"deep"`                       // Split on every outline level
	MergeSamePage bool      `mapstructure:"merge_same_page" yaml:"merge_same_page"` // Merge same-page parents into their children
	Naming        string    `mapstructure:"naming" yaml:"naming"`                   // "sanitize" or "slug"
	Workers       int       `mapstructure:"workers" yaml:"workers"`                 // Sections extracted concurrently
	Retries       int       `mapstructure:"retries" yaml:"retries"`                 // Extra write attempts per section
	Format        string    `mapstructure:"format" yaml:"format"`                   // Summary format: yaml or json
	Log           LogConfig `mapstructure:"log" yaml:"log"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // text or json
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Output:  "output",
		Naming:  string(toc.NamingSanitize),
		Workers: 1,
		Retries: 2,
		Format:  "yaml",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks values that flags and files cannot constrain on their own.
func (c *Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if _, err := toc.ParseNaming(c.Naming); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries cannot be negative, got %d", c.Retries)
	}
	switch c.Format {
	case "yaml", "json":
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", c.Format)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.Log.Format)
	}
	return nil
}

// Options returns the partitioning options for this config.
func (c *Config) Options() toc.Options {
	return toc.Options{Deep: c.Deep, MergeSamePage: c.MergeSamePage}
}
