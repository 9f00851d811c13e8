package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/memdl/internal/download"
)

// Defaults applied when neither a flag nor the config file sets a value.
const (
	DefaultManifestPath = "json/memories_history.json"
	DefaultOutputDir    = "./downloads"
	DefaultLogFormat    = "text"
)

// Flag names shared by the CLI and LoadFromFile.
const (
	FlagOutput         = "output"
	FlagConcurrent     = "concurrent"
	FlagNoExif         = "no-exif"
	FlagNoSkipExisting = "no-skip-existing"
	FlagReport         = "report"
	FlagLogFormat      = "log-format"
)

// Config holds all runtime configuration for a memdl run.
type Config struct {
	ManifestPath   string
	OutputDir      string
	Concurrency    int
	NoExif         bool
	NoSkipExisting bool
	ReportPath     string // optional Parquet outcome report
	LogFormat      string // "text" or "json"
	Verbose        bool
	ConfigFile     string
}

// yamlConfig is the on-disk YAML structure. Pointer fields distinguish
// "unset" from zero values.
type yamlConfig struct {
	Output       *string `yaml:"output"`
	Concurrent   *int    `yaml:"concurrent"`
	Exif         *bool   `yaml:"exif"`
	SkipExisting *bool   `yaml:"skip_existing"`
	Report       *string `yaml:"report"`
	LogFormat    *string `yaml:"log_format"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Values for flags reported by explicit are left alone so the command line
// wins over the file. explicit may be nil.
func (c *Config) LoadFromFile(path string, explicit func(flag string) bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if explicit == nil {
		explicit = func(string) bool { return false }
	}

	if yc.Output != nil && !explicit(FlagOutput) {
		c.OutputDir = *yc.Output
	}
	if yc.Concurrent != nil && !explicit(FlagConcurrent) {
		c.Concurrency = *yc.Concurrent
	}
	if yc.Exif != nil && !explicit(FlagNoExif) {
		c.NoExif = !*yc.Exif
	}
	if yc.SkipExisting != nil && !explicit(FlagNoSkipExisting) {
		c.NoSkipExisting = !*yc.SkipExisting
	}
	if yc.Report != nil && !explicit(FlagReport) {
		c.ReportPath = *yc.Report
	}
	if yc.LogFormat != nil && !explicit(FlagLogFormat) {
		c.LogFormat = *yc.LogFormat
	}
	return nil
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.ManifestPath == "" {
		return fmt.Errorf("manifest path is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("--%s is required", FlagOutput)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("--%s must be at least 1, got %d", FlagConcurrent, c.Concurrency)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("--%s must be text or json, got %q", FlagLogFormat, c.LogFormat)
	}
	return nil
}

// Options converts the config into orchestrator options.
func (c *Config) Options() download.Options {
	return download.Options{
		OutputDir:     c.OutputDir,
		Concurrency:   c.Concurrency,
		EmbedMetadata: !c.NoExif,
		SkipExisting:  !c.NoSkipExisting,
	}
}
