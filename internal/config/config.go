// Package config loads pngseq configuration: the default naming
// parameters for a directory plus logging options. Values come from
// built-in defaults, then the directory's config file, then CLI flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gouravbhagat/pngseq/internal/fileutil"
)

// Config represents pngseq configuration options.
type Config struct {
	// Basename is the default stem for generated names.
	Basename string `yaml:"basename"`

	// StartIndex is the sequence number of the first file.
	StartIndex int `yaml:"start_index"`

	// ZeroPadding is the index width (0 = auto-derive from batch size).
	ZeroPadding int `yaml:"zero_padding"`

	// Prefix is prepended before the basename.
	Prefix string `yaml:"prefix"`

	// Suffix is inserted between the index and the extension.
	Suffix string `yaml:"suffix"`

	// SortMode orders the listing: name, modified, or created.
	SortMode string `yaml:"sort_mode"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory batch log files are written to,
	// relative to the renamed directory.
	LogDir string `yaml:"log_dir"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Basename:    "frame",
		StartIndex:  1,
		ZeroPadding: 0, // Auto
		Prefix:      "",
		Suffix:      "",
		SortMode:    string(fileutil.SortByName),
		LogLevel:    "info",
		LogDir:      filepath.Join(".pngseq", "logs"),
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from the file over the defaults. A padding
	// of zero already means auto, so an explicit zero needs no merge.
	if fileCfg.Basename != "" {
		cfg.Basename = fileCfg.Basename
	}
	if fileCfg.StartIndex != 0 {
		cfg.StartIndex = fileCfg.StartIndex
	}
	if fileCfg.ZeroPadding != 0 {
		cfg.ZeroPadding = fileCfg.ZeroPadding
	}
	if fileCfg.Prefix != "" {
		cfg.Prefix = fileCfg.Prefix
	}
	if fileCfg.Suffix != "" {
		cfg.Suffix = fileCfg.Suffix
	}
	if fileCfg.SortMode != "" {
		cfg.SortMode = fileCfg.SortMode
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.LogDir != "" {
		cfg.LogDir = fileCfg.LogDir
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .pngseq/config.yaml in the
// specified directory. If the directory or file doesn't exist, returns
// default configuration without error.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".pngseq", "config.yaml"))
}

// MergeWithFlags merges CLI flags into the configuration. Non-nil flag
// values override configuration values, so explicitly set flags take
// precedence over the config file.
func (c *Config) MergeWithFlags(basename *string, startIndex *int, zeroPadding *int, prefix *string, suffix *string, sortMode *string, logLevel *string) {
	if basename != nil {
		c.Basename = *basename
	}
	if startIndex != nil {
		c.StartIndex = *startIndex
	}
	if zeroPadding != nil {
		c.ZeroPadding = *zeroPadding
	}
	if prefix != nil {
		c.Prefix = *prefix
	}
	if suffix != nil {
		c.Suffix = *suffix
	}
	if sortMode != nil {
		c.SortMode = *sortMode
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
}

// Validate validates the configuration values.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Basename) == "" {
		return fmt.Errorf("basename cannot be empty")
	}

	if c.ZeroPadding < 0 {
		return fmt.Errorf("zero_padding must be >= 0, got %d", c.ZeroPadding)
	}

	if _, err := fileutil.ParseSortMode(c.SortMode); err != nil {
		return err
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	return nil
}
