package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig verifies the built-in defaults
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Basename != "frame" {
		t.Errorf("Basename = %q, want frame", cfg.Basename)
	}
	if cfg.StartIndex != 1 {
		t.Errorf("StartIndex = %d, want 1", cfg.StartIndex)
	}
	if cfg.ZeroPadding != 0 {
		t.Errorf("ZeroPadding = %d, want 0", cfg.ZeroPadding)
	}
	if cfg.SortMode != "name" {
		t.Errorf("SortMode = %q, want name", cfg.SortMode)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults failed validation: %v", err)
	}
}

// TestLoadConfigMissingFile verifies an absent file yields defaults
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Basename != "frame" || cfg.StartIndex != 1 {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

// TestLoadConfigOverrides verifies file values merge over defaults
func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `basename: shot
start_index: 100
zero_padding: 4
prefix: "sc01_"
sort_mode: modified
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Basename != "shot" {
		t.Errorf("Basename = %q, want shot", cfg.Basename)
	}
	if cfg.StartIndex != 100 {
		t.Errorf("StartIndex = %d, want 100", cfg.StartIndex)
	}
	if cfg.ZeroPadding != 4 {
		t.Errorf("ZeroPadding = %d, want 4", cfg.ZeroPadding)
	}
	if cfg.Prefix != "sc01_" {
		t.Errorf("Prefix = %q, want sc01_", cfg.Prefix)
	}
	if cfg.SortMode != "modified" {
		t.Errorf("SortMode = %q, want modified", cfg.SortMode)
	}
	// Unspecified keys keep their defaults.
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

// TestLoadConfigMalformed verifies invalid yaml is an error
func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("basename: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig() succeeded on malformed yaml")
	}
}

// TestLoadConfigFromDir verifies the .pngseq/config.yaml location
func TestLoadConfigFromDir(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, ".pngseq")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("basename: clip\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfigFromDir(dir)
	if err != nil {
		t.Fatalf("LoadConfigFromDir() error = %v", err)
	}
	if cfg.Basename != "clip" {
		t.Errorf("Basename = %q, want clip", cfg.Basename)
	}
}

// TestMergeWithFlags verifies only non-nil flags override
func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()

	basename := "render"
	start := 50
	cfg.MergeWithFlags(&basename, &start, nil, nil, nil, nil, nil)

	if cfg.Basename != "render" {
		t.Errorf("Basename = %q, want render", cfg.Basename)
	}
	if cfg.StartIndex != 50 {
		t.Errorf("StartIndex = %d, want 50", cfg.StartIndex)
	}
	if cfg.SortMode != "name" {
		t.Errorf("SortMode = %q, want name (unchanged)", cfg.SortMode)
	}
}

// TestValidateRejectsBadValues verifies each validation rule
func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty basename", func(c *Config) { c.Basename = "" }},
		{"whitespace basename", func(c *Config) { c.Basename = "   " }},
		{"negative padding", func(c *Config) { c.ZeroPadding = -1 }},
		{"bad sort mode", func(c *Config) { c.SortMode = "size" }},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() succeeded, want error")
			}
		})
	}
}
