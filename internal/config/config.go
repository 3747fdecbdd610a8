// Package config provides hierarchical configuration management for relnotes
// using koanf. Configuration is loaded with priority: environment variables >
// project config (.relnotes.yml) > user config (XDG relnotes/config.yml) >
// defaults.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gutterlabs/relnotes/internal/notes"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration represents the relnotes CLI tool configuration.
type Configuration struct {
	// Project is the project name expected in every header line.
	// Empty accepts any name (the linter still flags per-file problems).
	Project string `koanf:"project"`

	// MessagesDir is the directory of per-version notes files,
	// relative to the repository root.
	MessagesDir string `koanf:"messages_dir"`

	// IndexFile is the messages index path relative to the repository root.
	IndexFile string `koanf:"index_file"`

	// Sections is the allowed section list in canonical order.
	Sections []string `koanf:"sections"`

	// MaxLineLength is the maximum line length in characters; 0 disables.
	MaxLineLength int `koanf:"max_line_length"`

	// RemoteURL is the base URL for fetching published notes files
	// (the version filename is appended). Used by 'show --remote'.
	RemoteURL string `koanf:"remote_url"`

	// Rules overrides lint rule severities by rule ID.
	// Values: "off", "warning", "error".
	Rules map[string]string `koanf:"rules"`
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults.
//
// Paths:
//   - User config: ~/.config/relnotes/config.yml (XDG compliant)
//   - Project config: .relnotes.yml (override with projectConfigPath)
//   - Legacy project config: .relnotes.json (deprecated, warns on stderr)
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithWarnings(projectConfigPath, os.Stderr)
}

// LoadWithWarnings is Load with an explicit destination for deprecation
// warnings, for testing.
func LoadWithWarnings(projectConfigPath string, warnings io.Writer) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if userPath, err := UserConfigPath(); err == nil {
		if err := loadYAMLConfig(k, userPath, "user"); err != nil {
			return nil, err
		}
	}

	projectPath := ProjectConfigPath()
	if projectConfigPath != "" {
		projectPath = projectConfigPath
	}
	if fileExists(projectPath) {
		if err := loadYAMLConfig(k, projectPath, "project"); err != nil {
			return nil, err
		}
	} else if legacyPath := LegacyProjectConfigPath(); fileExists(legacyPath) {
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load legacy project config %s: %w", legacyPath, err)
		}
		fmt.Fprintf(warnings, "Warning: Using deprecated JSON config at %s\n", legacyPath)
		fmt.Fprintf(warnings, "  Rename it to %s in YAML format.\n\n", ProjectConfigPath())
	}

	if err := k.Load(env.Provider("RELNOTES_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// loadYAMLConfig validates and loads a YAML config file if it exists.
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if !fileExists(path) {
		return nil
	}
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// LintConfig converts the configuration into a linter configuration,
// parsing the per-rule severity overrides.
func (c *Configuration) LintConfig() (notes.LintConfig, error) {
	severities := make(map[string]notes.Severity, len(c.Rules))
	for rule, value := range c.Rules {
		sev, err := notes.ParseSeverity(value)
		if err != nil {
			return notes.LintConfig{}, fmt.Errorf("rule %q: %w", rule, err)
		}
		severities[rule] = sev
	}

	return notes.LintConfig{
		Project:       c.Project,
		Sections:      c.Sections,
		MaxLineLength: c.MaxLineLength,
		Severities:    severities,
	}, nil
}

// fileExists returns true if the file exists and is readable.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// Example: RELNOTES_MAX_LINE_LENGTH -> max_line_length
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "RELNOTES_"))
}
