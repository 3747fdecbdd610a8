package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/gutterlabs/relnotes/internal/notes"
	goyaml "gopkg.in/yaml.v3"
)

// Validate checks configuration values for consistency.
func Validate(cfg *Configuration) error {
	if cfg.MessagesDir == "" {
		return fmt.Errorf("messages_dir must not be empty")
	}
	if cfg.IndexFile == "" {
		return fmt.Errorf("index_file must not be empty")
	}
	if cfg.MaxLineLength < 0 {
		return fmt.Errorf("max_line_length must be >= 0, got %d", cfg.MaxLineLength)
	}

	seen := make(map[string]bool)
	for _, name := range cfg.Sections {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("sections must not contain empty names")
		}
		if seen[name] {
			return fmt.Errorf("duplicate section %q in sections", name)
		}
		seen[name] = true
	}

	known := make(map[string]bool)
	for _, r := range notes.Rules() {
		known[r.ID] = true
	}
	for rule, value := range cfg.Rules {
		if !known[rule] {
			return fmt.Errorf("unknown lint rule %q in rules", rule)
		}
		if _, err := notes.ParseSeverity(value); err != nil {
			return fmt.Errorf("rule %q: %w", rule, err)
		}
	}
	return nil
}

// ValidateYAMLSyntax parses the file with yaml.v3 to produce syntax errors
// with line information before handing the file to koanf.
func ValidateYAMLSyntax(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var doc interface{}
	if err := goyaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	return nil
}
