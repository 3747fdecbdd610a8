package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options.
func GetDefaultConfigTemplate() string {
	return `# relnotes configuration
# Project config: .relnotes.yml | User config: ~/.config/relnotes/config.yml
# Every key can also be set via RELNOTES_* environment variables.

project: ""                   # Expected project name in headers ("" = any)
messages_dir: messages        # Directory of per-version notes files
index_file: messages.json     # Messages index file at the repository root
max_line_length: 80           # Max line length in characters (0 = off)
remote_url: ""                # Base URL for 'show --remote'

# Allowed sections, in canonical order
sections:
  - Break
  - Feature
  - Enhancement
  - Fix
  - Internals
  - README

# Per-rule severity overrides: off | warning | error
rules: {}
#  line-length: off
#  section-order: error
`
}

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"project":      "",
		"messages_dir": "messages",
		"index_file":   "messages.json",
		// sections: canonical section list; ordering doubles as the
		// expected in-file ordering checked by the section-order rule.
		"sections": []string{"Break", "Feature", "Enhancement", "Fix", "Internals", "README"},
		// max_line_length: 80 keeps notes readable in the editor popups
		// these files are displayed in. 0 disables the check.
		"max_line_length": 80,
		"remote_url":      "",
		"rules":           map[string]string{},
	}
}
