package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gutterlabs/relnotes/internal/notes"
)

// chdir changes the working directory for the duration of the test,
// restoring the original directory during cleanup (t.Chdir needs Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

// isolateConfig points the user config dir and working directory at empty
// temp directories so tests never pick up real config files.
func isolateConfig(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	chdir(t, dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfig(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Project)
	assert.Equal(t, "messages", cfg.MessagesDir)
	assert.Equal(t, "messages.json", cfg.IndexFile)
	assert.Equal(t, notes.DefaultSections(), cfg.Sections)
	assert.Equal(t, 80, cfg.MaxLineLength)
	assert.Equal(t, "", cfg.RemoteURL)
	assert.Empty(t, cfg.Rules)
}

func TestLoad_ProjectConfig(t *testing.T) {
	dir := isolateConfig(t)

	content := `project: GitGutter
max_line_length: 100
rules:
  line-length: "off"
  section-order: error
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".relnotes.yml"), []byte(content), 0644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "GitGutter", cfg.Project)
	assert.Equal(t, 100, cfg.MaxLineLength)
	assert.Equal(t, "messages", cfg.MessagesDir)
	assert.Equal(t, map[string]string{"line-length": "off", "section-order": "error"}, cfg.Rules)
}

func TestLoad_ExplicitProjectConfigPath(t *testing.T) {
	isolateConfig(t)

	path := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("project: custom\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.Project)
}

func TestLoad_UserConfig(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	chdir(t, t.TempDir())

	userDir := filepath.Join(xdg, "relnotes")
	require.NoError(t, os.MkdirAll(userDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "config.yml"),
		[]byte("max_line_length: 120\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.MaxLineLength)
}

func TestLoad_ProjectOverridesUser(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := t.TempDir()
	chdir(t, dir)

	userDir := filepath.Join(xdg, "relnotes")
	require.NoError(t, os.MkdirAll(userDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "config.yml"),
		[]byte("project: fromuser\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".relnotes.yml"),
		[]byte("project: fromproject\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "fromproject", cfg.Project)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := isolateConfig(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".relnotes.yml"),
		[]byte("project: fromfile\n"), 0644))
	t.Setenv("RELNOTES_PROJECT", "fromenv")
	t.Setenv("RELNOTES_MESSAGES_DIR", "notes")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.Project)
	assert.Equal(t, "notes", cfg.MessagesDir)
}

func TestLoad_LegacyJSONConfig(t *testing.T) {
	dir := isolateConfig(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".relnotes.json"),
		[]byte(`{"project": "fromjson"}`), 0644))

	var warnings bytes.Buffer
	cfg, err := LoadWithWarnings("", &warnings)
	require.NoError(t, err)

	assert.Equal(t, "fromjson", cfg.Project)
	assert.Contains(t, warnings.String(), "deprecated JSON config")
}

func TestLoad_LegacyIgnoredWhenYAMLExists(t *testing.T) {
	dir := isolateConfig(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".relnotes.json"),
		[]byte(`{"project": "fromjson"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".relnotes.yml"),
		[]byte("project: fromyaml\n"), 0644))

	var warnings bytes.Buffer
	cfg, err := LoadWithWarnings("", &warnings)
	require.NoError(t, err)

	assert.Equal(t, "fromyaml", cfg.Project)
	assert.Empty(t, warnings.String())
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]struct {
		content string
		wantErr string
	}{
		"invalid yaml syntax": {
			content: "project: [unclosed\n",
			wantErr: "invalid YAML",
		},
		"unknown rule": {
			content: "rules:\n  no-such-rule: error\n",
			wantErr: "unknown lint rule",
		},
		"invalid severity": {
			content: "rules:\n  line-length: fatal\n",
			wantErr: "invalid severity",
		},
		"negative line length": {
			content: "max_line_length: -1\n",
			wantErr: "max_line_length",
		},
		"empty messages dir": {
			content: "messages_dir: \"\"\n",
			wantErr: "messages_dir",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := isolateConfig(t)
			require.NoError(t, os.WriteFile(filepath.Join(dir, ".relnotes.yml"),
				[]byte(tt.content), 0644))

			_, err := LoadWithWarnings("", io.Discard)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfiguration_LintConfig(t *testing.T) {
	cfg := &Configuration{
		Project:       "p",
		Sections:      []string{"Feature", "Fix"},
		MaxLineLength: 80,
		Rules:         map[string]string{"line-length": "off", "section-order": "error"},
	}

	lc, err := cfg.LintConfig()
	require.NoError(t, err)
	assert.Equal(t, "p", lc.Project)
	assert.Equal(t, []string{"Feature", "Fix"}, lc.Sections)
	assert.Equal(t, notes.SeverityOff, lc.Severities["line-length"])
	assert.Equal(t, notes.SeverityError, lc.Severities["section-order"])

	cfg.Rules = map[string]string{"line-length": "bogus"}
	_, err = cfg.LintConfig()
	require.Error(t, err)
}

func TestValidate_Sections(t *testing.T) {
	base := Configuration{MessagesDir: "messages", IndexFile: "messages.json"}

	cfg := base
	cfg.Sections = []string{"Feature", "Feature"}
	require.Error(t, Validate(&cfg))

	cfg = base
	cfg.Sections = []string{"Feature", " "}
	require.Error(t, Validate(&cfg))

	cfg = base
	cfg.Sections = []string{"Feature", "Fix"}
	require.NoError(t, Validate(&cfg))
}

func TestGetDefaultConfigTemplate_IsValidYAML(t *testing.T) {
	dir := isolateConfig(t)
	path := filepath.Join(dir, ".relnotes.yml")
	require.NoError(t, os.WriteFile(path, []byte(GetDefaultConfigTemplate()), 0644))

	require.NoError(t, ValidateYAMLSyntax(path))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "messages", cfg.MessagesDir)
	assert.Equal(t, 80, cfg.MaxLineLength)
}
