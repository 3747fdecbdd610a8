package notes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaffold(t *testing.T) {
	out := Scaffold("myproject", "1.2.0")

	doc, err := Parse(strings.NewReader(out), "messages/1.2.0.txt")
	require.NoError(t, err)
	assert.Equal(t, "myproject", doc.Project)
	assert.Equal(t, "1.2.0", doc.Version)
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "Feature", doc.Sections[0].Name)
	assert.Equal(t, "Fix", doc.Sections[1].Name)
}

func TestScaffold_PassesLinter(t *testing.T) {
	out := Scaffold("My Project", "10.20.30")

	linter := NewLinter(LintConfig{MaxLineLength: 80})
	assert.Empty(t, linter.Lint([]byte(out), "messages/10.20.30.txt"))
}
