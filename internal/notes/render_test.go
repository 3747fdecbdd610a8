package notes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleNotes), "")
	require.NoError(t, err)

	out, err := RenderMarkdownString(doc)
	require.NoError(t, err)

	expected := `## GitGutter 1.5.0

Thank you for using GitGutter!

### Enhancement
- Improve diff popup rendering
- Reduce the number of git calls when switching between views

### Fix
- Fix gutter icons not updating on save

### README
- Document the new settings

Love GitGutter? Star it on GitHub!
`
	assert.Equal(t, expected, out)
}

func TestRenderMarkdown_SkipsEmptySections(t *testing.T) {
	doc := &Document{
		Project: "p",
		Version: "1.0.0",
		Sections: []Section{
			{Name: "Feature"},
			{Name: "Fix", Items: []Item{{Text: "a fix"}}},
		},
	}

	out, err := RenderMarkdownString(doc)
	require.NoError(t, err)
	assert.NotContains(t, out, "### Feature")
	assert.Contains(t, out, "### Fix")
}

func TestRenderMarkdown_JoinsWrappedParagraphs(t *testing.T) {
	doc := &Document{
		Project: "p",
		Version: "1.0.0",
		Announcement: []string{
			"A sentence that was wrapped",
			"across two physical lines.",
			"",
			"A second paragraph.",
		},
	}

	out, err := RenderMarkdownString(doc)
	require.NoError(t, err)
	assert.Contains(t, out, "A sentence that was wrapped across two physical lines.\n")
	assert.Contains(t, out, "\nA second paragraph.\n")
}

func TestRenderMarkdown_Idempotent(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleNotes), "")
	require.NoError(t, err)

	first, err := RenderMarkdownString(doc)
	require.NoError(t, err)
	second, err := RenderMarkdownString(doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
