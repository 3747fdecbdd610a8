package notes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMessages(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func notesFor(version, section, text string) string {
	header := "p " + version
	sep := ""
	for range header {
		sep += "-"
	}
	return header + "\n" + sep + "\n\n" + section + ":\n - " + text + "\n"
}

func TestLoadDir(t *testing.T) {
	dir := writeMessages(t, map[string]string{
		"1.0.0.txt":    notesFor("1.0.0", "Feature", "first release"),
		"1.10.0.txt":   notesFor("1.10.0", "Feature", "tenth minor"),
		"1.2.0.txt":    notesFor("1.2.0", "Fix", "a fix"),
		"install.txt":  "Welcome!\n",
		"notes.md":     "# not a notes file\n",
		"1.0.0.backup": "p 1.0.0\n-------\n",
	})

	set, err := LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"1.10.0", "1.2.0", "1.0.0"}, set.Versions())
	assert.Equal(t, "1.10.0", set.Latest().Version)
	assert.Equal(t, 3, set.EntryCount())
}

func TestLoadDir_MissingDir(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading messages directory")
}

func TestSet_Get(t *testing.T) {
	dir := writeMessages(t, map[string]string{
		"1.0.0.txt": notesFor("1.0.0", "Feature", "first release"),
		"1.1.0.txt": notesFor("1.1.0", "Fix", "a fix"),
	})
	set, err := LoadDir(dir)
	require.NoError(t, err)

	doc, err := set.Get("1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", doc.Version)

	// v-prefixed lookups are normalized.
	doc, err = set.Get("v1.1.0")
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", doc.Version)

	_, err = set.Get("9.9.9")
	require.Error(t, err)
	var notFound *VersionNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "9.9.9", notFound.Version)
	assert.Equal(t, []string{"1.1.0", "1.0.0"}, notFound.AvailableVersions)
}

func TestSet_LastN(t *testing.T) {
	dir := writeMessages(t, map[string]string{
		"1.0.0.txt": notesFor("1.0.0", "Feature", "oldest"),
		"1.1.0.txt": notesFor("1.1.0", "Fix", "middle"),
		"1.2.0.txt": notesFor("1.2.0", "Fix", "newest"),
	})
	set, err := LoadDir(dir)
	require.NoError(t, err)

	entries := set.LastN(2)
	require.Len(t, entries, 2)
	assert.Equal(t, "newest", entries[0].Text)
	assert.Equal(t, "1.2.0", entries[0].Version)
	assert.Equal(t, "middle", entries[1].Text)

	assert.Len(t, set.LastN(100), 3)
	assert.Empty(t, set.LastN(0))
	assert.Empty(t, set.LastN(-1))
}

func TestSet_Empty(t *testing.T) {
	set, err := LoadDir(t.TempDir())
	require.NoError(t, err)

	assert.Nil(t, set.Latest())
	assert.Empty(t, set.Versions())
	assert.Empty(t, set.AllEntries())
}
