package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunIndexSyncAndCheck(t *testing.T) {
	dir := isolateWorkspace(t)
	writeNotes(t, dir, "install.txt", "Welcome!\n")
	writeNotes(t, dir, "1.0.0.txt", "p 1.0.0\n-------\n\nFix:\n - a\n")

	// check before sync reports out of sync.
	cmd, out, _ := newTestCmd(t)
	err := runIndexCheck(cmd)
	require.Error(t, err)
	assert.Equal(t, ExitLintFailed, ExitCode(err))
	assert.Contains(t, out.String(), "relnotes index sync")

	// sync writes the deterministic index.
	cmd, out, _ = newTestCmd(t)
	require.NoError(t, runIndexSync(cmd))
	assert.Contains(t, out.String(), "2 entries")

	raw, err := os.ReadFile(filepath.Join(dir, "messages.json"))
	require.NoError(t, err)
	expected := `{
  "install": "messages/install.txt",
  "1.0.0": "messages/1.0.0.txt"
}
`
	assert.Equal(t, expected, string(raw))

	// check now passes.
	cmd, out, _ = newTestCmd(t)
	require.NoError(t, runIndexCheck(cmd))
	assert.Contains(t, out.String(), "in sync")
}

func TestRunIndexCheck_StaleAfterNewNotes(t *testing.T) {
	dir := isolateWorkspace(t)
	writeNotes(t, dir, "1.0.0.txt", "p 1.0.0\n-------\n\nFix:\n - a\n")

	cmd, _, _ := newTestCmd(t)
	require.NoError(t, runIndexSync(cmd))

	writeNotes(t, dir, "1.1.0.txt", "p 1.1.0\n-------\n\nFix:\n - b\n")

	cmd, out, _ := newTestCmd(t)
	err := runIndexCheck(cmd)
	require.Error(t, err)
	assert.Equal(t, ExitLintFailed, ExitCode(err))
	assert.Contains(t, out.String(), "out of sync")
}

func TestRunIndexCheck_InvalidIndex(t *testing.T) {
	dir := isolateWorkspace(t)
	writeNotes(t, dir, "1.0.0.txt", "p 1.0.0\n-------\n\nFix:\n - a\n")

	// Index references a file that does not exist.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "messages.json"),
		[]byte("{\n  \"1.0.0\": \"messages/1.0.0.txt\",\n  \"2.0.0\": \"messages/2.0.0.txt\"\n}\n"), 0644))

	cmd, out, _ := newTestCmd(t)
	err := runIndexCheck(cmd)
	require.Error(t, err)
	assert.Equal(t, ExitLintFailed, ExitCode(err))
	assert.Contains(t, out.String(), "invalid")
}

func TestRunIndexSync_MissingMessagesDir(t *testing.T) {
	isolateWorkspace(t)

	cmd, _, _ := newTestCmd(t)
	err := runIndexSync(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "messages directory")
}
