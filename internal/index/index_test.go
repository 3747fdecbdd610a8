package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMessages creates a root directory with a messages/ subdirectory
// containing the given files.
func setupMessages(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "messages")
	require.NoError(t, os.Mkdir(dir, 0755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return root
}

func TestGenerate(t *testing.T) {
	root := setupMessages(t, map[string]string{
		"install.txt": "Welcome!\n",
		"1.0.0.txt":   "p 1.0.0\n",
		"1.10.0.txt":  "p 1.10.0\n",
		"1.2.0.txt":   "p 1.2.0\n",
		"draft.txt":   "not versioned\n",
	})

	idx, err := Generate(root, "messages")
	require.NoError(t, err)

	assert.Equal(t, Index{
		"install": "messages/install.txt",
		"1.0.0":   "messages/1.0.0.txt",
		"1.2.0":   "messages/1.2.0.txt",
		"1.10.0":  "messages/1.10.0.txt",
	}, idx)
}

func TestGenerate_MissingDir(t *testing.T) {
	_, err := Generate(t.TempDir(), "messages")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "messages directory")
}

func TestRender_Deterministic(t *testing.T) {
	idx := Index{
		"1.10.0":  "messages/1.10.0.txt",
		"install": "messages/install.txt",
		"1.2.0":   "messages/1.2.0.txt",
		"1.0.0":   "messages/1.0.0.txt",
	}

	expected := `{
  "install": "messages/install.txt",
  "1.0.0": "messages/1.0.0.txt",
  "1.2.0": "messages/1.2.0.txt",
  "1.10.0": "messages/1.10.0.txt"
}
`
	assert.Equal(t, expected, string(Render(idx)))

	// Rendering twice yields identical bytes.
	assert.Equal(t, Render(idx), Render(idx))
}

func TestRender_NoInstall(t *testing.T) {
	idx := Index{"1.0.0": "messages/1.0.0.txt"}
	assert.Equal(t, "{\n  \"1.0.0\": \"messages/1.0.0.txt\"\n}\n", string(Render(idx)))
}

func TestLoadAndWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.json")
	idx := Index{
		"install": "messages/install.txt",
		"1.0.0":   "messages/1.0.0.txt",
	}
	require.NoError(t, Write(idx, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, idx, loaded)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading index file")

	path := filepath.Join(t.TempDir(), "messages.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing index JSON")
}

func TestValidate(t *testing.T) {
	root := setupMessages(t, map[string]string{
		"install.txt": "Welcome!\n",
		"1.0.0.txt":   "p 1.0.0\n",
	})

	tests := map[string]struct {
		idx     Index
		wantErr string
	}{
		"valid": {
			idx: Index{
				"install": "messages/install.txt",
				"1.0.0":   "messages/1.0.0.txt",
			},
		},
		"bogus key": {
			idx: Index{
				"latest": "messages/1.0.0.txt",
				"1.0.0":  "messages/1.0.0.txt",
			},
			wantErr: `neither a version nor "install"`,
		},
		"referenced file missing": {
			idx: Index{
				"1.0.0": "messages/1.0.0.txt",
				"2.0.0": "messages/2.0.0.txt",
			},
			wantErr: "does not exist",
		},
		"notes file not listed": {
			idx:     Index{"install": "messages/install.txt"},
			wantErr: "not listed in the index",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := Validate(tt.idx, root, "messages")
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCheck(t *testing.T) {
	root := setupMessages(t, map[string]string{
		"install.txt": "Welcome!\n",
		"1.0.0.txt":   "p 1.0.0\n",
	})
	path := filepath.Join(root, "messages.json")

	// Missing index file is out of sync but not an error.
	inSync, want, err := Check(root, "messages", path)
	require.NoError(t, err)
	assert.False(t, inSync)
	assert.NotEmpty(t, want)

	// Writing the expected content brings it in sync.
	require.NoError(t, os.WriteFile(path, want, 0644))
	inSync, _, err = Check(root, "messages", path)
	require.NoError(t, err)
	assert.True(t, inSync)

	// Adding a notes file makes it stale again.
	require.NoError(t, os.WriteFile(filepath.Join(root, "messages", "1.1.0.txt"), []byte("p 1.1.0\n"), 0644))
	inSync, _, err = Check(root, "messages", path)
	require.NoError(t, err)
	assert.False(t, inSync)
}
