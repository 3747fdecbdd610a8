// Package index manages the messages.json file that maps release versions to
// their note files. The index lives at the repository root and references
// files inside the messages directory, e.g.:
//
//	{
//	  "install": "messages/install.txt",
//	  "1.5.0": "messages/1.5.0.txt"
//	}
package index

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gutterlabs/relnotes/internal/notes"
)

// InstallKey is the special index key for the file shown on first install.
const InstallKey = "install"

// Index maps version keys (plus the special "install" key) to relative paths.
type Index map[string]string

// ValidationError reports an index consistency problem.
type ValidationError struct {
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s: %s", e.Key, e.Message)
	}
	return e.Message
}

// Load reads and parses a messages.json file.
func Load(path string) (Index, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading index file: %w", err)
	}

	var idx Index
	if err := json.Unmarshal(raw, &idx); err != nil {
		return nil, fmt.Errorf("parsing index JSON: %w", err)
	}
	return idx, nil
}

// Validate checks index consistency against the messages directory:
// every key must be a valid semver or "install", every referenced file must
// exist relative to root, and every versioned notes file must be indexed.
func Validate(idx Index, root, messagesDir string) error {
	for key, path := range idx {
		if key != InstallKey && !notes.IsSemver(notes.NormalizeVersion(key)) {
			return &ValidationError{Key: key, Message: "key is neither a version nor \"install\""}
		}
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(path))); err != nil {
			return &ValidationError{Key: key, Message: fmt.Sprintf("referenced file %q does not exist", path)}
		}
	}

	for _, version := range versionedFiles(filepath.Join(root, messagesDir)) {
		if _, ok := idx[version]; !ok {
			return &ValidationError{
				Key:     version,
				Message: fmt.Sprintf("notes file %s/%s.txt is not listed in the index", messagesDir, version),
			}
		}
	}
	return nil
}

// Generate builds a fresh index from the messages directory. The install
// entry is included when messages/install.txt exists.
func Generate(root, messagesDir string) (Index, error) {
	dir := filepath.Join(root, messagesDir)
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("messages directory %s: %w", messagesDir, err)
	}

	idx := Index{}
	for _, version := range versionedFiles(dir) {
		idx[version] = relPath(messagesDir, version+".txt")
	}
	if _, err := os.Stat(filepath.Join(dir, "install.txt")); err == nil {
		idx[InstallKey] = relPath(messagesDir, "install.txt")
	}
	return idx, nil
}

// Render serializes the index deterministically: the install entry first,
// then versions in ascending semver order, two-space indent, trailing newline.
func Render(idx Index) []byte {
	keys := make([]string, 0, len(idx))
	for key := range idx {
		if key != InstallKey {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return notes.CompareVersions(keys[i], keys[j]) < 0
	})
	if _, ok := idx[InstallKey]; ok {
		keys = append([]string{InstallKey}, keys...)
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, key := range keys {
		fmt.Fprintf(&buf, "  %q: %q", key, idx[key])
		if i < len(keys)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes()
}

// Write renders the index and writes it to path.
func Write(idx Index, path string) error {
	if err := os.WriteFile(path, Render(idx), 0644); err != nil {
		return fmt.Errorf("writing index file: %w", err)
	}
	return nil
}

// Check reports whether the index file at path matches what Generate would
// produce from the messages directory. Returns the rendered expected content
// for diagnostics.
func Check(root, messagesDir, path string) (bool, []byte, error) {
	expected, err := Generate(root, messagesDir)
	if err != nil {
		return false, nil, err
	}
	want := Render(expected)

	actual, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, want, nil
		}
		return false, nil, fmt.Errorf("reading index file: %w", err)
	}
	return bytes.Equal(want, actual), want, nil
}

// versionedFiles lists the semver stems of *.txt files in dir, unsorted.
func versionedFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var versions []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), ".txt")
		if notes.IsSemver(notes.NormalizeVersion(stem)) {
			versions = append(versions, stem)
		}
	}
	return versions
}

// relPath joins index path segments with forward slashes regardless of OS,
// since messages.json paths are consumed as slash-separated.
func relPath(parts ...string) string {
	return strings.Join(parts, "/")
}
