package notes

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Set holds all release-notes documents from a messages directory,
// ordered newest first.
type Set struct {
	Dir       string
	Documents []*Document
}

// VersionNotFoundError is returned when a requested version doesn't exist.
type VersionNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// LoadDir parses every versioned *.txt file in the given messages directory.
// Files whose name stem is not a semantic version (e.g., install.txt) are
// skipped. Documents are ordered newest first.
func LoadDir(dir string) (*Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading messages directory: %w", err)
	}

	set := &Set{Dir: dir}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), ".txt")
		if !IsSemver(NormalizeVersion(stem)) {
			continue
		}
		doc, err := ParseFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		set.Documents = append(set.Documents, doc)
	}

	sort.Slice(set.Documents, func(i, j int) bool {
		return CompareVersions(set.Documents[i].Version, set.Documents[j].Version) > 0
	})

	return set, nil
}

// Get retrieves the document for a specific version. Accepts both "v1.5.0"
// and "1.5.0" (the input is normalized). Returns VersionNotFoundError if the
// version doesn't exist.
func (s *Set) Get(version string) (*Document, error) {
	normalized := NormalizeVersion(version)
	for _, doc := range s.Documents {
		if doc.Version == normalized {
			return doc, nil
		}
	}
	return nil, &VersionNotFoundError{
		Version:           version,
		AvailableVersions: s.Versions(),
	}
}

// Versions returns all version identifiers in the set, newest first.
func (s *Set) Versions() []string {
	versions := make([]string, len(s.Documents))
	for i, doc := range s.Documents {
		versions[i] = doc.Version
	}
	return versions
}

// Latest returns the most recent release, or nil for an empty set.
func (s *Set) Latest() *Document {
	if len(s.Documents) == 0 {
		return nil
	}
	return s.Documents[0]
}

// AllEntries returns all entries from all documents, newest version first.
func (s *Set) AllEntries() []Entry {
	var entries []Entry
	for _, doc := range s.Documents {
		entries = append(entries, doc.Entries()...)
	}
	return entries
}

// LastN returns the N most recent entries across all versions.
// If N exceeds the total entry count, all entries are returned.
func (s *Set) LastN(n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}
	entries := s.AllEntries()
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// EntryCount returns the total number of entries across all documents.
func (s *Set) EntryCount() int {
	count := 0
	for _, doc := range s.Documents {
		count += doc.Count()
	}
	return count
}
