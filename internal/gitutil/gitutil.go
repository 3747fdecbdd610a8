// Package gitutil provides the git repository queries relnotes needs for
// cross-checking release notes against tags. It uses the go-git library, so
// no git CLI installation is required.
package gitutil

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-git/go-git/v5"

	"github.com/gutterlabs/relnotes/internal/notes"
)

// openRepo opens a git repository at the specified path or current working
// directory, traversing up the directory tree to find the repository root.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// IsRepository checks if the given path is within a git repository.
func IsRepository(path string) bool {
	_, err := openRepo(path)
	return err == nil
}

// ListTags returns all tag names in the repository, sorted by semver
// precedence descending. Non-semver tags sort last.
func ListTags(path string) ([]string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}

	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer iter.Close()

	var tags []string
	for {
		ref, err := iter.Next()
		if err != nil {
			break
		}
		tags = append(tags, ref.Name().Short())
	}

	sort.Slice(tags, func(i, j int) bool {
		return notes.CompareVersions(tags[i], tags[j]) > 0
	})
	return tags, nil
}

// TaggedVersions returns the set of normalized semver versions that have a
// tag in the repository. Both "v1.5.0" and "1.5.0" tag styles are accepted.
func TaggedVersions(path string) (map[string]bool, error) {
	tags, err := ListTags(path)
	if err != nil {
		return nil, err
	}

	versions := make(map[string]bool, len(tags))
	for _, tag := range tags {
		v := notes.NormalizeVersion(tag)
		if notes.IsSemver(v) {
			versions[v] = true
		}
	}
	return versions, nil
}

// LatestTaggedVersion returns the highest semver version with a tag, or an
// empty string when the repository has no semver tags.
func LatestTaggedVersion(path string) (string, error) {
	tags, err := ListTags(path)
	if err != nil {
		return "", err
	}
	for _, tag := range tags {
		v := notes.NormalizeVersion(tag)
		if notes.IsSemver(v) {
			return v, nil
		}
	}
	return "", nil
}
