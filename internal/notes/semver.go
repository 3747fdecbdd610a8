package notes

import (
	"regexp"
	"strconv"
	"strings"
)

// semver is a parsed semantic version used for ordering release-notes files.
type semver struct {
	major, minor, patch int
	pre                 []string
}

var semverPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:-([0-9A-Za-z.-]+))?(?:\+[0-9A-Za-z.-]+)?$`)

// IsSemver reports whether s is a valid bare semantic version.
func IsSemver(s string) bool {
	return semverPattern.MatchString(s)
}

func parseSemver(s string) (semver, bool) {
	m := semverPattern.FindStringSubmatch(s)
	if m == nil {
		return semver{}, false
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])
	v := semver{major: major, minor: minor, patch: patch}
	if m[4] != "" {
		v.pre = strings.Split(m[4], ".")
	}
	return v, true
}

// CompareVersions orders two version strings per semver 2.0 precedence.
// Returns -1 if a < b, 0 if equal, 1 if a > b. Strings that fail to parse
// sort before valid versions, compared lexically among themselves.
func CompareVersions(a, b string) int {
	va, okA := parseSemver(NormalizeVersion(a))
	vb, okB := parseSemver(NormalizeVersion(b))
	switch {
	case !okA && !okB:
		return strings.Compare(a, b)
	case !okA:
		return -1
	case !okB:
		return 1
	}
	return va.compare(vb)
}

func (a semver) compare(b semver) int {
	if c := cmpInt(a.major, b.major); c != 0 {
		return c
	}
	if c := cmpInt(a.minor, b.minor); c != 0 {
		return c
	}
	if c := cmpInt(a.patch, b.patch); c != 0 {
		return c
	}
	return comparePrerelease(a.pre, b.pre)
}

// comparePrerelease implements semver pre-release precedence: a release
// outranks any pre-release, numeric identifiers compare numerically and rank
// below alphanumeric ones, and a longer identifier list wins a tie.
func comparePrerelease(a, b []string) int {
	switch {
	case len(a) == 0 && len(b) == 0:
		return 0
	case len(a) == 0:
		return 1
	case len(b) == 0:
		return -1
	}

	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareIdentifier(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmpInt(len(a), len(b))
}

func compareIdentifier(a, b string) int {
	na, aNum := strconv.Atoi(a)
	nb, bNum := strconv.Atoi(b)
	switch {
	case aNum == nil && bNum == nil:
		return cmpInt(na, nb)
	case aNum == nil:
		return -1
	case bNum == nil:
		return 1
	}
	return strings.Compare(a, b)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
