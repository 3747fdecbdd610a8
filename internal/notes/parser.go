package notes

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// ParseError reports a failure to parse a release-notes file. Only structural
// problems that make the document unusable (a missing or malformed header)
// are parse errors; style problems are reported by the linter instead.
type ParseError struct {
	Path    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

var (
	// headerPattern matches "Project Name 1.5.0" with an optional v prefix
	// and optional semver pre-release/build suffix.
	headerPattern = regexp.MustCompile(`^(\S.*?)\s+v?(\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?)\s*$`)

	// sectionPattern matches a section heading at column 0, e.g. "Fix:".
	sectionPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9 /_-]*):\s*$`)

	// bulletPattern matches a bullet line with up to three spaces of indent.
	bulletPattern = regexp.MustCompile(`^( {0,3})- (.*)$`)

	separatorPattern = regexp.MustCompile(`^-{3,}\s*$`)
)

// ParseFile reads and parses a release-notes file from the given path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening notes file: %w", err)
	}
	defer f.Close()

	return Parse(f, path)
}

// Parse reads a release-notes document from r. The path is recorded on the
// document and used in error messages; it may be empty.
//
// The parser is deliberately tolerant: unknown section names, misordered
// sections, and stray formatting are all accepted here and surfaced as lint
// findings. Parsing fails only when the header line is missing or malformed.
func Parse(r io.Reader, path string) (*Document, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("reading notes file: %w", err)
	}

	if len(lines) == 0 {
		return nil, &ParseError{Path: path, Line: 1, Message: "empty file, expected a header line"}
	}

	m := headerPattern.FindStringSubmatch(lines[0])
	if m == nil {
		return nil, &ParseError{
			Path:    path,
			Line:    1,
			Message: fmt.Sprintf("malformed header line %q (expected: <project> <version>)", lines[0]),
		}
	}

	doc := &Document{
		Project: m[1],
		Version: strings.ToLower(m[2]),
		Path:    path,
	}

	body := lines[1:]
	// The dashed separator directly follows the header. A missing separator
	// is a lint finding, not a parse failure.
	if len(body) > 0 && separatorPattern.MatchString(body[0]) {
		body = body[1:]
	}

	parseBody(doc, body)
	return doc, nil
}

// parseBody consumes the lines after the header and separator, splitting them
// into announcement, sections, and footer.
func parseBody(doc *Document, lines []string) {
	const (
		inAnnouncement = iota
		inSections
		inFooter
	)
	state := inAnnouncement
	var block []string

	for _, line := range lines {
		if heading := sectionPattern.FindStringSubmatch(line); heading != nil && state != inFooter {
			if state == inAnnouncement {
				doc.Announcement = trimBlankEdges(block)
				block = nil
			}
			state = inSections
			doc.Sections = append(doc.Sections, Section{Name: heading[1]})
			continue
		}

		switch state {
		case inAnnouncement:
			block = append(block, line)

		case inSections:
			if strings.TrimSpace(line) == "" {
				continue
			}
			if bullet := bulletPattern.FindStringSubmatch(line); bullet != nil {
				appendItem(doc, line, bullet[2])
				continue
			}
			if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
				appendContinuation(doc, line)
				continue
			}
			// Unindented prose after sections begins the footer block.
			state = inFooter
			block = append(block, line)

		case inFooter:
			block = append(block, line)
		}
	}

	switch state {
	case inAnnouncement:
		doc.Announcement = trimBlankEdges(block)
	case inFooter:
		doc.Footer = trimBlankEdges(block)
	}
}

// appendItem adds a new bullet item to the last section.
func appendItem(doc *Document, raw, text string) {
	s := &doc.Sections[len(doc.Sections)-1]
	s.Items = append(s.Items, Item{Text: strings.TrimSpace(text), Raw: []string{raw}})
}

// appendContinuation folds an indented continuation line into the previous
// bullet. A continuation before any bullet in the section is dropped; the
// linter flags it separately.
func appendContinuation(doc *Document, line string) {
	s := &doc.Sections[len(doc.Sections)-1]
	if len(s.Items) == 0 {
		return
	}
	item := &s.Items[len(s.Items)-1]
	item.Raw = append(item.Raw, line)
	item.Text = item.Text + " " + strings.TrimSpace(line)
}

// readLines reads all lines from r without trailing newlines.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// trimBlankEdges removes leading and trailing blank lines from a block.
func trimBlankEdges(block []string) []string {
	start := 0
	for start < len(block) && strings.TrimSpace(block[start]) == "" {
		start++
	}
	end := len(block)
	for end > start && strings.TrimSpace(block[end-1]) == "" {
		end--
	}
	if start == end {
		return nil
	}
	return block[start:end]
}

// NormalizeVersion normalizes a version string by removing the "v" prefix.
// This allows accepting both "v1.5.0" and "1.5.0" as input.
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(strings.ToLower(version), "v")
}
