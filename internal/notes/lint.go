package notes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// Severity is the level assigned to a lint finding.
type Severity int

const (
	SeverityOff Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the lowercase name used in config files and output.
func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a config string into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "off":
		return SeverityOff, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	}
	return SeverityOff, fmt.Errorf("invalid severity %q (expected: off, warning, error)", s)
}

// Rule describes a single lint check.
type Rule struct {
	ID      string
	Summary string
	Default Severity
}

// Rules returns all known lint rules with their default severities.
func Rules() []Rule {
	return []Rule{
		{"header-format", "first line must be '<project> <version>'", SeverityError},
		{"version-filename", "header version must match the filename stem", SeverityError},
		{"separator-length", "second line must be dashes matching the header length", SeverityError},
		{"unknown-section", "section name must be one of the configured sections", SeverityError},
		{"section-order", "sections must appear in canonical order", SeverityWarning},
		{"duplicate-section", "each section may appear at most once", SeverityError},
		{"empty-section", "a section must contain at least one bullet", SeverityError},
		{"bullet-dash", "every bullet line must begin with '- '", SeverityError},
		{"bullet-blank", "a bullet must have non-empty text", SeverityError},
		{"tab-indent", "indentation must use spaces, not tabs", SeverityWarning},
		{"trailing-whitespace", "lines must not end with whitespace", SeverityWarning},
		{"line-length", "lines must not exceed the configured maximum length", SeverityWarning},
		{"final-newline", "file must end with a newline", SeverityWarning},
		// missing-tag is checked by the CLI against the git repository,
		// not by the text linter; it lives here so severity overrides work.
		{"missing-tag", "released versions should have a matching git tag", SeverityWarning},
	}
}

// Finding is a single lint result tied to a file location.
type Finding struct {
	Path     string   `json:"path"`
	Line     int      `json:"line"`
	Rule     string   `json:"rule"`
	Severity Severity `json:"-"`
	Message  string   `json:"message"`
}

// String formats the finding in the conventional path:line style.
func (f Finding) String() string {
	return fmt.Sprintf("%s:%d: %s: %s [%s]", f.Path, f.Line, f.Severity, f.Message, f.Rule)
}

// LintConfig controls which checks run and how strict they are.
type LintConfig struct {
	// Project is the expected project name in headers; empty accepts any.
	Project string
	// Sections is the allowed section list in canonical order.
	Sections []string
	// MaxLineLength is the maximum line length in runes; 0 disables the check.
	MaxLineLength int
	// Severities overrides the default severity per rule ID.
	Severities map[string]Severity
}

// Linter runs the lint rules over release-notes files.
type Linter struct {
	cfg       LintConfig
	order     map[string]int
	severity  map[string]Severity
	ruleIndex map[string]Rule
}

// NewLinter builds a Linter from the given configuration. Empty Sections
// falls back to DefaultSections.
func NewLinter(cfg LintConfig) *Linter {
	if len(cfg.Sections) == 0 {
		cfg.Sections = DefaultSections()
	}

	order := make(map[string]int, len(cfg.Sections))
	for i, name := range cfg.Sections {
		order[name] = i
	}

	severity := make(map[string]Severity)
	ruleIndex := make(map[string]Rule)
	for _, r := range Rules() {
		ruleIndex[r.ID] = r
		if s, ok := cfg.Severities[r.ID]; ok {
			severity[r.ID] = s
		} else {
			severity[r.ID] = r.Default
		}
	}

	return &Linter{cfg: cfg, order: order, severity: severity, ruleIndex: ruleIndex}
}

// LintFile lints a single release-notes file.
func (l *Linter) LintFile(path string) ([]Finding, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading notes file: %w", err)
	}
	return l.Lint(raw, path), nil
}

// Lint runs all enabled rules over raw file content. A document that fails
// to parse yields a single header-format finding plus the text-level checks.
func (l *Linter) Lint(raw []byte, path string) []Finding {
	var findings []Finding
	add := func(rule string, line int, format string, args ...any) {
		sev := l.severity[rule]
		if sev == SeverityOff {
			return
		}
		findings = append(findings, Finding{
			Path:     path,
			Line:     line,
			Rule:     rule,
			Severity: sev,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	lines := splitLines(raw)
	l.checkText(lines, raw, add)

	doc, err := Parse(bytes.NewReader(raw), path)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			add("header-format", pe.Line, "%s", pe.Message)
		} else {
			add("header-format", 1, "cannot parse file: %v", err)
		}
		sortFindings(findings)
		return findings
	}

	l.checkHeader(doc, lines, add)
	l.checkSections(doc, lines, add)
	l.checkBullets(lines, add)

	sortFindings(findings)
	return findings
}

// LintDir lints every versioned *.txt file in the directory, running files
// concurrently. Findings are ordered by path then line.
func (l *Linter) LintDir(ctx context.Context, dir string) ([]Finding, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading messages directory: %w", err)
	}

	var (
		mu       sync.Mutex
		findings []Finding
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		if !IsSemver(NormalizeVersion(strings.TrimSuffix(e.Name(), ".txt"))) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fs, err := l.LintFile(path)
			if err != nil {
				return err
			}
			mu.Lock()
			findings = append(findings, fs...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Path != findings[j].Path {
			return findings[i].Path < findings[j].Path
		}
		return findings[i].Line < findings[j].Line
	})
	return findings, nil
}

// RuleSeverity returns the effective severity for a rule ID, accounting for
// configured overrides.
func (l *Linter) RuleSeverity(id string) Severity {
	return l.severity[id]
}

// HasErrors reports whether any finding has error severity.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// checkText runs the raw text-level rules that need no parsed document.
func (l *Linter) checkText(lines []string, raw []byte, add addFunc) {
	for i, line := range lines {
		n := i + 1
		if strings.Contains(leadingWhitespace(line), "\t") {
			add("tab-indent", n, "indentation uses a tab character")
		}
		if trimmed := strings.TrimRight(line, " \t"); trimmed != line {
			add("trailing-whitespace", n, "line ends with whitespace")
		}
		if l.cfg.MaxLineLength > 0 {
			if width := utf8.RuneCountInString(line); width > l.cfg.MaxLineLength {
				add("line-length", n, "line is %d characters (max %d)", width, l.cfg.MaxLineLength)
			}
		}
	}
	if len(raw) > 0 && raw[len(raw)-1] != '\n' {
		add("final-newline", len(lines), "file does not end with a newline")
	}
}

// checkHeader validates the header line, filename agreement, and separator.
func (l *Linter) checkHeader(doc *Document, lines []string, add addFunc) {
	if l.cfg.Project != "" && doc.Project != l.cfg.Project {
		add("header-format", 1, "header names project %q, expected %q", doc.Project, l.cfg.Project)
	}

	if doc.Path != "" {
		stem := strings.TrimSuffix(filepath.Base(doc.Path), ".txt")
		if IsSemver(NormalizeVersion(stem)) && NormalizeVersion(stem) != doc.Version {
			add("version-filename", 1, "header version %q does not match filename %q", doc.Version, filepath.Base(doc.Path))
		}
	}

	headerLen := len(lines[0])
	if len(lines) < 2 || !separatorPattern.MatchString(lines[1]) {
		add("separator-length", 2, "header must be followed by a dashed separator line")
	} else if sep := strings.TrimRight(lines[1], " \t"); len(sep) != headerLen {
		add("separator-length", 2, "separator is %d dashes, header is %d characters", len(sep), headerLen)
	}
}

// checkSections validates section names, ordering, uniqueness, and content.
func (l *Linter) checkSections(doc *Document, lines []string, add addFunc) {
	seen := make(map[string]bool)
	lastOrder := -1
	for _, s := range doc.Sections {
		line := sectionLine(lines, s.Name)

		idx, known := l.order[s.Name]
		if !known {
			add("unknown-section", line, "unknown section %q (allowed: %s)", s.Name, strings.Join(l.cfg.Sections, ", "))
		}

		if seen[s.Name] {
			add("duplicate-section", line, "section %q appears more than once", s.Name)
		}
		seen[s.Name] = true

		if known {
			if idx < lastOrder {
				add("section-order", line, "section %q is out of order (expected: %s)", s.Name, strings.Join(l.cfg.Sections, ", "))
			}
			if idx > lastOrder {
				lastOrder = idx
			}
		}

		if len(s.Items) == 0 {
			add("empty-section", line, "section %q has no bullets", s.Name)
		}
		for _, item := range s.Items {
			if item.Text == "" {
				add("bullet-blank", itemLine(lines, item), "bullet has no text")
			}
		}
	}
}

// checkBullets re-scans the section region for lines that should be bullets
// but use the wrong marker or are unattached continuations.
func (l *Linter) checkBullets(lines []string, add addFunc) {
	inSection := false
	sawBullet := false
	for i, line := range lines {
		n := i + 1
		if n <= 2 {
			continue
		}
		if sectionPattern.MatchString(line) {
			inSection = true
			sawBullet = false
			continue
		}
		if !inSection || strings.TrimSpace(line) == "" {
			continue
		}
		if bulletPattern.MatchString(line) {
			sawBullet = true
			continue
		}
		expanded := strings.ReplaceAll(line, "\t", " ")
		if strings.HasPrefix(expanded, " ") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "•") {
				marker, _ := utf8.DecodeRuneInString(trimmed)
				add("bullet-dash", n, "bullet uses %q, expected '- '", string(marker))
			} else if strings.HasPrefix(trimmed, "-") {
				add("bullet-dash", n, "bullet is missing a space after the dash")
			} else if !sawBullet {
				add("bullet-dash", n, "indented line has no preceding bullet")
			}
			continue
		}
		// Unindented prose starts the footer; bullet scanning stops there.
		return
	}
}

type addFunc func(rule string, line int, format string, args ...any)

// sectionLine finds the 1-based line number of a section heading.
func sectionLine(lines []string, name string) int {
	for i, line := range lines {
		if m := sectionPattern.FindStringSubmatch(line); m != nil && m[1] == name {
			return i + 1
		}
	}
	return 1
}

// itemLine finds the 1-based line number of an item's first raw line.
func itemLine(lines []string, item Item) int {
	if len(item.Raw) == 0 {
		return 1
	}
	for i, line := range lines {
		if line == item.Raw[0] {
			return i + 1
		}
	}
	return 1
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func splitLines(raw []byte) []string {
	s := strings.TrimSuffix(string(raw), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func sortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Line < findings[j].Line
	})
}
