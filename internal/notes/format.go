package notes

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// SectionStyle defines the color and icon for a release-notes section.
type SectionStyle struct {
	Color *color.Color
	Icon  string
}

// sectionStyles maps section names to their terminal styling. Sections not
// listed here fall back to a neutral style.
var sectionStyles = map[string]SectionStyle{
	"Break":       {Color: color.New(color.FgRed), Icon: "✗"},
	"Feature":     {Color: color.New(color.FgGreen), Icon: "✓"},
	"Enhancement": {Color: color.New(color.FgBlue), Icon: "~"},
	"Fix":         {Color: color.New(color.FgYellow), Icon: "⚡"},
	"Internals":   {Color: color.New(color.FgMagenta), Icon: "⚙"},
	"README":      {Color: color.New(color.FgCyan), Icon: "✎"},
}

var defaultSectionStyle = SectionStyle{Color: color.New(color.FgWhite), Icon: "•"}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes entries to the writer with terminal styling.
// Entries are grouped by version with color-coded section headers.
func FormatTerminal(entries []Entry, w io.Writer, opts FormatOptions) error {
	if len(entries) == 0 {
		return nil
	}

	width := resolveWidth(opts.MaxWidth)
	for i, group := range groupEntriesByVersion(entries) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := formatVersionGroup(group, w, opts, width); err != nil {
			return fmt.Errorf("formatting version %s: %w", group.version, err)
		}
	}
	return nil
}

// FormatDocument writes a full document to the writer with terminal styling,
// including announcement and footer prose.
func FormatDocument(d *Document, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	if err := writeVersionHeader(d.Version, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	writeProse(d.Announcement, w, opts)

	for _, s := range d.Sections {
		if len(s.Items) == 0 {
			continue
		}
		entries := make([]Entry, len(s.Items))
		for i, item := range s.Items {
			entries[i] = Entry{Text: item.Text, Section: s.Name}
		}
		if err := writeSection(s.Name, entries, w, opts, width); err != nil {
			return err
		}
	}

	writeProse(d.Footer, w, opts)
	return nil
}

// versionGroup holds entries for a single version.
type versionGroup struct {
	version string
	entries []Entry
}

// groupEntriesByVersion groups entries by their version, preserving order.
func groupEntriesByVersion(entries []Entry) []versionGroup {
	var groups []versionGroup
	var current *versionGroup

	for _, e := range entries {
		if current == nil || current.version != e.Version {
			if current != nil {
				groups = append(groups, *current)
			}
			current = &versionGroup{version: e.Version}
		}
		current.entries = append(current.entries, e)
	}
	if current != nil {
		groups = append(groups, *current)
	}
	return groups
}

func formatVersionGroup(group versionGroup, w io.Writer, opts FormatOptions, width int) error {
	if err := writeVersionHeader(group.version, w, opts); err != nil {
		return err
	}

	bySection := make(map[string][]Entry)
	var order []string
	for _, e := range group.entries {
		if _, seen := bySection[e.Section]; !seen {
			order = append(order, e.Section)
		}
		bySection[e.Section] = append(bySection[e.Section], e)
	}

	for _, name := range order {
		if err := writeSection(name, bySection[name], w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// writeVersionHeader writes the version header line.
func writeVersionHeader(version string, w io.Writer, opts FormatOptions) error {
	header := "v" + version
	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}
	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// writeSection writes a single section header and its entries.
func writeSection(name string, entries []Entry, w io.Writer, opts FormatOptions, width int) error {
	style, ok := sectionStyles[name]
	if !ok {
		style = defaultSectionStyle
	}

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n### %s\n", name); err != nil {
			return err
		}
	} else {
		colored := style.Color.SprintFunc()
		if _, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(name)); err != nil {
			return err
		}
	}

	for _, entry := range entries {
		if err := writeEntry(entry, style, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// writeEntry writes a single entry with optional wrapping.
func writeEntry(entry Entry, style SectionStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "
	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, entry.Text)
		return err
	}

	wrapped := wrapText(entry.Text, width-len(prefix), "    ")
	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// writeProse writes an announcement or footer block as dim prose.
func writeProse(block []string, w io.Writer, opts FormatOptions) {
	if len(block) == 0 {
		return
	}
	fmt.Fprintln(w)
	dim := color.New(color.Faint).SprintFunc()
	for _, line := range block {
		if opts.Plain {
			fmt.Fprintln(w, line)
		} else {
			fmt.Fprintln(w, dim(line))
		}
	}
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text
	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}
		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}
	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}
	return strings.Join(lines, "\n"+indent)
}
