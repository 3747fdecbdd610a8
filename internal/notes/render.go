package notes

import (
	"fmt"
	"io"
	"strings"
)

// RenderMarkdown writes a document as GitHub-flavored markdown suitable for
// release notes: a version heading, announcement and footer paragraphs as
// prose, and one "###" heading per section.
//
// The function is idempotent - given the same input, it produces identical
// output.
func RenderMarkdown(d *Document, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "## %s %s\n", d.Project, d.Version); err != nil {
		return err
	}

	if err := renderParagraph(w, d.Announcement); err != nil {
		return err
	}

	for _, s := range d.Sections {
		if len(s.Items) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n### %s\n", s.Name); err != nil {
			return err
		}
		for _, item := range s.Items {
			if _, err := fmt.Fprintf(w, "- %s\n", item.Text); err != nil {
				return err
			}
		}
	}

	return renderParagraph(w, d.Footer)
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(d *Document) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(d, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderParagraph writes a raw line block as markdown prose, joining wrapped
// lines and keeping blank lines as paragraph breaks.
func renderParagraph(w io.Writer, block []string) error {
	if len(block) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	var para []string
	flush := func() error {
		if len(para) == 0 {
			return nil
		}
		_, err := fmt.Fprintln(w, strings.Join(para, " "))
		para = nil
		return err
	}

	for _, line := range block {
		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
			continue
		}
		para = append(para, strings.TrimSpace(line))
	}
	return flush()
}
