package notes

import (
	"fmt"
	"io"
	"strings"
)

// Render writes the document in canonical text form: header, a separator of
// equal length, single blank lines between blocks, one-space bullet indent
// for programmatic items, and a trailing newline.
//
// Items parsed from a file keep their original physical lines, so parsing a
// canonically formatted file and rendering it back is byte-identical.
func (d *Document) Render(w io.Writer) error {
	header := fmt.Sprintf("%s %s", d.Project, d.Version)
	if _, err := fmt.Fprintf(w, "%s\n%s\n", header, strings.Repeat("-", len(header))); err != nil {
		return err
	}

	if err := writeBlock(w, d.Announcement); err != nil {
		return err
	}

	for _, s := range d.Sections {
		if _, err := fmt.Fprintf(w, "\n%s:\n", s.Name); err != nil {
			return err
		}
		for _, item := range s.Items {
			if err := writeItem(w, item); err != nil {
				return err
			}
		}
	}

	return writeBlock(w, d.Footer)
}

// RenderString renders the document to a string.
func (d *Document) RenderString() (string, error) {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeBlock(w io.Writer, block []string) error {
	if len(block) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for _, line := range block {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeItem(w io.Writer, item Item) error {
	if len(item.Raw) > 0 {
		for _, line := range item.Raw {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}
	_, err := fmt.Fprintf(w, " - %s\n", item.Text)
	return err
}
