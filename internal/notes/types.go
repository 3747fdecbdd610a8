// Package notes implements the plain-text release-notes document format used
// by per-version "messages" files: a project/version header line, a dashed
// separator, an optional announcement block, categorized bullet sections, and
// an optional trailing footer block.
package notes

// Document represents a single parsed release-notes file.
type Document struct {
	// Project is the project name from the header line (e.g., "GitGutter").
	Project string
	// Version is the bare semantic version from the header line, without a
	// "v" prefix (e.g., "1.5.0").
	Version string
	// Announcement holds the raw lines of the optional free-text block
	// between the separator and the first section heading.
	Announcement []string
	// Sections holds the categorized bullet sections in file order.
	Sections []Section
	// Footer holds the raw lines of the trailing block after the last
	// section (typically a promotional message).
	Footer []string
	// Path is the file the document was read from, empty for in-memory docs.
	Path string
}

// Section is a named group of bullet items (e.g., "Fix:", "Enhancement:").
type Section struct {
	Name  string
	Items []Item
}

// Item is a single bullet entry. Raw preserves the exact physical lines from
// the source file so that serialization round-trips wrapped bullets; it is
// empty for items constructed programmatically.
type Item struct {
	Text string
	Raw  []string
}

// Entry is a flattened view of a single item with its section and version
// context, used for cross-version listings.
type Entry struct {
	Text    string
	Section string
	Version string
}

// DefaultSections returns the allowed section names in canonical order.
// The order doubles as the expected ordering within a file.
func DefaultSections() []string {
	return []string{"Break", "Feature", "Enhancement", "Fix", "Internals", "README"}
}

// IsEmpty returns true if the document has no items in any section.
func (d *Document) IsEmpty() bool {
	return d.Count() == 0
}

// Count returns the total number of items across all sections.
func (d *Document) Count() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Items)
	}
	return n
}

// Section returns the named section, or nil if the document has none.
func (d *Document) Section(name string) *Section {
	for i := range d.Sections {
		if d.Sections[i].Name == name {
			return &d.Sections[i]
		}
	}
	return nil
}

// Entries returns a flattened list of all items in this document,
// in file order.
func (d *Document) Entries() []Entry {
	entries := make([]Entry, 0, d.Count())
	for _, s := range d.Sections {
		for _, item := range s.Items {
			entries = append(entries, Entry{Text: item.Text, Section: s.Name, Version: d.Version})
		}
	}
	return entries
}
