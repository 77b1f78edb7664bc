// Package toc turns a flat outline into page-range sections.
// This package has no dependencies on other tocsplit packages.
package toc

// Entry is one outline bookmark in document order.
type Entry struct {
	Level int    // Nesting depth (1 = top level)
	Title string // Bookmark title
	Page  int    // Start page (1-indexed)
}

// Section is a validated page range derived from one retained Entry.
type Section struct {
	ID    int    `json:"id" yaml:"id"`       // Position in the filtered outline (1-indexed)
	Title string `json:"title" yaml:"title"` // Bookmark title
	Level int    `json:"level" yaml:"level"` // Nesting depth of the source entry
	Start int    `json:"start" yaml:"start"` // First page index (0-indexed)
	End   int    `json:"end" yaml:"end"`     // Last page index (0-indexed, inclusive)
}

// PageCount returns the number of pages covered by the section.
func (s Section) PageCount() int {
	return s.End - s.Start + 1
}

// MinLevel returns the shallowest level among sections, or 0 if there are none.
func MinLevel(sections []Section) int {
	level := 0
	for i, s := range sections {
		if i == 0 || s.Level < level {
			level = s.Level
		}
	}
	return level
}
