package toc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

// Naming selects how section titles become file names.
type Naming string

const (
	// NamingSanitize strips characters that are illegal in path segments
	// and joins words with underscores.
	NamingSanitize Naming = "sanitize"
	// NamingSlug produces a lower-case ASCII slug.
	NamingSlug Naming = "slug"
)

// ParseNaming converts a string to a Naming.
func ParseNaming(s string) (Naming, error) {
	switch Naming(s) {
	case NamingSanitize, "":
		return NamingSanitize, nil
	case NamingSlug:
		return NamingSlug, nil
	default:
		return "", fmt.Errorf("unknown naming %q (want %s or %s)", s, NamingSanitize, NamingSlug)
	}
}

var illegalChars = regexp.MustCompile(`[\\/*?:"<>|]`)

// Sanitize makes a title safe to use as a file name segment.
// The result may be empty.
func Sanitize(title string) string {
	s := illegalChars.ReplaceAllString(title, "")
	// Fields trims the ends and splits on whitespace runs
	return strings.Join(strings.Fields(s), "_")
}

// FileName returns the output file name for a section.
// e.g., (3, "Chapter 1: Intro") -> "003_Chapter_1_Intro.pdf"
func FileName(id int, title string, naming Naming) string {
	var name string
	switch naming {
	case NamingSlug:
		name = slug.Make(title)
	default:
		name = Sanitize(title)
	}
	return fmt.Sprintf("%03d_%s.pdf", id, name)
}
