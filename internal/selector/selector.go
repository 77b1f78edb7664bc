// Package selector presents computed sections and collects the set of
// section ids the user wants to leave out.
package selector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/jackzampolin/tocsplit/internal/toc"
)

// ErrAborted is returned when the user interrupts the prompt.
var ErrAborted = errors.New("selection aborted")

// ParseError reports an exclusion list containing a non-integer token.
// The whole list is rejected; no exclusions are applied.
type ParseError struct {
	Input string // Raw line as entered
	Token string // First offending token
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("exclusion list %q rejected: %q is not a section id (nothing was excluded)", e.Input, e.Token)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Exclusions is the set of section ids to skip.
type Exclusions map[int]struct{}

// NewExclusions builds a set from ids.
func NewExclusions(ids ...int) Exclusions {
	ex := make(Exclusions, len(ids))
	for _, id := range ids {
		ex[id] = struct{}{}
	}
	return ex
}

// Has reports whether id is excluded. Safe on a nil set.
func (ex Exclusions) Has(id int) bool {
	_, ok := ex[id]
	return ok
}

// IDs returns the excluded ids in ascending order.
func (ex Exclusions) IDs() []int {
	ids := make([]int, 0, len(ex))
	for id := range ex {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ParseExclusions parses a comma-separated list of section ids.
// Blank tokens are ignored, so "" and " , " mean "exclude nothing".
func ParseExclusions(line string) (Exclusions, error) {
	ex := make(Exclusions)
	for _, tok := range strings.Split(line, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id, err := strconv.Atoi(tok)
		if err != nil {
			return nil, &ParseError{Input: line, Token: tok, Err: err}
		}
		ex[id] = struct{}{}
	}
	return ex, nil
}

// Prompter collects the exclusion set for a list of sections.
type Prompter interface {
	Exclusions(ctx context.Context, sections []toc.Section) (Exclusions, error)
}

// Static is a Prompter that returns a fixed set without asking anyone.
type Static Exclusions

// Exclusions implements Prompter.
func (s Static) Exclusions(ctx context.Context, sections []toc.Section) (Exclusions, error) {
	ex := make(Exclusions, len(s))
	for id := range s {
		ex[id] = struct{}{}
	}
	return ex, nil
}

// Render writes one line per section: id, 1-indexed page range, and the
// title indented four spaces per level below the shallowest section.
func Render(w io.Writer, sections []toc.Section) error {
	minLevel := toc.MinLevel(sections)
	for _, s := range sections {
		if _, err := fmt.Fprintf(w, "%s\n", Label(s, minLevel)); err != nil {
			return err
		}
	}
	return nil
}

// Label formats a single section the way Render does.
func Label(s toc.Section, minLevel int) string {
	indent := strings.Repeat(" ", 4*(s.Level-minLevel))
	pages := fmt.Sprintf("%d..%d", s.Start+1, s.End+1)
	return fmt.Sprintf("%3d  %-11s %s%s", s.ID, pages, indent, s.Title)
}
