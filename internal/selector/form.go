package selector

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/jackzampolin/tocsplit/internal/toc"
)

// FormPrompter asks for exclusions with an interactive multi-select.
// It needs a terminal on stdin and stdout.
type FormPrompter struct {
	Accessible bool // Use huh's screen-reader friendly mode
}

// Exclusions implements Prompter.
func (p *FormPrompter) Exclusions(ctx context.Context, sections []toc.Section) (Exclusions, error) {
	var selected []int

	minLevel := toc.MinLevel(sections)
	options := make([]huh.Option[int], 0, len(sections))
	for _, s := range sections {
		options = append(options, huh.NewOption(Label(s, minLevel), s.ID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Sections to exclude").
				Description("space to toggle, enter to confirm").
				Options(options...).
				Value(&selected),
		),
	).WithAccessible(p.Accessible)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
			return nil, ErrAborted
		}
		return nil, err
	}

	return NewExclusions(selected...), nil
}
