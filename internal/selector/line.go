package selector

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/cancelreader"

	"github.com/jackzampolin/tocsplit/internal/toc"
)

// LinePrompter renders sections to Out and reads one line from In.
type LinePrompter struct {
	In  io.Reader
	Out io.Writer
}

type lineResult struct {
	line string
	err  error
}

// Exclusions implements Prompter. Cancelling ctx (e.g. on SIGINT) or
// reaching EOF before any input aborts the selection.
func (p *LinePrompter) Exclusions(ctx context.Context, sections []toc.Section) (Exclusions, error) {
	if err := Render(p.Out, sections); err != nil {
		return nil, fmt.Errorf("failed to render sections: %w", err)
	}
	fmt.Fprint(p.Out, "\nSection ids to exclude (comma-separated, empty for none): ")

	// Read in the background so a cancelled context is noticed while blocked.
	// Terminals and pipes are wrapped so the pending read is interrupted too.
	// Inputs that cannot be polled, like regular files, are read directly.
	in := p.In
	cr, err := cancelreader.NewReader(p.In)
	if err != nil {
		cr = nil
	} else {
		in = cr
	}

	results := make(chan lineResult, 1)
	go func() {
		if cr != nil {
			defer cr.Close()
		}
		line, err := bufio.NewReader(in).ReadString('\n')
		results <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		if cr != nil {
			cr.Cancel()
		}
		fmt.Fprintln(p.Out)
		return nil, ErrAborted
	case r := <-results:
		if r.err != nil {
			if errors.Is(r.err, io.EOF) && r.line == "" {
				return nil, ErrAborted
			}
			if !errors.Is(r.err, io.EOF) {
				return nil, fmt.Errorf("failed to read selection: %w", r.err)
			}
		}
		ex, err := ParseExclusions(strings.TrimRight(r.line, "\r\n"))
		if err != nil {
			// Keep the error off the prompt line when input is not echoed
			fmt.Fprintln(p.Out)
			return nil, err
		}
		return ex, nil
	}
}
