package split

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/jackzampolin/tocsplit/internal/document"
	"github.com/jackzampolin/tocsplit/internal/selector"
	"github.com/jackzampolin/tocsplit/internal/toc"
)

type fakeDoc struct {
	pages   int
	entries []toc.Entry
	tocErr  error
}

func (d *fakeDoc) PageCount() int { return d.pages }

func (d *fakeDoc) TOC() ([]toc.Entry, error) { return d.entries, d.tocErr }

func (d *fakeDoc) WriteRange(w io.Writer, from, to int) error {
	_, err := fmt.Fprintf(w, "%d-%d", from, to)
	return err
}

func sampleDoc() *fakeDoc {
	return &fakeDoc{
		pages: 10,
		entries: []toc.Entry{
			{Level: 1, Title: "Ch1", Page: 1},
			{Level: 2, Title: "S1.1", Page: 2},
			{Level: 1, Title: "Ch2", Page: 4},
			{Level: 1, Title: "Ch3", Page: 8},
		},
	}
}

// inputFile creates a placeholder input so the existence check passes.
func inputFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.7"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func openerFor(doc Doc) Opener {
	return func(string) (Doc, error) { return doc, nil }
}

func outputFiles(t *testing.T, fs afero.Fs, dir string) []string {
	t.Helper()
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		t.Fatalf("failed to read %s: %v", dir, err)
	}
	var names []string
	for _, info := range infos {
		names = append(names, info.Name())
	}
	sort.Strings(names)
	return names
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		deep     bool
		input    string
		expected []string
	}{
		{
			name:     "top level, nothing excluded",
			input:    "\n",
			expected: []string{"001_Ch1.pdf", "002_Ch2.pdf", "003_Ch3.pdf"},
		},
		{
			name:     "top level, exclude two and three",
			input:    "2, 3\n",
			expected: []string{"001_Ch1.pdf"},
		},
		{
			name:     "deep, exclude the subsection",
			deep:     true,
			input:    "2\n",
			expected: []string{"001_Ch1.pdf", "003_Ch2.pdf", "004_Ch3.pdf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			var out bytes.Buffer

			result, err := Run(context.Background(), Request{
				InputPath: inputFile(t),
				OutputDir: "output",
				Options:   toc.Options{Deep: tt.deep},
				Prompter:  &selector.LinePrompter{In: strings.NewReader(tt.input), Out: &out},
				Opener:    openerFor(sampleDoc()),
				Fs:        fs,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := outputFiles(t, fs, "output"); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("got files %v, want %v", got, tt.expected)
			}
			if result.Extract.Count() != len(tt.expected) {
				t.Errorf("count %d, want %d", result.Extract.Count(), len(tt.expected))
			}
			if result.RunID == "" {
				t.Error("expected a run id")
			}
		})
	}
}

func TestRun_FatalErrorsWriteNothing(t *testing.T) {
	tests := []struct {
		name     string
		input    func(t *testing.T) string
		doc      *fakeDoc
		openErr  error
		prompter selector.Prompter
		check    func(t *testing.T, err error)
	}{
		{
			name:  "missing input",
			input: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.pdf") },
			doc:   sampleDoc(),
			check: func(t *testing.T, err error) {
				if !errors.Is(err, document.ErrOpen) {
					t.Errorf("expected ErrOpen, got %v", err)
				}
			},
		},
		{
			name:    "unopenable PDF",
			input:   inputFile,
			openErr: &document.OpenError{Path: "book.pdf", Err: errors.New("bad xref")},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, document.ErrOpen) {
					t.Errorf("expected ErrOpen, got %v", err)
				}
			},
		},
		{
			name:  "no table of contents",
			input: inputFile,
			doc:   &fakeDoc{pages: 5},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrNoTableOfContents) {
					t.Errorf("expected ErrNoTableOfContents, got %v", err)
				}
			},
		},
		{
			name:     "malformed exclusions",
			input:    inputFile,
			doc:      sampleDoc(),
			prompter: &selector.LinePrompter{In: strings.NewReader("2,x\n"), Out: io.Discard},
			check: func(t *testing.T, err error) {
				var parseErr *selector.ParseError
				if !errors.As(err, &parseErr) {
					t.Errorf("expected ParseError, got %v", err)
				}
			},
		},
		{
			name:     "aborted prompt",
			input:    inputFile,
			doc:      sampleDoc(),
			prompter: &selector.LinePrompter{In: strings.NewReader(""), Out: io.Discard},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, selector.ErrAborted) {
					t.Errorf("expected ErrAborted, got %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			opener := func(string) (Doc, error) {
				if tt.openErr != nil {
					return nil, tt.openErr
				}
				return tt.doc, nil
			}

			result, err := Run(context.Background(), Request{
				InputPath: tt.input(t),
				OutputDir: "output",
				Prompter:  tt.prompter,
				Opener:    opener,
				Fs:        fs,
			})
			if err == nil {
				t.Fatalf("expected error, got result %+v", result)
			}
			tt.check(t, err)

			if exists, _ := afero.DirExists(fs, "output"); exists {
				t.Error("output directory should not be created")
			}
		})
	}
}

func TestRun_DryRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	result, err := Run(context.Background(), Request{
		InputPath: inputFile(t),
		OutputDir: "output",
		DryRun:    true,
		Prompter:  selector.Static(selector.NewExclusions(2)),
		Opener:    openerFor(sampleDoc()),
		Fs:        fs,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Extract != nil {
		t.Error("dry run should not extract")
	}
	if !reflect.DeepEqual(result.Excluded, []int{2}) {
		t.Errorf("expected [2] excluded, got %v", result.Excluded)
	}
	if exists, _ := afero.DirExists(fs, "output"); exists {
		t.Error("dry run should not create the output directory")
	}
}

func TestPlan(t *testing.T) {
	result, err := Plan(inputFile(t), toc.Options{Deep: true}, openerFor(sampleDoc()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalPages != 10 {
		t.Errorf("expected 10 pages, got %d", result.TotalPages)
	}
	if len(result.Sections) != 4 {
		t.Errorf("expected 4 sections, got %+v", result.Sections)
	}

	tocErr := errors.New("broken outline")
	if _, err := Plan(inputFile(t), toc.Options{}, openerFor(&fakeDoc{pages: 3, tocErr: tocErr})); !errors.Is(err, tocErr) {
		t.Errorf("expected outline error, got %v", err)
	}
}
