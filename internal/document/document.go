// Package document wraps pdfcpu for the operations the splitter needs:
// opening a PDF, reading its outline, and copying page ranges out of it.
package document

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/jackzampolin/tocsplit/internal/toc"
)

// ErrOpen is matched by every OpenError.
var ErrOpen = errors.New("cannot open PDF")

// OpenError reports an input that is missing, unreadable, or not a valid PDF.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("cannot open PDF %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrOpen) true for any OpenError.
func (e *OpenError) Is(target error) bool { return target == ErrOpen }

// Document is a read-only handle on a parsed source PDF.
type Document struct {
	mu  sync.Mutex // guards ctx during page extraction
	ctx *model.Context
}

// Open reads and validates the PDF at path.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	defer f.Close()

	ctx, err := api.ReadContext(f, nil)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	return &Document{ctx: ctx}, nil
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// TOC returns the outline flattened in document order.
// A document without an outline yields an empty slice.
func (d *Document) TOC() ([]toc.Entry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Bookmarks reports a missing outline as nil, nil.
	bms, err := pdfcpu.Bookmarks(d.ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read outline: %w", err)
	}
	return flatten(bms, 1, nil), nil
}

// flatten walks bookmarks depth-first, tagging each with its nesting level.
func flatten(bms []pdfcpu.Bookmark, level int, out []toc.Entry) []toc.Entry {
	for _, bm := range bms {
		out = append(out, toc.Entry{
			Level: level,
			Title: bm.Title,
			Page:  bm.PageFrom,
		})
		if len(bm.Kids) > 0 {
			out = flatten(bm.Kids, level+1, out)
		}
	}
	return out
}

// WriteRange copies pages from..to (0-indexed, inclusive) into a new PDF
// and writes it to w. The source document is not modified.
func (d *Document) WriteRange(w io.Writer, from, to int) error {
	if from < 0 || to < from || to >= d.PageCount() {
		return fmt.Errorf("invalid page range %d-%d for %d pages", from, to, d.PageCount())
	}

	// pdfcpu numbers pages from 1
	pages := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		pages = append(pages, i+1)
	}

	d.mu.Lock()
	out, err := pdfcpu.ExtractPages(d.ctx, pages, false)
	d.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to extract pages %d-%d: %w", from+1, to+1, err)
	}

	if err := api.WriteContext(out, w); err != nil {
		return fmt.Errorf("failed to write pages %d-%d: %w", from+1, to+1, err)
	}
	return nil
}
