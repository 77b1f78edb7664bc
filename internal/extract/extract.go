// Package extract writes one PDF per retained section.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/jackzampolin/tocsplit/internal/selector"
	"github.com/jackzampolin/tocsplit/internal/toc"
)

// Source copies a page range of the input document into a new PDF.
// from and to are 0-indexed and inclusive.
type Source interface {
	WriteRange(w io.Writer, from, to int) error
}

// Failure records a section that could not be written.
type Failure struct {
	ID    int    `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Err   error  `json:"-" yaml:"-"`
	Error string `json:"error" yaml:"error"`
}

// Result summarizes a driver run.
// Written and Failed are in ascending id order.
type Result struct {
	OutputDir string    `json:"output_dir" yaml:"output_dir"`
	Written   []string  `json:"written" yaml:"written"`
	Skipped   []int     `json:"skipped" yaml:"skipped"`
	Failed    []Failure `json:"failed" yaml:"failed"`
}

// Count returns the number of files written.
func (r *Result) Count() int {
	return len(r.Written)
}

// FailedIDs returns the ids of the failed sections.
func (r *Result) FailedIDs() []int {
	ids := make([]int, len(r.Failed))
	for i, f := range r.Failed {
		ids[i] = f.ID
	}
	return ids
}

// Driver extracts sections from a Source onto a filesystem.
type Driver struct {
	Source  Source
	Fs      afero.Fs     // Defaults to the OS filesystem
	Naming  toc.Naming   // Defaults to toc.NamingSanitize
	Workers int          // Concurrent sections (default: 1)
	Retries int          // Extra write attempts per section
	Logger  *slog.Logger // Optional
}

type outcome struct {
	section toc.Section
	path    string
	err     error
}

// Run creates outputDir and writes every section not in excluded.
// A failing section is recorded in Result.Failed and does not stop the
// others. The returned error is non-nil only if outputDir cannot be created.
func (d *Driver) Run(ctx context.Context, sections []toc.Section, excluded selector.Exclusions, outputDir string) (*Result, error) {
	fs := d.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := fs.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	ordered := make([]toc.Section, len(sections))
	copy(ordered, sections)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	result := &Result{OutputDir: outputDir}
	var pending []toc.Section
	for _, s := range ordered {
		if excluded.Has(s.ID) {
			logger.Debug("skipping excluded section", "id", s.ID, "title", s.Title)
			result.Skipped = append(result.Skipped, s.ID)
			continue
		}
		pending = append(pending, s)
	}

	workers := d.Workers
	if workers <= 0 {
		workers = 1
	}

	outcomes := make([]outcome, len(pending))
	var mu sync.Mutex // serializes progress logging

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, s := range pending {
		g.Go(func() error {
			o := outcome{section: s}
			if err := ctx.Err(); err != nil {
				o.err = err
			} else {
				o.path, o.err = d.writeSection(ctx, fs, s, outputDir)
			}
			outcomes[i] = o

			mu.Lock()
			defer mu.Unlock()
			if o.err != nil {
				logger.Warn("section failed", "id", s.ID, "title", s.Title, "error", o.err)
			} else {
				logger.Info("extracted section",
					"id", s.ID,
					"title", s.Title,
					"pages", fmt.Sprintf("%d-%d", s.Start+1, s.End+1),
					"page_count", s.PageCount(),
					"file", filepath.Base(o.path),
				)
			}
			// Failures are collected, never returned, so the group keeps going
			return nil
		})
	}
	_ = g.Wait()

	for _, o := range outcomes {
		if o.err != nil {
			result.Failed = append(result.Failed, Failure{
				ID:    o.section.ID,
				Title: o.section.Title,
				Err:   o.err,
				Error: o.err.Error(),
			})
			continue
		}
		result.Written = append(result.Written, o.path)
	}

	return result, nil
}

// writeSection renders one section and persists it, retrying the write.
func (d *Driver) writeSection(ctx context.Context, fs afero.Fs, s toc.Section, outputDir string) (string, error) {
	var buf bytes.Buffer
	if err := d.Source.WriteRange(&buf, s.Start, s.End); err != nil {
		return "", err
	}

	path := filepath.Join(outputDir, toc.FileName(s.ID, s.Title, d.Naming))

	attempts := uint(1)
	if d.Retries > 0 {
		attempts += uint(d.Retries)
	}

	err := retry.Do(
		func() error {
			return afero.WriteFile(fs, path, buf.Bytes(), 0o644)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(50*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}
	return path, nil
}
