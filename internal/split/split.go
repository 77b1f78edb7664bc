// Package split runs the whole pipeline: open the input, partition its
// outline, collect exclusions, and extract the remaining sections.
package split

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/jackzampolin/tocsplit/internal/document"
	"github.com/jackzampolin/tocsplit/internal/extract"
	"github.com/jackzampolin/tocsplit/internal/selector"
	"github.com/jackzampolin/tocsplit/internal/toc"
)

// ErrNoTableOfContents is returned when the input has no outline entries.
var ErrNoTableOfContents = errors.New("no table of contents found in this PDF")

// Doc is the part of a source document the pipeline uses.
type Doc interface {
	extract.Source
	PageCount() int
	TOC() ([]toc.Entry, error)
}

// Opener opens a source document.
type Opener func(path string) (Doc, error)

// OpenPDF opens path with pdfcpu.
func OpenPDF(path string) (Doc, error) {
	doc, err := document.Open(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// openInput checks that path exists before handing it to the opener.
func openInput(path string, open Opener) (Doc, error) {
	if open == nil {
		open = OpenPDF
	}
	if _, err := os.Stat(path); err != nil {
		return nil, &document.OpenError{Path: path, Err: err}
	}
	return open(path)
}

// Request contains the parameters for one split run.
type Request struct {
	InputPath string
	OutputDir string
	Options   toc.Options
	Naming    toc.Naming
	Workers   int
	Retries   int
	DryRun    bool // Stop after selection; write nothing

	Prompter selector.Prompter // Defaults to excluding nothing
	Opener   Opener            // Defaults to OpenPDF
	Fs       afero.Fs          // Defaults to the OS filesystem
	Logger   *slog.Logger      // Optional logger for progress updates
}

// Result contains the outcome of a run.
type Result struct {
	RunID      string          `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	InputPath  string          `json:"input" yaml:"input"`
	TotalPages int             `json:"total_pages" yaml:"total_pages"`
	Sections   []toc.Section   `json:"sections" yaml:"sections"`
	Excluded   []int           `json:"excluded,omitempty" yaml:"excluded,omitempty"`
	Extract    *extract.Result `json:"extract,omitempty" yaml:"extract,omitempty"`
}

// Plan opens the input and computes its sections without prompting.
func Plan(path string, opts toc.Options, open Opener) (*Result, error) {
	doc, err := openInput(path, open)
	if err != nil {
		return nil, err
	}
	return plan(path, doc, opts)
}

func plan(path string, doc Doc, opts toc.Options) (*Result, error) {
	entries, err := doc.TOC()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoTableOfContents
	}

	total := doc.PageCount()
	return &Result{
		InputPath:  path,
		TotalPages: total,
		Sections:   toc.Partition(entries, total, opts),
	}, nil
}

// Run executes the pipeline. Every fatal error is detected before the
// output directory is touched; once extraction starts, failing sections
// are reported in Result.Extract.Failed and the rest still run.
func Run(ctx context.Context, req Request) (*Result, error) {
	logger := req.Logger
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.New().String()
	logger = logger.With("run_id", runID)

	doc, err := openInput(req.InputPath, req.Opener)
	if err != nil {
		return nil, err
	}

	result, err := plan(req.InputPath, doc, req.Options)
	if err != nil {
		return nil, err
	}
	result.RunID = runID

	logger.Info("partitioned outline",
		"input", req.InputPath,
		"pages", result.TotalPages,
		"sections", len(result.Sections),
		"deep", req.Options.Deep,
	)

	prompter := req.Prompter
	if prompter == nil {
		prompter = selector.Static(nil)
	}
	excluded, err := prompter.Exclusions(ctx, result.Sections)
	if err != nil {
		return nil, err
	}
	result.Excluded = excluded.IDs()

	if req.DryRun {
		logger.Info("dry run, nothing written", "excluded", result.Excluded)
		return result, nil
	}

	driver := &extract.Driver{
		Source:  doc,
		Fs:      req.Fs,
		Naming:  req.Naming,
		Workers: req.Workers,
		Retries: req.Retries,
		Logger:  logger,
	}
	res, err := driver.Run(ctx, result.Sections, excluded, req.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	result.Extract = res

	logger.Info("split complete",
		"written", res.Count(),
		"failed", len(res.Failed),
		"output_dir", req.OutputDir,
	)

	return result, nil
}
