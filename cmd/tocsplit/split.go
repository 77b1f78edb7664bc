package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/tocsplit/internal/output"
	"github.com/jackzampolin/tocsplit/internal/selector"
	"github.com/jackzampolin/tocsplit/internal/split"
	"github.com/jackzampolin/tocsplit/internal/toc"
)

var (
	excludeList string
	assumeYes   bool
	pickForm    bool
	accessible  bool
	dryRun      bool
)

func addSplitFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "output", "destination directory")
	cmd.Flags().String("naming", "sanitize", "file naming: sanitize or slug")
	cmd.Flags().Int("workers", 1, "number of sections extracted concurrently")
	cmd.Flags().Int("retries", 2, "extra attempts when saving a section fails")
	cmd.Flags().StringVar(&excludeList, "exclude", "", "comma-separated section ids to skip (skips the prompt)")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the prompt and keep every section not given to --exclude")
	cmd.Flags().BoolVar(&pickForm, "pick", false, "choose sections to exclude with an interactive checklist")
	cmd.Flags().BoolVar(&accessible, "accessible", false, "use the screen-reader friendly checklist with --pick")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the plan without writing any file")
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	naming, err := toc.ParseNaming(cfg.Naming)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	prompter, err := choosePrompter(cmd)
	if err != nil {
		return err
	}
	if _, interactive := prompter.(*selector.LinePrompter); interactive && !stdinIsTerminal() {
		logger.Debug("stdin is not a terminal, reading exclusions from it")
	}

	result, err := split.Run(cmd.Context(), split.Request{
		InputPath: args[0],
		OutputDir: cfg.Output,
		Options:   cfg.Options(),
		Naming:    naming,
		Workers:   cfg.Workers,
		Retries:   cfg.Retries,
		DryRun:    dryRun,
		Prompter:  prompter,
		Fs:        afero.NewOsFs(),
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	if dryRun {
		return output.To(cmd.OutOrStdout(), format, result)
	}
	return summarize(cmd.OutOrStdout(), result)
}

// choosePrompter picks how exclusions are collected from the flags.
func choosePrompter(cmd *cobra.Command) (selector.Prompter, error) {
	switch {
	case cmd.Flags().Changed("exclude"):
		ex, err := selector.ParseExclusions(excludeList)
		if err != nil {
			return nil, err
		}
		return selector.Static(ex), nil
	case assumeYes:
		return selector.Static(nil), nil
	case pickForm:
		if !stdinIsTerminal() || !isatty.IsTerminal(os.Stdout.Fd()) {
			return nil, errors.New("--pick needs an interactive terminal; use --exclude instead")
		}
		return &selector.FormPrompter{Accessible: accessible}, nil
	default:
		return &selector.LinePrompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}, nil
	}
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// summarize prints the run outcome and fails if any section could not be written.
func summarize(w io.Writer, result *split.Result) error {
	res := result.Extract
	fmt.Fprintf(w, "Wrote %d file(s) to %s (%d section(s), %d excluded)\n",
		res.Count(), res.OutputDir, len(result.Sections), len(res.Skipped))

	if len(res.Failed) == 0 {
		return nil
	}
	for _, f := range res.Failed {
		fmt.Fprintf(w, "  failed %03d %s: %s\n", f.ID, f.Title, f.Error)
	}
	return fmt.Errorf("%d section(s) could not be written: ids %v", len(res.Failed), res.FailedIDs())
}
