package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/tocsplit/internal/output"
	"github.com/jackzampolin/tocsplit/internal/split"
)

var listCmd = &cobra.Command{
	Use:   "list <input.pdf>",
	Short: "Show the sections a split would produce",
	Long: `List the sections computed from the PDF's table of contents without
prompting or writing anything. Section ids match the ones used by a
split with the same --deep and --merge-same-page settings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		format, err := output.ParseFormat(cfg.Format)
		if err != nil {
			return err
		}

		result, err := split.Plan(args[0], cfg.Options(), nil)
		if err != nil {
			return err
		}
		logger.Debug("computed sections", "input", args[0], "sections", len(result.Sections))

		return output.To(cmd.OutOrStdout(), format, result)
	},
}
