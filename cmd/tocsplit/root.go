package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/tocsplit/internal/config"
	"github.com/jackzampolin/tocsplit/internal/home"
	"github.com/jackzampolin/tocsplit/internal/logging"
	"github.com/jackzampolin/tocsplit/version"
)

var (
	cfgFile string
	homeDir string
)

var rootCmd = &cobra.Command{
	Use:   "tocsplit <input.pdf>",
	Short: "Split a PDF into one file per table of contents section",
	Long: `tocsplit splits a PDF along its embedded table of contents (bookmarks).

Each retained bookmark becomes one output file covering the pages from
where it starts up to the page before the next retained bookmark. By
default only the top-level bookmarks are used; --deep uses every level.

Before writing, the computed sections are listed and you can enter a
comma-separated list of section ids to leave out.

Examples:
  tocsplit book.pdf                     # Split by chapter into ./output
  tocsplit book.pdf -o chapters --deep  # Split on every bookmark level
  tocsplit book.pdf --exclude 1,12 -y   # Skip the prompt, drop sections 1 and 12
  tocsplit list book.pdf --format json  # Show the sections without writing`,
	Version:       version.GitRelease,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSplit,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.tocsplit/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "tocsplit home directory (default: ~/.tocsplit)",
	)
	rootCmd.PersistentFlags().Bool("deep", false, "split on every bookmark level, not only the top level")
	rootCmd.PersistentFlags().Bool("merge-same-page", false, "merge a bookmark into deeper bookmarks on its start page instead of dropping it")
	rootCmd.PersistentFlags().String("format", "yaml", "structured output format: yaml or json")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")

	addSplitFlags(rootCmd)

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig builds the config manager for cmd (defaults < file < env < flags).
func loadConfig(cmd *cobra.Command) (*config.Manager, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}

	// Only search the home directory once it has been created
	searchDir := ""
	if h.Exists() {
		searchDir = h.Path()
	}

	mgr, err := config.NewManager(cfgFile, searchDir)
	if err != nil {
		return nil, err
	}
	if err := mgr.BindFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	return mgr, nil
}

// setup loads configuration for cmd and builds the logger.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	mgr, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := mgr.Load()
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	if used := mgr.ConfigFileUsed(); used != "" {
		logger.Debug("loaded config file", "path", used)
	}
	return cfg, logger, nil
}
