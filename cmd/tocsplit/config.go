package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/tocsplit/internal/config"
	"github.com/jackzampolin/tocsplit/internal/home"
	"github.com/jackzampolin/tocsplit/internal/output"
)

var forceInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the tocsplit configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write the default configuration to --config, or to config.yaml in the
tocsplit home directory when --config is not given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, exists := cfgFile, false
		if path == "" {
			h, err := home.New(homeDir)
			if err != nil {
				return err
			}
			if err := h.EnsureExists(); err != nil {
				return err
			}
			path, exists = h.ConfigPath(), h.ConfigExists()
		} else if _, err := os.Stat(path); err == nil {
			exists = true
		}

		if exists && !forceInit {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}

		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show [key...]",
	Short: "Print the effective configuration",
	Long: `Print the value each configuration key resolves to after applying the
config file, TOCSPLIT_ environment variables and flags, next to its default.
Pass keys (e.g. log.level) to show only those.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg, err := mgr.Load()
		if err != nil {
			return err
		}
		format, err := output.ParseFormat(cfg.Format)
		if err != nil {
			return err
		}

		settings, err := mgr.Settings(args...)
		if err != nil {
			return err
		}
		return output.To(cmd.OutOrStdout(), format, settings)
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
