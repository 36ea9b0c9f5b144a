package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptgen/internal/config"
	"github.com/jackzampolin/promptgen/internal/home"
	"github.com/jackzampolin/promptgen/internal/output"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage promptgen configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write the default configuration to the home directory, or to --config
when given. An existing file is kept unless --force is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}

		path := cfgFile
		var exists bool
		if path == "" {
			if err := h.EnsureExists(); err != nil {
				return err
			}
			path, exists = h.ConfigPath(), h.ConfigExists()
		} else {
			_, err := os.Stat(path)
			exists = err == nil
		}

		if exists && !configForce {
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
	Use:   "show [key]",
	Short: "Print the effective configuration",
	Long: `Print the effective configuration after merging the config file,
PROMPTGEN_* environment variables, and defaults.

With a key, print that key's value next to its default.

Examples:
  promptgen config show
  promptgen config show ui.pause -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if len(args) == 0 {
			return output.To(cmd.OutOrStdout(), output.GetFormat(), a.cfg.Get())
		}

		setting, err := a.cfg.Lookup(args[0])
		if err != nil {
			return err
		}
		return output.To(cmd.OutOrStdout(), output.GetFormat(), setting)
	},
}

var configDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "List every config key with its default value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.To(cmd.OutOrStdout(), output.GetFormat(), config.DefaultEntries())
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(configInitCmd, configShowCmd, configDefaultsCmd)
	rootCmd.AddCommand(configCmd)
}
