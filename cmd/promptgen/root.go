package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptgen/internal/output"
	"github.com/jackzampolin/promptgen/version"
)

var (
	cfgFile      string
	homeDir      string
	storePath    string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "promptgen",
	Short: "Compose, save, and edit prompts for AI chatbots",
	Long: `Promptgen is an interactive tool for building structured prompts for AI
chatbots and keeping them in a local JSON file.

Run without a subcommand to open the interactive menu:
  1. Create a new prompt (question, role, steps, example, format, notes)
  2. Browse saved prompts, then view, edit, or delete one
  3. Exit

Viewing a prompt copies it to the system clipboard as JSON.`,
	Version:      version.GitRelease,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runInteractive,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.promptgen/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "promptgen home directory (default: ~/.promptgen)",
	)
	rootCmd.PersistentFlags().StringVar(
		&storePath, "store", "", "prompt collection file (default: store.path or <home>/saved_prompts.json)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Validate and set output format before any command runs
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return output.SetFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
