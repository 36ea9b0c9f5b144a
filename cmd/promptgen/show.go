package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptgen/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved prompt",
	Long: `Print every field present on a saved prompt.

Examples:
  promptgen show 1
  promptgen show 2 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		repo, _, err := a.openRepo(cmd.Context())
		if err != nil {
			return err
		}

		_, rec, err := repo.Lookup(args[0])
		if err != nil {
			return err
		}
		return output.To(cmd.OutOrStdout(), output.GetFormat(), rec)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
