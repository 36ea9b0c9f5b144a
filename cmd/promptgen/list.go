package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptgen/internal/output"
)

// summary is one row of the list output.
type summary struct {
	ID           int    `json:"id" yaml:"id"`
	BaseQuestion string `json:"base_question" yaml:"base_question"`
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved prompts",
	Long: `List saved prompts by ID and base question.

IDs are positions in the collection and shift when a prompt is deleted.

Examples:
  promptgen list
  promptgen list -o json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		repo, _, err := a.openRepo(cmd.Context())
		if err != nil {
			return err
		}

		rows := make([]summary, 0, repo.Len())
		for id, q := range repo.List() {
			rows = append(rows, summary{ID: id, BaseQuestion: q})
		}
		return output.To(cmd.OutOrStdout(), output.GetFormat(), rows)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
