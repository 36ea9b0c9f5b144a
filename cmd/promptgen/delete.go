package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptgen/internal/menu"
	"github.com/jackzampolin/promptgen/internal/terminal"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved prompt",
	Long: `Delete a saved prompt by ID. Later prompts move up one ID.

Asks for confirmation unless --yes is given.

Examples:
  promptgen delete 3
  promptgen delete 3 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		repo, _, err := a.openRepo(ctx)
		if err != nil {
			return err
		}

		id, rec, err := repo.Lookup(args[0])
		if err != nil {
			return err
		}

		if !deleteYes {
			console := terminal.New(cmd.InOrStdin(), cmd.OutOrStdout())
			defer console.Close()
			label := fmt.Sprintf("Delete prompt %d (%s)?", id, rec.BaseQuestion)
			ok, err := console.Confirm(ctx, label)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), menu.MsgDeleteCanceled)
				return nil
			}
		}

		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		a.logger.Info("prompt deleted", "id", id, "store", repo.Path())
		fmt.Fprintln(cmd.OutOrStdout(), menu.MsgDeleted)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "delete without asking")
	rootCmd.AddCommand(deleteCmd)
}
