package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/promptgen/internal/clipboard"
	"github.com/jackzampolin/promptgen/internal/menu"
	"github.com/jackzampolin/promptgen/internal/terminal"
)

// runInteractive opens the collection and runs the menu until the user exits.
func runInteractive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	repo, found, err := a.openRepo(ctx)
	if err != nil {
		return err
	}

	if clipboard.Unsupported() {
		a.logger.Info("system clipboard unavailable, viewed prompts will not be copied")
	}
	a.watch()

	console := terminal.New(cmd.InOrStdin(), cmd.OutOrStdout())
	defer console.Close()

	ctrl := menu.New(menu.Options{
		Repo:      repo,
		UI:        console,
		Clipboard: clipboard.System{},
		Settings:  a.menuSettings,
		Logger:    a.logger,
	})
	if found {
		ctrl.Notify(fmt.Sprintf("Prompts loaded from %s successfully!", repo.Path()))
	} else {
		ctrl.Notify("No saved prompts file found. Starting fresh.")
	}

	err = ctrl.Run(ctx)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), menu.Farewell)
		return nil
	}
	return err
}
