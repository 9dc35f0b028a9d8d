package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"furrow/internal/assignment"
	"furrow/internal/config"
)

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <annotator-id> <plot-id>",
		Short: "Remove an assignment and its annotation, freeing the plot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *assignment.Store) error {
				if err := store.Remove(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed plot %s from %s.\n", args[1], args[0])
				return nil
			})
		},
	}
	return cmd
}
