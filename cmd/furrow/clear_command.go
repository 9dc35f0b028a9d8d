package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"furrow/internal/assignment"
	"furrow/internal/config"
)

func newClearCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all annotations and reopen every assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("clear deletes every annotation; rerun with --yes to confirm")
			}
			return ctx.withStore(func(cfg *config.Config, store *assignment.Store) error {
				cleared, err := store.ClearAnnotations(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d annotations; all assignments reopened.\n", cleared)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the bulk reset")
	return cmd
}
