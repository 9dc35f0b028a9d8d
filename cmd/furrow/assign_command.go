package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"furrow/internal/api"
	"furrow/internal/assignment"
	"furrow/internal/config"
)

func newAssignCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "assign <annotator-id> <count>",
		Short: "Assign unassigned plots to an annotator",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("count must be a number: %q", args[1])
			}
			return ctx.withStore(func(cfg *config.Config, store *assignment.Store) error {
				admin, err := ctx.adminService(cfg, store)
				if err != nil {
					return err
				}
				alloc, err := admin.Allocate(cmd.Context(), api.AllocateRequest{
					AnnotatorID: args[0],
					Count:       count,
				})
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, alloc)
				}
				if len(alloc.Granted) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No plots available to assign.")
					return nil
				}
				if len(alloc.Granted) < alloc.Requested {
					fmt.Fprintf(cmd.OutOrStdout(), "Assigned %d of %d requested plots to %s (pool exhausted):\n",
						len(alloc.Granted), alloc.Requested, alloc.AnnotatorID)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Assigned %d plots to %s:\n", len(alloc.Granted), alloc.AnnotatorID)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "  "+strings.Join(alloc.Granted, ", "))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
