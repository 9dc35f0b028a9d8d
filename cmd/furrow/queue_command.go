package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"furrow/internal/assignment"
	"furrow/internal/config"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "queue <annotator-id>",
		Short: "Show an annotator's queue and resume position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *assignment.Store) error {
				entries, start, err := store.Queue(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, map[string]any{
						"annotatorId": args[0],
						"startIndex":  start,
						"entries":     entries,
					})
				}
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty.")
					return nil
				}

				out := cmd.OutOrStdout()
				colorize := isTerminal(out)
				rows := make([][]string, 0, len(entries))
				for i, a := range entries {
					marker := ""
					if i == start {
						marker = "->"
					}
					state := "open"
					if a.Completed {
						state = "done"
					}
					rows = append(rows, []string{marker, fmt.Sprintf("%d", i), a.PlotID, colorizeState(state, colorize)})
				}
				fmt.Fprintln(out, renderTable([]string{"", "#", "Plot", "State"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft, alignLeft}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
