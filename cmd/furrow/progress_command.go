package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"furrow/internal/assignment"
	"furrow/internal/config"
)

func newProgressCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "progress [annotator-id]",
		Short: "Show completion progress, per annotator or service-wide",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *assignment.Store) error {
				if len(args) == 1 {
					progress, err := store.ProgressFor(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					if jsonOut {
						return writeJSON(cmd, progress)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d complete (%.1f%%)\n",
						progress.AnnotatorID, progress.Completed, progress.Assigned, progress.Percent)
					return nil
				}

				admin, err := ctx.adminService(cfg, store)
				if err != nil {
					return err
				}
				global, err := admin.GlobalProgress(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, global)
				}

				rows := make([][]string, 0, len(global.Annotators))
				for _, p := range global.Annotators {
					name := p.Name
					if name == "" {
						name = p.AnnotatorID
					}
					rows = append(rows, []string{
						p.AnnotatorID,
						name,
						fmt.Sprintf("%d", p.Assigned),
						fmt.Sprintf("%d", p.Completed),
						fmt.Sprintf("%d", p.Remaining),
						fmt.Sprintf("%.1f%%", p.Percent),
					})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable(
					[]string{"Annotator", "Name", "Assigned", "Completed", "Remaining", "Percent"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
				))
				fmt.Fprintf(out, "Plots: %d total, %d assigned, %d unassigned\n",
					global.TotalPlots, global.AssignedPlots, global.UnassignedPlots)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
