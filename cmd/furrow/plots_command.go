package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"furrow/internal/assignment"
	"furrow/internal/config"
)

type plotListing struct {
	PlotID      string `json:"plotId"`
	AnnotatorID string `json:"annotatorId,omitempty"`
	Completed   bool   `json:"completed"`
}

func newPlotsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var unassignedOnly bool

	cmd := &cobra.Command{
		Use:   "plots",
		Short: "List catalog plots and their assignment state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *assignment.Store) error {
				provider, err := ctx.catalogProvider()
				if err != nil {
					return err
				}
				plots, err := provider.Plots(cmd.Context())
				if err != nil {
					return err
				}
				assignments, err := store.Assignments(cmd.Context())
				if err != nil {
					return err
				}
				byPlot := make(map[string]*assignment.Assignment, len(assignments))
				for _, a := range assignments {
					byPlot[a.PlotID] = a
				}

				listings := make([]plotListing, 0, len(plots))
				for _, plotID := range plots {
					listing := plotListing{PlotID: plotID}
					if a, ok := byPlot[plotID]; ok {
						if unassignedOnly {
							continue
						}
						listing.AnnotatorID = a.AnnotatorID
						listing.Completed = a.Completed
					}
					listings = append(listings, listing)
				}

				if jsonOut {
					return writeJSON(cmd, listings)
				}
				out := cmd.OutOrStdout()
				colorize := isTerminal(out)
				rows := make([][]string, 0, len(listings))
				for _, l := range listings {
					state := "-"
					if l.AnnotatorID != "" {
						state = "open"
						if l.Completed {
							state = "done"
						}
					}
					rows = append(rows, []string{l.PlotID, l.AnnotatorID, colorizeState(state, colorize)})
				}
				fmt.Fprintln(out, renderTable([]string{"Plot", "Annotator", "State"}, rows, nil))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	cmd.Flags().BoolVar(&unassignedOnly, "unassigned", false, "Show only unassigned plots")
	return cmd
}
