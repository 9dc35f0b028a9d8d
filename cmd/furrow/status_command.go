package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"furrow/internal/api"
	"furrow/internal/assignment"
	"furrow/internal/config"
	"furrow/internal/notify"
	"furrow/internal/server"
)

func (c *commandContext) adminService(cfg *config.Config, store *assignment.Store) (*api.AdminService, error) {
	provider, err := c.catalogProvider()
	if err != nil {
		return nil, err
	}
	roster, err := c.rosterProvider()
	if err != nil {
		return nil, err
	}
	return api.NewAdminService(store, provider, roster, notify.NewService(cfg), nil), nil
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show dataset and assignment coverage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *assignment.Store) error {
				admin, err := ctx.adminService(cfg, store)
				if err != nil {
					return err
				}
				status, err := admin.Status(cmd.Context(), server.Version)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, status)
				}

				rows := [][]string{
					{"Version", status.Version},
					{"Database", status.DatabasePath},
					{"Total plots", fmt.Sprintf("%d", status.TotalPlots)},
					{"Assigned", fmt.Sprintf("%d", status.AssignedPlots)},
					{"Unassigned", fmt.Sprintf("%d", status.UnassignedPlots)},
					{"Annotators", fmt.Sprintf("%d", status.Annotators)},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
