package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"furrow/internal/assignment"
	"furrow/internal/config"
	"furrow/internal/export"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export annotation records as CSV or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != export.FormatCSV && format != export.FormatJSON {
				return fmt.Errorf("format must be %s or %s", export.FormatCSV, export.FormatJSON)
			}
			return ctx.withStore(func(cfg *config.Config, store *assignment.Store) error {
				records, err := store.Records(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if output != "" {
					file, err := os.Create(output)
					if err != nil {
						return fmt.Errorf("create output file: %w", err)
					}
					defer file.Close()
					out = file
				}

				if format == export.FormatJSON {
					return export.WriteJSON(out, records)
				}
				return export.WriteCSV(out, records)
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", export.FormatCSV, "Output format: csv or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}
