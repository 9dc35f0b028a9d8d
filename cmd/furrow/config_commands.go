package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"furrow/internal/config"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("write sample config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVar(&targetPath, "path", "", "Target path for the sample config")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing config file")
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:         "show",
		Short:       "Show the resolved configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if flag := cmd.Flags().Lookup("config"); flag != nil {
				path = flag.Value.String()
			} else if root := cmd.Root(); root != nil {
				if flag := root.PersistentFlags().Lookup("config"); flag != nil {
					path = flag.Value.String()
				}
			}
			cfg, resolved, exists, err := config.Load(path)
			if err != nil {
				return err
			}

			redacted := *cfg
			redacted.Annotators = make([]config.Annotator, len(cfg.Annotators))
			for i, a := range cfg.Annotators {
				a.Token = "********"
				redacted.Annotators[i] = a
			}

			if jsonOut {
				return writeJSON(cmd, map[string]any{
					"path":   resolved,
					"exists": exists,
					"config": redacted,
				})
			}

			out := cmd.OutOrStdout()
			source := resolved
			if !exists {
				source = fmt.Sprintf("%s (not found, showing defaults)", filepath.Clean(resolved))
			}
			fmt.Fprintf(out, "Config: %s\n", source)
			fmt.Fprintf(out, "Dataset dir:  %s\n", redacted.Paths.DatasetDir)
			fmt.Fprintf(out, "Log dir:      %s\n", redacted.Paths.LogDir)
			fmt.Fprintf(out, "Bind:         %s\n", redacted.Server.Bind)
			fmt.Fprintf(out, "Log format:   %s (%s)\n", redacted.Logging.Format, redacted.Logging.Level)
			fmt.Fprintf(out, "Ntfy topic:   %s\n", displayOrNone(redacted.Notifications.NtfyTopic))
			fmt.Fprintf(out, "Annotators:   %d\n", len(redacted.Annotators))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

func displayOrNone(value string) string {
	if strings.TrimSpace(value) == "" {
		return "(none)"
	}
	return value
}
