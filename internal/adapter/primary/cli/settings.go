package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dpui/internal/settings"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or initialize runtime settings",
	}
	cmd.AddCommand(newSettingsShowCmd(), newSettingsInitCmd())
	return cmd
}

func newSettingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings (defaults, file, DPUI_* env, flags)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"tool":     current.Tool,
				"timeout":  current.Timeout.String(),
				"presets":  current.Presets,
				"addr":     current.Addr,
				"logLevel": current.LogLevel,
			})
		},
	}
}

func newSettingsInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write the effective settings to the settings file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{settingsOptional: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := settingsFile
			if path == "" {
				path = settings.DefaultFile()
			}
			if !force && fileExists(path) {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			written, err := settings.SaveTo(current, path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", written)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
