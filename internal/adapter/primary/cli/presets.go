package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dpui/internal/adapter/secondary/displayplacer"
	"dpui/internal/adapter/secondary/repository"
	"dpui/internal/domain"
)

func newPresetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "preset",
		Aliases: []string{"presets"},
		Short:   "Manage saved display presets",
	}
	cmd.AddCommand(
		newPresetListCmd(),
		newPresetAddCmd(),
		newPresetSaveCurrentCmd(),
		newPresetUpdateCmd(),
		newPresetDeleteCmd(),
		newPresetApplyCmd(),
		newPresetExportCmd(),
		newPresetImportCmd(),
	)
	return cmd
}

func newPresetListCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List presets in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			store, err := a.presets.Load()
			if err != nil {
				return err
			}
			return printPresets(cmd.OutOrStdout(), store.Presets, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON even on a terminal")
	return cmd
}

func newPresetAddCmd() *cobra.Command {
	var hotkey string
	cmd := &cobra.Command{
		Use:   "add <name> <config>",
		Short: "Save a configuration string as a new preset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			p, err := a.presets.Add(args[0], args[1], hotkey)
			if p.ID == "" {
				return err
			}
			if err := printPreset(cmd.OutOrStdout(), p); err != nil {
				return err
			}
			return warnOnly(cmd.ErrOrStderr(), err)
		},
	}
	cmd.Flags().StringVar(&hotkey, "hotkey", "", "shortcut that applies the preset, e.g. Cmd+Shift+1")
	return cmd
}

func newPresetSaveCurrentCmd() *cobra.Command {
	var hotkey string
	cmd := &cobra.Command{
		Use:   "save-current <name>",
		Short: "Save the current display arrangement as a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			cfg, err := a.displays.Report(cmd.Context())
			if err != nil {
				return err
			}
			line, ok := displayplacer.ApplyCommand(cfg.Raw)
			if !ok {
				return &domain.Error{Kind: domain.KindParse, Op: "save current", Detail: "no apply command in displayplacer output"}
			}
			p, err := a.presets.Add(args[0], line, hotkey)
			if p.ID == "" {
				return err
			}
			if err := printPreset(cmd.OutOrStdout(), p); err != nil {
				return err
			}
			return warnOnly(cmd.ErrOrStderr(), err)
		},
	}
	cmd.Flags().StringVar(&hotkey, "hotkey", "", "shortcut that applies the preset")
	return cmd
}

func newPresetUpdateCmd() *cobra.Command {
	var (
		name, config, hotkey string
		clearHotkey          bool
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a preset's name, config or hotkey",
		Long:  "Only the flags given are changed. --clear-hotkey (or --hotkey '') removes the binding.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.PresetPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("config") {
				patch.Config = &config
			}
			switch {
			case clearHotkey && cmd.Flags().Changed("hotkey") && hotkey != "":
				return errors.New("--hotkey and --clear-hotkey are mutually exclusive")
			case clearHotkey:
				patch.Hotkey = domain.ClearHotkey().Hotkey
			case cmd.Flags().Changed("hotkey"):
				patch.Hotkey = &hotkey
			}

			a, err := loadApp()
			if err != nil {
				return err
			}
			p, err := a.presets.Update(args[0], patch)
			if p.ID == "" {
				return err
			}
			if err := printPreset(cmd.OutOrStdout(), p); err != nil {
				return err
			}
			return warnOnly(cmd.ErrOrStderr(), err)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&config, "config", "", "new configuration string")
	cmd.Flags().StringVar(&hotkey, "hotkey", "", "new shortcut")
	cmd.Flags().BoolVar(&clearHotkey, "clear-hotkey", false, "remove the hotkey binding")
	return cmd
}

func newPresetDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a preset (no error if it does not exist)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			if err := warnOnly(cmd.ErrOrStderr(), a.presets.Delete(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newPresetApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <id>",
		Short: "Apply a saved preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			p, err := a.displays.ApplyPreset(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied preset %q\n", p.Name)
			return nil
		},
	}
}

func newPresetExportCmd() *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all presets as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := repository.ParseFormat(format)
			if err != nil {
				return err
			}
			a, err := loadApp()
			if err != nil {
				return err
			}
			store, err := a.presets.Load()
			if err != nil {
				return err
			}
			data, err := repository.Export(store, f)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(output, data, 0o644)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newPresetImportCmd() *cobra.Command {
	var (
		format  string
		replace bool
	)
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import presets from a JSON or YAML export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = formatFromPath(args[0])
			}
			f, err := repository.ParseFormat(format)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			in, err := repository.Import(data, f)
			if err != nil {
				return err
			}
			a, err := loadApp()
			if err != nil {
				return err
			}
			n, err := a.presets.Import(in, replace)
			if n == 0 && err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d preset(s)\n", n)
			return warnOnly(cmd.ErrOrStderr(), err)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "json or yaml (default: from file extension)")
	cmd.Flags().BoolVar(&replace, "replace", false, "replace all existing presets instead of merging")
	return cmd
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return string(repository.FormatYAML)
	default:
		return string(repository.FormatJSON)
	}
}
