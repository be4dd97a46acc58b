package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newHotkeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hotkey",
		Aliases: []string{"hotkeys"},
		Short:   "Inspect and drive the hotkey registry",
		Long: `Hotkeys are registered from the presets' stored shortcuts whenever the
preset store changes. Key capture itself is left to an external tool
(skhd, Hammerspoon, ...) which calls "dpui hotkey fire" or POST /api/hotkeys/fire.`,
	}
	cmd.AddCommand(
		newHotkeyListCmd(),
		newHotkeyRegisterCmd(),
		newHotkeyUnregisterCmd(),
		newHotkeyValidateCmd(),
		newHotkeyAvailableCmd(),
		newHotkeyFireCmd(),
	)
	return cmd
}

func newHotkeyListCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered shortcuts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			bindings := a.hotkeys.Bindings()
			if wantJSON(cmd.OutOrStdout(), asJSON) {
				return printJSON(cmd.OutOrStdout(), bindings)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SHORTCUT\tPRESET\tDESCRIPTION")
			for _, b := range bindings {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Shortcut, b.PresetID, b.Description)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON even on a terminal")
	return cmd
}

func newHotkeyRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <preset-id> <shortcut>",
		Short: "Bind a shortcut to a preset for this session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			b, err := a.hotkeys.Register(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered %s -> %s\n", b.Shortcut, b.PresetID)
			return nil
		},
	}
}

func newHotkeyUnregisterCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "unregister [shortcut]",
		Short: "Remove a shortcut binding (or all with --all)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("give either a shortcut or --all")
			}
			a, err := loadApp()
			if err != nil {
				return err
			}
			if all {
				if err := a.hotkeys.UnregisterAll(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "unregistered all hotkeys")
				return nil
			}
			if err := a.hotkeys.Unregister(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "unregistered %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "unregister every shortcut")
	return cmd
}

func newHotkeyValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <shortcut>",
		Short: "Check a shortcut string and print its normalized form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			normalized, err := a.hotkeys.Validate(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), normalized)
			return nil
		},
	}
}

func newHotkeyAvailableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "available <shortcut>",
		Short: "Report whether a shortcut is free",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			ok, err := a.hotkeys.IsAvailable(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}

func newHotkeyFireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fire <shortcut>",
		Short: "Act as if the shortcut was pressed: apply its preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			b, err := a.registry.Fire(args[0])
			if err != nil {
				return err
			}
			p, err := a.displays.ApplyPreset(cmd.Context(), b.PresetID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s applied preset %q\n", b.Shortcut, p.Name)
			return nil
		},
	}
}
