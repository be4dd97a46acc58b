package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newDisplaysCmd() *cobra.Command {
	var asJSON, raw bool
	cmd := &cobra.Command{
		Use:     "displays",
		Aliases: []string{"list", "ls"},
		Short:   "Show the current display arrangement",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			cfg, err := a.displays.Report(cmd.Context())
			if err != nil {
				return err
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), cfg.Raw)
				return err
			}
			return printDisplays(cmd.OutOrStdout(), cfg, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON even on a terminal")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the displayplacer output verbatim")
	return cmd
}

func newApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <config>",
		Short: "Hand a raw configuration string to displayplacer",
		Example: `  dpui apply 'id:37D8832A res:1512x982 origin:(0,0) degree:0'
  dpui apply 'displayplacer "id:A res:1920x1080 origin:(0,0)" "id:B res:2560x1440 origin:(1920,0)"'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			if err := a.displays.Apply(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "applied")
			return nil
		},
	}
}

func newToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <display-id> <true|false>",
		Short: "Enable or disable one display",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("enabled must be true or false, got %q", args[1])
			}
			a, err := loadApp()
			if err != nil {
				return err
			}
			if err := a.displays.Toggle(cmd.Context(), args[0], enabled); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "display %s enabled=%t\n", args[0], enabled)
			return nil
		},
	}
}
