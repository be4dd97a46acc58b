package cli

import (
	"github.com/spf13/cobra"

	"dpui/internal/logging"
	"dpui/internal/settings"
)

var (
	settingsFile string
	verbosity    int
	dryRun       bool

	// resolved by the root PersistentPreRunE
	current settings.Settings
)

// settingsOptional marks commands that run even if --settings names a
// file that does not exist yet.
const settingsOptional = "settings-optional"

// NewRootCmd creates the root CLI command.
// This is the primary adapter that translates CLI inputs to use case calls.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dpui",
		Short:         "Inspect displays and apply saved display presets via displayplacer",
		Long:          "CLI, interactive shell and HTTP server around displayplacer with named presets and hotkeys",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	def := settings.Default()
	pf := cmd.PersistentFlags()
	pf.StringVar(&settingsFile, "settings", "", "settings file (default "+settings.DefaultFile()+")")
	pf.CountVarP(&verbosity, "verbose", "v", "increase logging (-v, -vv, ... up to 4 times)")
	pf.BoolVar(&dryRun, "dry-run", false, "do not run displayplacer; use a canned report and only log what would be applied")
	pf.String("tool", def.Tool, "displayplacer executable")
	pf.Duration("timeout", def.Timeout, "displayplacer timeout (0 = none)")
	pf.String("presets", def.Presets, "presets file")
	pf.String("log-level", def.LogLevel, "log level (error|warn|info|debug|trace)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		file := settingsFile
		if cmd.Annotations[settingsOptional] != "" && !fileExists(file) {
			file = ""
		}
		s, err := settings.Load(file, cmd.Flags())
		if err != nil {
			return err
		}
		current = s
		if verbosity > 0 {
			logging.SetVerbosity(verbosity)
		} else if err := logging.SetLevelName(s.LogLevel); err != nil {
			return err
		}
		return nil
	}

	cmd.AddCommand(
		newDisplaysCmd(),
		newApplyCmd(),
		newToggleCmd(),
		newPresetCmd(),
		newHotkeyCmd(),
		newServeCmd(),
		newSettingsCmd(),
		newShellCmd(),
	)

	return cmd
}

func loadApp() (*app, error) {
	return currentApp(current, dryRun)
}
