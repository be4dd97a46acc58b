package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"dpui/internal/logging"
)

func newShellCmd() *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive shell that runs dpui subcommands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveShell(prompt, inheritedFlags(cmd))
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", "dpui> ", "prompt string")
	return cmd
}

// inheritedFlags returns the root flags set when the shell started so every
// line runs against the same settings, presets file and dry-run mode.
func inheritedFlags(cmd *cobra.Command) []string {
	var out []string
	cmd.Root().PersistentFlags().Visit(func(f *pflag.Flag) {
		if f.Name == "verbose" {
			return
		}
		out = append(out, "--"+f.Name+"="+f.Value.String())
	})
	return out
}

func runInteractiveShell(prompt string, inherited []string) error {
	historyFile := filepath.Join(os.TempDir(), "dpui-shell.history")
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	sessionVerbosity := verbosity
	fmt.Println("Interactive shell. 'help' for examples, 'exit' to quit.")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			fmt.Println()
			continue
		}
		if err == io.EOF {
			fmt.Println()
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch line {
		case "exit", "quit":
			fmt.Println("Bye!")
			return nil
		case "help":
			printShellHelp()
			continue
		}
		tokens, err := shlex.Split(line)
		if err != nil {
			fmt.Printf("Parse error: %v\n", err)
			continue
		}
		if len(tokens) == 0 {
			continue
		}
		if tokens[0] == "log" {
			if err := handleShellLog(tokens[1:], &sessionVerbosity); err != nil {
				fmt.Printf("log: %v\n", err)
			}
			continue
		}
		if tokens[0] == "shell" {
			fmt.Println("Already inside the shell. Enter another command or 'exit'.")
			continue
		}

		args := append(tokens, inherited...)
		if sessionVerbosity > 0 {
			args = append(args, fmt.Sprintf("--verbose=%d", sessionVerbosity))
		}
		if err := executeArgs(args); err != nil {
			fmt.Printf("command error: %v\n", err)
		}
	}
}

func executeArgs(args []string) error {
	if len(args) == 0 {
		return nil
	}
	root := NewRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func handleShellLog(args []string, sessionVerbosity *int) error {
	fs := pflag.NewFlagSet("log", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var vcount int
	var level string
	var show bool
	fs.CountVarP(&vcount, "verbose", "v", "Increase verbosity (-v... up to 4)")
	fs.StringVar(&level, "level", "", "level (error|warn|info|debug|trace)")
	fs.BoolVarP(&show, "show", "s", false, "show the current level")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case show && vcount == 0 && level == "":
		fmt.Printf("log level: %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
		return nil
	case level != "":
		_, count, err := logging.ParseLevel(level)
		if err != nil {
			return err
		}
		*sessionVerbosity = count
	case vcount > 0:
		*sessionVerbosity = vcount
	default:
		fmt.Printf("log level: %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
		return nil
	}

	logging.SetVerbosity(*sessionVerbosity)
	fmt.Printf("log level set to %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
	return nil
}

func printShellHelp() {
	fmt.Println(`Examples:
  displays                                # current arrangement
  toggle 37D8832A-... false               # disable one display
  apply 'id:37D8832A-... res:1512x982'    # apply a raw config string
  preset list                             # saved presets
  preset save-current Desk --hotkey Cmd+Shift+1
  preset update <id> --clear-hotkey       # drop the binding
  preset apply <id>                       # apply a preset
  hotkey list                             # registered shortcuts
  hotkey fire Cmd+Shift+1                 # act like the shortcut was pressed
  serve --addr 127.0.0.1:7071             # HTTP API + UI
  log -vv                                 # more logging
  log --show                              # current log level
  exit / quit                             # leave the shell`)
}
