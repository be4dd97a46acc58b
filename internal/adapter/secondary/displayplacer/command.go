package displayplacer

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/shlex"
)

// ToggleArgument builds the single argument that enables or disables one
// display. No other fields are sent, so resolution, origin and rotation are
// left to whatever the tool last applied.
func ToggleArgument(id string, enabled bool) string {
	return "id:" + id + " enabled:" + strconv.FormatBool(enabled)
}

// ApplyArguments turns a stored configuration string into the tool's argv.
//
// A plain string is passed through as one argument. A string with quotes,
// such as a full `displayplacer "id:A ..." "id:B ..."` line copied from the
// list output, is split with shell rules and a leading tool name is dropped.
// Unbalanced quotes fall back to the verbatim string.
func ApplyArguments(config string) []string {
	if !strings.ContainsAny(config, `"'`) {
		return []string{config}
	}
	args, err := shlex.Split(config)
	if err != nil || len(args) == 0 {
		toolLog.Debugf("config not shell-splittable (%v), passing verbatim", err)
		return []string{config}
	}
	if filepath.Base(args[0]) == toolName {
		args = args[1:]
	}
	if len(args) == 0 {
		return []string{config}
	}
	return args
}
