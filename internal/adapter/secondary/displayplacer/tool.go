package displayplacer

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"dpui/internal/domain"
	"dpui/internal/logging"
)

var toolLog = logging.For("displayplacer")

// DefaultTimeout bounds a single tool invocation.
const DefaultTimeout = 10 * time.Second

// Tool implements domain.DisplayTool by running the displayplacer executable.
// This is a secondary adapter.
type Tool struct {
	path    string
	timeout time.Duration
}

// NewTool creates a tool runner for the executable at path (looked up in PATH
// when it has no separator). timeout <= 0 disables the bound.
func NewTool(path string, timeout time.Duration) *Tool {
	if path == "" {
		path = toolName
	}
	return &Tool{path: path, timeout: timeout}
}

// Report runs `displayplacer list` and parses the output.
func (t *Tool) Report(ctx context.Context) (domain.DisplayConfiguration, error) {
	out, err := t.run(ctx, "list displays", "list")
	if err != nil {
		return domain.DisplayConfiguration{}, err
	}
	displays, err := ParseReport(out)
	if err != nil {
		toolLog.Debugf("unparsed report:\n%s", out)
		return domain.DisplayConfiguration{}, err
	}
	toolLog.Infof("parsed %d display(s)", len(displays))
	return domain.DisplayConfiguration{Displays: displays, Raw: out}, nil
}

// Apply hands a configuration string to displayplacer.
func (t *Tool) Apply(ctx context.Context, config string) error {
	_, err := t.run(ctx, "apply config", ApplyArguments(config)...)
	return err
}

// SetEnabled enables or disables the display with the given id.
func (t *Tool) SetEnabled(ctx context.Context, id string, enabled bool) error {
	_, err := t.run(ctx, "toggle display", ToggleArgument(id, enabled))
	return err
}

// run executes the tool and classifies failures. In-flight calls are not
// cancellable by the caller; only the timeout ends them early.
func (t *Tool) run(ctx context.Context, op string, args ...string) (string, error) {
	ctx = context.WithoutCancel(ctx)
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	toolLog.Debugf("exec %s %q", t.path, args)
	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", &domain.Error{Kind: domain.KindToolTimeout, Op: op, Detail: t.timeout.String()}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return "", &domain.Error{
			Kind:     domain.KindToolFailed,
			Op:       op,
			ExitCode: exitErr.ExitCode(),
			Detail:   strings.TrimSpace(stderr.String()),
		}
	}
	return "", &domain.Error{Kind: domain.KindToolUnavailable, Op: op, Detail: t.path, Err: err}
}
