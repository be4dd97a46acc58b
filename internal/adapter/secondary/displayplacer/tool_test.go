package displayplacer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"

	"dpui/internal/domain"
)

func TestToggleArgument(t *testing.T) {
	if got := ToggleArgument("37D8", false); got != "id:37D8 enabled:false" {
		t.Fatalf("ToggleArgument = %q", got)
	}
	if got := ToggleArgument("37D8", true); got != "id:37D8 enabled:true" {
		t.Fatalf("ToggleArgument = %q", got)
	}
}

func TestApplyArguments(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"id:A res:1920x1080 origin:(0,0) degree:0", []string{"id:A res:1920x1080 origin:(0,0) degree:0"}},
		{`"id:A origin:(0,0)" "id:B origin:(1920,0)"`, []string{"id:A origin:(0,0)", "id:B origin:(1920,0)"}},
		{`displayplacer "id:A origin:(0,0)" "id:B origin:(1920,0)"`, []string{"id:A origin:(0,0)", "id:B origin:(1920,0)"}},
		{`/opt/homebrew/bin/displayplacer "id:A origin:(0,0)"`, []string{"id:A origin:(0,0)"}},
		{`"id:A origin:(0,0)`, []string{`"id:A origin:(0,0)`}},
	}
	for _, tt := range tests {
		if got := ApplyArguments(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("ApplyArguments(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// fakeTool writes a shell script standing in for displayplacer.
func fakeTool(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake needs a POSIX shell")
	}
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.txt")
	if err := os.WriteFile(reportPath, []byte(SampleReport), 0o644); err != nil {
		t.Fatal(err)
	}
	argsPath := filepath.Join(dir, "args.txt")
	script := `#!/bin/sh
case "$1" in
  list) cat "` + reportPath + `" ;;
  fail*) echo "Unable to find screen $1" >&2; exit 3 ;;
  slow) exec sleep 5 ;;
  *) for a in "$@"; do echo "$a"; done > "` + argsPath + `" ;;
esac
`
	path := filepath.Join(dir, "displayplacer")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestToolReport(t *testing.T) {
	tool := NewTool(fakeTool(t), time.Second)
	cfg, err := tool.Report(context.Background())
	if err != nil {
		t.Fatalf("Report error: %v", err)
	}
	if len(cfg.Displays) != 2 {
		t.Fatalf("expected 2 displays, got %d", len(cfg.Displays))
	}
	if cfg.Raw != SampleReport {
		t.Fatal("Raw should keep the tool output verbatim")
	}
}

func TestToolApplySplitsQuotedConfig(t *testing.T) {
	path := fakeTool(t)
	tool := NewTool(path, time.Second)
	if err := tool.Apply(context.Background(), `"id:A origin:(0,0)" "id:B origin:(10,0)"`); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(filepath.Dir(path), "args.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(data)); got != "id:A origin:(0,0)\nid:B origin:(10,0)" {
		t.Fatalf("tool received %q", got)
	}
}

func TestToolFailureCarriesStderr(t *testing.T) {
	tool := NewTool(fakeTool(t), time.Second)
	err := tool.Apply(context.Background(), "fail-now")

	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *domain.Error, got %T %v", err, err)
	}
	if de.Kind != domain.KindToolFailed || de.ExitCode != 3 {
		t.Fatalf("unexpected error %+v", de)
	}
	if !strings.Contains(de.Detail, "Unable to find screen") {
		t.Fatalf("stderr not carried: %q", de.Detail)
	}
}

func TestToolTimeout(t *testing.T) {
	tool := NewTool(fakeTool(t), 100*time.Millisecond)
	err := tool.Apply(context.Background(), "slow")
	if !errors.Is(err, domain.ErrToolTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
}

func TestToolUnavailable(t *testing.T) {
	tool := NewTool(filepath.Join(t.TempDir(), "no-such-displayplacer"), time.Second)
	_, err := tool.Report(context.Background())
	if !errors.Is(err, domain.ErrToolUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestDryRunRecordsArguments(t *testing.T) {
	d := NewDryRun("")
	ctx := context.Background()
	if err := d.SetEnabled(ctx, "A", false); err != nil {
		t.Fatal(err)
	}
	if err := d.Apply(ctx, "id:A origin:(0,0)"); err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"id:A enabled:false"}, {"id:A origin:(0,0)"}}
	if got := d.Applied(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Applied = %q, want %q", got, want)
	}
	cfg, err := d.Report(ctx)
	if err != nil || len(cfg.Displays) != 2 {
		t.Fatalf("Report = %+v, %v", cfg, err)
	}
}
