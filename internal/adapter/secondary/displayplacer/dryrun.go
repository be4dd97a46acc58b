package displayplacer

import (
	"context"
	"sync"

	"dpui/internal/domain"
)

// SampleReport is a trimmed `displayplacer list` output with two screens.
const SampleReport = `Persistent screen id: 37D8832A-2D66-02CA-B9F7-8F30A301B230
Contextual screen id: 1
Type: MacBook built in screen
Resolution: 1512x982
Origin: (0,0) - main display
Rotation: 0

Persistent screen id: 0A1B2C3D-4E5F-6789-ABCD-EF0123456789
Contextual screen id: 2
Type: 27 inch external screen
Resolution: 2560x1440
Origin: (1512,-458)
Rotation: 0

Execute the command below to set your screens to the current arrangement. If screen ids are switching, please run ` + "`displayplacer --help`" + ` for info on using contextual or serial ids instead of persistent ids.

displayplacer "id:37D8832A-2D66-02CA-B9F7-8F30A301B230 res:1512x982 hz:120 color_depth:8 enabled:true scaling:on origin:(0,0) degree:0" "id:0A1B2C3D-4E5F-6789-ABCD-EF0123456789 res:2560x1440 hz:60 color_depth:8 enabled:true scaling:off origin:(1512,-458) degree:0"
`

// DryRun implements domain.DisplayTool without touching the OS: reports come
// from a fixed text and applied arguments are only recorded.
// Useful for testing or non-macOS environments.
type DryRun struct {
	report string

	mu      sync.Mutex
	applied [][]string
}

// NewDryRun creates a dry-run tool answering Report with report
// (SampleReport when empty).
func NewDryRun(report string) *DryRun {
	if report == "" {
		report = SampleReport
	}
	return &DryRun{report: report}
}

func (d *DryRun) Report(ctx context.Context) (domain.DisplayConfiguration, error) {
	displays, err := ParseReport(d.report)
	if err != nil {
		return domain.DisplayConfiguration{}, err
	}
	return domain.DisplayConfiguration{Displays: displays, Raw: d.report}, nil
}

func (d *DryRun) Apply(ctx context.Context, config string) error {
	d.record(ApplyArguments(config))
	return nil
}

func (d *DryRun) SetEnabled(ctx context.Context, id string, enabled bool) error {
	d.record([]string{ToggleArgument(id, enabled)})
	return nil
}

// Applied returns every argv the dry run received, oldest first.
func (d *DryRun) Applied() [][]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]string, len(d.applied))
	copy(out, d.applied)
	return out
}

func (d *DryRun) record(args []string) {
	toolLog.Infof("dry run: %s %q", toolName, args)
	d.mu.Lock()
	d.applied = append(d.applied, args)
	d.mu.Unlock()
}
