package usecase

import (
	"context"
	"fmt"

	"dpui/internal/domain"
	"dpui/internal/logging"
)

var displayLog = logging.For("displays")

// DisplayUseCase is the primary port for talking to the display tool.
type DisplayUseCase interface {
	Report(ctx context.Context) (domain.DisplayConfiguration, error)
	Apply(ctx context.Context, config string) error
	Toggle(ctx context.Context, id string, enabled bool) error
	ApplyPreset(ctx context.Context, id string) (domain.Preset, error)
}

type displayInteractor struct {
	tool    domain.DisplayTool
	presets PresetUseCase
}

// NewDisplayUseCase creates the display use case. presets is only needed
// for ApplyPreset.
func NewDisplayUseCase(tool domain.DisplayTool, presets PresetUseCase) DisplayUseCase {
	return &displayInteractor{tool: tool, presets: presets}
}

func (d *displayInteractor) Report(ctx context.Context) (domain.DisplayConfiguration, error) {
	cfg, err := d.tool.Report(ctx)
	if err != nil {
		return domain.DisplayConfiguration{}, err
	}
	displayLog.Debugf("report: %d display(s), %d enabled", len(cfg.Displays), cfg.EnabledCount())
	return cfg, nil
}

func (d *displayInteractor) Apply(ctx context.Context, config string) error {
	return d.tool.Apply(ctx, config)
}

func (d *displayInteractor) Toggle(ctx context.Context, id string, enabled bool) error {
	return d.tool.SetEnabled(ctx, id, enabled)
}

// ApplyPreset looks the preset up and hands its config to the tool.
func (d *displayInteractor) ApplyPreset(ctx context.Context, id string) (domain.Preset, error) {
	if d.presets == nil {
		return domain.Preset{}, fmt.Errorf("apply preset %s: no preset store configured", id)
	}
	p, err := d.presets.Get(id)
	if err != nil {
		return domain.Preset{}, err
	}
	displayLog.Infof("applying preset %q (%s)", p.Name, p.ID)
	if err := d.tool.Apply(ctx, p.Config); err != nil {
		return domain.Preset{}, err
	}
	return p, nil
}
