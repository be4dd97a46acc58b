package usecase

import (
	"context"

	"dpui/internal/domain"
)

// Dispatch reacts to inbound tray and hotkey events until ctx is cancelled
// or events is closed. Preset events apply the preset; refresh re-reads the
// display report and republishes it as the event payload.
func Dispatch(ctx context.Context, events <-chan domain.Event, displays DisplayUseCase, publisher domain.EventPublisher) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			handleEvent(ctx, ev, displays, publisher)
		}
	}
}

func handleEvent(ctx context.Context, ev domain.Event, displays DisplayUseCase, publisher domain.EventPublisher) {
	switch ev.Type {
	case domain.EventApplyPreset, domain.EventHotkeyFired:
		if _, err := displays.ApplyPreset(ctx, ev.PresetID); err != nil {
			displayLog.Errorf("apply preset %s from %s: %v", ev.PresetID, ev.Type, err)
		}
	case domain.EventRefreshDisplays:
		// already answered; this is our own republished report
		if ev.Payload != nil {
			return
		}
		cfg, err := displays.Report(ctx)
		if err != nil {
			displayLog.Errorf("refresh displays: %v", err)
			return
		}
		if publisher != nil {
			publisher.Publish(domain.Event{Type: domain.EventRefreshDisplays, Payload: cfg})
		}
	}
}
