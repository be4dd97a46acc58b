package cli

import (
	"context"
	"sync"

	"dpui/internal/adapter/secondary/displayplacer"
	"dpui/internal/adapter/secondary/events"
	"dpui/internal/adapter/secondary/hotkey"
	"dpui/internal/adapter/secondary/repository"
	"dpui/internal/adapter/secondary/tray"
	"dpui/internal/domain"
	"dpui/internal/logging"
	"dpui/internal/settings"
	"dpui/internal/usecase"
)

// app holds the adapters and use cases for one settings/dry-run combination.
// The interactive shell reuses it across commands so hotkey registrations
// and the preset actor survive between lines.
type app struct {
	key appKey

	tool     domain.DisplayTool
	repo     *repository.FileRepository
	hub      *events.Hub
	registry *hotkey.Registry
	menu     *tray.Menu

	displays usecase.DisplayUseCase
	presets  usecase.PresetUseCase
	hotkeys  usecase.HotkeyUseCase

	stop context.CancelFunc
}

type appKey struct {
	settings settings.Settings
	dryRun   bool
}

var (
	appMu     sync.Mutex
	sharedApp *app
)

// currentApp returns the cached app for s, building a new one when the
// settings changed since the last call.
func currentApp(s settings.Settings, dry bool) (*app, error) {
	appMu.Lock()
	defer appMu.Unlock()

	key := appKey{settings: s, dryRun: dry}
	if sharedApp != nil && sharedApp.key == key {
		return sharedApp, nil
	}
	if sharedApp != nil {
		sharedApp.close()
		sharedApp = nil
	}
	a, err := newApp(key)
	if err != nil {
		return nil, err
	}
	sharedApp = a
	return a, nil
}

func newApp(key appKey) (*app, error) {
	repo, err := repository.NewFileRepository(key.settings.Presets)
	if err != nil {
		return nil, err
	}

	var tool domain.DisplayTool
	if key.dryRun {
		tool = displayplacer.NewDryRun("")
	} else {
		tool = displayplacer.NewTool(key.settings.Tool, key.settings.Timeout)
	}

	hub := events.NewHub(events.DefaultBuffer)
	registry := hotkey.NewRegistry()
	menu := tray.NewMenu(hub)
	hotkeys := usecase.NewHotkeyUseCase(registry, menu, hub)
	presets := usecase.NewPresetUseCase(repo, hotkeys.OnStoreChanged)

	ctx, cancel := context.WithCancel(context.Background())
	presets.Start(ctx)

	a := &app{
		key:      key,
		tool:     tool,
		repo:     repo,
		hub:      hub,
		registry: registry,
		menu:     menu,
		displays: usecase.NewDisplayUseCase(tool, presets),
		presets:  presets,
		hotkeys:  hotkeys,
		stop:     cancel,
	}
	a.syncHotkeys()
	return a, nil
}

// syncHotkeys registers the stored presets' hotkeys. A broken store or a
// conflicting binding is logged; commands that need the store report it.
func (a *app) syncHotkeys() {
	store, err := a.presets.Load()
	if err != nil {
		logging.Warnf("presets not loaded: %v", err)
		return
	}
	if err := a.hotkeys.Sync(store.Presets); err != nil {
		logging.Warnf("hotkey sync: %v", err)
	}
}

func (a *app) close() {
	if a.stop != nil {
		a.stop()
	}
}
