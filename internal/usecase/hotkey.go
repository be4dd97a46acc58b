package usecase

import (
	"errors"
	"sync"

	"dpui/internal/domain"
	"dpui/internal/logging"
)

var hotkeyLog = logging.For("hotkeys")

// HotkeyUseCase keeps the shortcut registry and the tray menu consistent with
// the preset store.
type HotkeyUseCase interface {
	// Sync reconciles registrations against presets and rebuilds the menu.
	Sync(presets []domain.Preset) error
	// OnStoreChanged is a StoreListener that calls Sync.
	OnStoreChanged(store domain.PresetStore) error
	Register(presetID, shortcut string) (domain.HotkeyBinding, error)
	Unregister(shortcut string) error
	UnregisterAll() error
	Validate(shortcut string) (string, error)
	IsAvailable(shortcut string) (bool, error)
	Bindings() []domain.HotkeyBinding
}

type hotkeyInteractor struct {
	registry  domain.HotkeyRegistry
	menu      domain.MenuNotifier
	publisher domain.EventPublisher

	mu sync.Mutex
}

// NewHotkeyUseCase wires the consistency layer. menu and publisher may be nil.
func NewHotkeyUseCase(registry domain.HotkeyRegistry, menu domain.MenuNotifier, publisher domain.EventPublisher) HotkeyUseCase {
	return &hotkeyInteractor{registry: registry, menu: menu, publisher: publisher}
}

func (h *hotkeyInteractor) Sync(presets []domain.Preset) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, p := range domain.InvalidHotkeys(presets) {
		hotkeyLog.Warnf("preset %s (%q) has unusable hotkey %q, not registered", p.ID, p.Name, p.Hotkey)
	}
	effects := domain.PlanHotkeys(h.registry.Bindings(), presets)
	var errs []error
	for _, eff := range effects {
		var err error
		switch eff.Type {
		case domain.EffectUnregister:
			err = h.registry.Unregister(eff.Binding.Shortcut)
		case domain.EffectRegister:
			err = h.register(eff.Binding)
		case domain.EffectRebuildMenu:
			if h.menu != nil {
				err = h.menu.Rebuild(presets)
			}
		}
		if err != nil {
			hotkeyLog.Warnf("%s %s: %v", eff.Type, eff.Binding.Shortcut, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *hotkeyInteractor) OnStoreChanged(store domain.PresetStore) error {
	return h.Sync(store.Presets)
}

func (h *hotkeyInteractor) register(b domain.HotkeyBinding) error {
	presetID := b.PresetID
	err := h.registry.Register(b, func() {
		hotkeyLog.Infof("hotkey fired for preset %s", presetID)
		h.publish(domain.Event{Type: domain.EventHotkeyFired, PresetID: presetID})
	})
	if err != nil {
		return err
	}
	h.publish(domain.Event{Type: domain.EventHotkeyRegistered, PresetID: presetID, Payload: b})
	return nil
}

func (h *hotkeyInteractor) publish(ev domain.Event) {
	if h.publisher != nil {
		h.publisher.Publish(ev)
	}
}

// Register binds shortcut to presetID directly. The binding lasts until the
// next Sync drops it unless the preset's stored hotkey matches.
func (h *hotkeyInteractor) Register(presetID, shortcut string) (domain.HotkeyBinding, error) {
	sc, err := domain.ParseShortcut(shortcut)
	if err != nil {
		return domain.HotkeyBinding{}, err
	}
	b := domain.BindingFor(domain.Preset{ID: presetID, Name: presetID, Hotkey: sc.String()})

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.register(b); err != nil {
		return domain.HotkeyBinding{}, err
	}
	return b, nil
}

func (h *hotkeyInteractor) Unregister(shortcut string) error {
	if _, err := domain.ParseShortcut(shortcut); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.registry.Unregister(shortcut)
}

func (h *hotkeyInteractor) UnregisterAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	var errs []error
	for _, b := range h.registry.Bindings() {
		if err := h.registry.Unregister(b.Shortcut); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Validate returns the normalized form of shortcut.
func (h *hotkeyInteractor) Validate(shortcut string) (string, error) {
	sc, err := domain.ParseShortcut(shortcut)
	if err != nil {
		return "", err
	}
	return sc.String(), nil
}

// IsAvailable reports whether shortcut is valid and not yet registered.
func (h *hotkeyInteractor) IsAvailable(shortcut string) (bool, error) {
	sc, err := domain.ParseShortcut(shortcut)
	if err != nil {
		return false, err
	}
	return !h.registry.IsRegistered(sc.String()), nil
}

func (h *hotkeyInteractor) Bindings() []domain.HotkeyBinding {
	return h.registry.Bindings()
}
