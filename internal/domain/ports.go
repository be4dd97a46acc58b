package domain

import "context"

// DisplayTool is a secondary port for the external display-configuration CLI.
// This interface is defined in the domain layer and implemented by adapters.
type DisplayTool interface {
	// Report runs the tool's listing command and parses its output.
	Report(ctx context.Context) (DisplayConfiguration, error)
	// Apply hands a raw configuration string to the tool. A string without
	// quote characters is passed as exactly one argument. A quoted string, such
	// as a full `displayplacer "id:A ..." "id:B ..."` line, is split with shell
	// rules into one argument per clause and a leading tool name is dropped.
	Apply(ctx context.Context, config string) error
	// SetEnabled toggles one display by id. Resolution, origin and rotation
	// are not sent and stay whatever the tool last applied.
	SetEnabled(ctx context.Context, id string, enabled bool) error
}

// PresetRepository is a secondary port that persists the preset collection.
type PresetRepository interface {
	// Load returns the stored collection. A missing file is an empty store.
	Load() (PresetStore, error)
	// Save replaces the stored collection without partial overwrites.
	Save(store PresetStore) error
	// Update runs load, fn, save while holding the repository's writer lock.
	// The store is not saved if fn returns an error.
	Update(fn func(*PresetStore) error) (PresetStore, error)
}

// HotkeyBinding ties a normalized shortcut to the preset it applies.
type HotkeyBinding struct {
	PresetID    string `json:"presetId"`
	Shortcut    string `json:"shortcut"`
	Description string `json:"description"`
}

// HotkeyRegistry is a secondary port over the process-wide shortcut table.
// A shortcut maps to at most one registration.
type HotkeyRegistry interface {
	// Register fails with KindHotkeyInUse if the shortcut is already held.
	Register(binding HotkeyBinding, onFire func()) error
	// Unregister is a no-op for shortcuts that are not registered.
	Unregister(shortcut string) error
	IsRegistered(shortcut string) bool
	Bindings() []HotkeyBinding
}

// MenuNotifier asks the tray layer to rebuild its preset menu.
type MenuNotifier interface {
	Rebuild(presets []Preset) error
}

// EventType names an outbound notification toward the UI or tray.
type EventType string

const (
	EventPresetsChanged   EventType = "presets-changed"
	EventApplyPreset      EventType = "apply-preset-from-tray"
	EventRefreshDisplays  EventType = "refresh-displays"
	EventHotkeyFired      EventType = "apply-preset-hotkey"
	EventHotkeyRegistered EventType = "hotkey-registered"
	EventShowWindow       EventType = "show-window"
	EventToggleWindow     EventType = "toggle-window"
	EventQuit             EventType = "quit"
)

// Event is a fire-and-forget notification. Nothing waits for a reply.
type Event struct {
	Type     EventType `json:"type"`
	PresetID string    `json:"presetId,omitempty"`
	Payload  any       `json:"payload,omitempty"`
}

// EventPublisher delivers events to whoever is listening.
type EventPublisher interface {
	Publish(event Event)
}
