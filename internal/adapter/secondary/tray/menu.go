package tray

import (
	"fmt"
	"strings"
	"sync"

	"dpui/internal/domain"
	"dpui/internal/logging"
)

var trayLog = logging.For("tray")

// Menu item identifiers understood by HandleClick.
const (
	ItemShowHide      = "show_hide"
	ItemPresets       = "presets"
	ItemManagePresets = "manage_presets"
	ItemRefresh       = "refresh"
	ItemQuit          = "quit"

	presetItemPrefix = "preset_"
)

// MenuItem is one entry of the tray menu tree.
type MenuItem struct {
	ID          string     `json:"id,omitempty"`
	Label       string     `json:"label,omitempty"`
	Accelerator string     `json:"accelerator,omitempty"`
	IsSeparator bool       `json:"separator,omitempty"`
	Submenu     []MenuItem `json:"submenu,omitempty"`
}

// Menu implements domain.MenuNotifier. It keeps the current menu tree and
// turns clicks into outbound events.
type Menu struct {
	publisher domain.EventPublisher

	mu    sync.RWMutex
	items []MenuItem
}

// NewMenu creates a tray menu with an empty preset list.
func NewMenu(publisher domain.EventPublisher) *Menu {
	m := &Menu{publisher: publisher}
	m.items = build(nil)
	return m
}

// Rebuild recreates the menu from presets and announces the change.
func (m *Menu) Rebuild(presets []domain.Preset) error {
	items := build(presets)
	m.mu.Lock()
	m.items = items
	m.mu.Unlock()
	trayLog.Debugf("menu rebuilt with %d preset(s)", len(presets))
	if m.publisher != nil {
		m.publisher.Publish(domain.Event{Type: domain.EventPresetsChanged, Payload: items})
	}
	return nil
}

// Items returns a copy of the current menu tree.
func (m *Menu) Items() []MenuItem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneItems(m.items)
}

// HandleClick dispatches a menu item id to the matching event.
func (m *Menu) HandleClick(id string) error {
	var ev domain.Event
	switch {
	case id == ItemShowHide:
		ev = domain.Event{Type: domain.EventToggleWindow}
	case id == ItemManagePresets:
		ev = domain.Event{Type: domain.EventShowWindow}
	case id == ItemRefresh:
		ev = domain.Event{Type: domain.EventRefreshDisplays}
	case id == ItemQuit:
		ev = domain.Event{Type: domain.EventQuit}
	case strings.HasPrefix(id, presetItemPrefix) && len(id) > len(presetItemPrefix):
		ev = domain.Event{Type: domain.EventApplyPreset, PresetID: strings.TrimPrefix(id, presetItemPrefix)}
	default:
		return fmt.Errorf("unknown menu item %q", id)
	}
	trayLog.Debugf("click %s -> %s", id, ev.Type)
	if m.publisher != nil {
		m.publisher.Publish(ev)
	}
	return nil
}

// PresetItemID returns the menu id for a preset.
func PresetItemID(presetID string) string {
	return presetItemPrefix + presetID
}

func build(presets []domain.Preset) []MenuItem {
	sub := make([]MenuItem, 0, len(presets)+2)
	for _, p := range presets {
		sub = append(sub, MenuItem{ID: PresetItemID(p.ID), Label: p.Name, Accelerator: p.Hotkey})
	}
	if len(presets) > 0 {
		sub = append(sub, MenuItem{IsSeparator: true})
	}
	sub = append(sub, MenuItem{ID: ItemManagePresets, Label: "Manage Presets..."})

	return []MenuItem{
		{ID: ItemShowHide, Label: "Show/Hide DPUI"},
		{IsSeparator: true},
		{ID: ItemPresets, Label: "Quick Presets", Submenu: sub},
		{IsSeparator: true},
		{ID: ItemRefresh, Label: "Refresh Displays", Accelerator: "Cmd+R"},
		{IsSeparator: true},
		{ID: ItemQuit, Label: "Quit DPUI", Accelerator: "Cmd+Q"},
	}
}

func cloneItems(items []MenuItem) []MenuItem {
	out := make([]MenuItem, len(items))
	for i, it := range items {
		out[i] = it
		if it.Submenu != nil {
			out[i].Submenu = cloneItems(it.Submenu)
		}
	}
	return out
}
