package domain

import "fmt"

// HotkeyEffectType represents a side effect the consistency layer must perform.
type HotkeyEffectType string

const (
	EffectUnregister  HotkeyEffectType = "Unregister"
	EffectRegister    HotkeyEffectType = "Register"
	EffectRebuildMenu HotkeyEffectType = "RebuildMenu"
)

// HotkeyEffect is produced by PlanHotkeys without being executed, so the plan
// can be tested without touching the shortcut table.
type HotkeyEffect struct {
	Type    HotkeyEffectType
	Binding HotkeyBinding
}

// BindingFor returns the registry binding a preset's hotkey should produce.
func BindingFor(p Preset) HotkeyBinding {
	shortcut := NormalizeShortcut(p.Hotkey)
	return HotkeyBinding{
		PresetID:    p.ID,
		Shortcut:    shortcut,
		Description: fmt.Sprintf("Apply preset %q with %s", p.Name, shortcut),
	}
}

// PlanHotkeys compares the currently registered bindings with the hotkeys the
// presets ask for. Unregisters come first so a shortcut moving between presets
// is free again before it is registered. The menu rebuild is always last.
//
// A binding is kept only if it is identical to the wanted one, so renaming a
// preset re-registers its shortcut with the new description. Presets whose
// hotkey does not parse are skipped; see InvalidHotkeys.
//
// Two presets asking for the same shortcut both get a Register effect; the
// second one fails at registration time with KindHotkeyInUse.
func PlanHotkeys(active []HotkeyBinding, presets []Preset) []HotkeyEffect {
	activeBy := make(map[string]HotkeyBinding, len(active))
	for _, b := range active {
		activeBy[b.Shortcut] = b
	}

	var wanted []HotkeyBinding
	owner := make(map[string]HotkeyBinding)
	for _, p := range presets {
		if !p.HasHotkey() {
			continue
		}
		if _, err := ParseShortcut(p.Hotkey); err != nil {
			continue
		}
		b := BindingFor(p)
		wanted = append(wanted, b)
		if _, taken := owner[b.Shortcut]; !taken {
			owner[b.Shortcut] = b
		}
	}

	var effects []HotkeyEffect
	for _, b := range active {
		if want, ok := owner[b.Shortcut]; ok && want == b {
			continue
		}
		effects = append(effects, HotkeyEffect{Type: EffectUnregister, Binding: b})
	}
	for _, b := range wanted {
		if cur, ok := activeBy[b.Shortcut]; ok && cur == b {
			continue
		}
		effects = append(effects, HotkeyEffect{Type: EffectRegister, Binding: b})
	}
	return append(effects, HotkeyEffect{Type: EffectRebuildMenu})
}

// InvalidHotkeys returns the presets whose stored hotkey does not parse.
// Such presets stay in the store but never get a registration.
func InvalidHotkeys(presets []Preset) []Preset {
	var out []Preset
	for _, p := range presets {
		if !p.HasHotkey() {
			continue
		}
		if _, err := ParseShortcut(p.Hotkey); err != nil {
			out = append(out, p)
		}
	}
	return out
}
