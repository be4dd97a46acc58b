package domain

import "time"

// CurrentStoreVersion is stamped on every saved preset file.
const CurrentStoreVersion = "1.0"

// Preset is a named display arrangement the user can re-apply later.
// Config is opaque to the store and handed to the display tool verbatim.
type Preset struct {
	ID        string
	Name      string
	Config    string
	Hotkey    string // empty means no binding
	CreatedAt time.Time

	// CreatedAtRaw keeps a stored creation time that is not RFC 3339 so it is
	// written back unchanged. Empty when CreatedAt was parsed.
	CreatedAtRaw string
}

// HasHotkey reports whether the preset carries a shortcut binding.
func (p Preset) HasHotkey() bool {
	return p.Hotkey != ""
}

// PresetStore is the whole persisted collection. Presets keep insertion order.
type PresetStore struct {
	Version string
	Presets []Preset
}

// NewPresetStore returns an empty store stamped with the current version.
func NewPresetStore() PresetStore {
	return PresetStore{Version: CurrentStoreVersion, Presets: []Preset{}}
}

// Clone returns a deep copy so callers never alias the owner's slice.
func (s PresetStore) Clone() PresetStore {
	presets := make([]Preset, len(s.Presets))
	copy(presets, s.Presets)
	return PresetStore{Version: s.Version, Presets: presets}
}

// Find returns the first preset with the given id.
func (s PresetStore) Find(id string) (Preset, bool) {
	for _, p := range s.Presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// Remove drops every preset with the given id and reports how many were removed.
func (s *PresetStore) Remove(id string) int {
	kept := s.Presets[:0]
	removed := 0
	for _, p := range s.Presets {
		if p.ID == id {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	s.Presets = kept
	return removed
}

// PresetPatch describes a partial update. A nil field is left unchanged.
// Hotkey set to a pointer to "" clears the binding, which is different from
// leaving Hotkey nil.
type PresetPatch struct {
	Name   *string
	Config *string
	Hotkey *string
}

// ClearHotkey returns a patch that removes the hotkey binding.
func ClearHotkey() PresetPatch {
	empty := ""
	return PresetPatch{Hotkey: &empty}
}

// Apply returns p with the patch fields applied.
func (patch PresetPatch) Apply(p Preset) Preset {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Config != nil {
		p.Config = *patch.Config
	}
	if patch.Hotkey != nil {
		p.Hotkey = *patch.Hotkey
	}
	return p
}

// Update applies patch to the first preset matching id.
func (s *PresetStore) Update(id string, patch PresetPatch) (Preset, error) {
	for i := range s.Presets {
		if s.Presets[i].ID == id {
			s.Presets[i] = patch.Apply(s.Presets[i])
			return s.Presets[i], nil
		}
	}
	return Preset{}, NotFound("update preset", id)
}
