package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestParseShortcut(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cmd+Shift+1", "Cmd+Shift+1"},
		{"shift+cmd+1", "Cmd+Shift+1"},
		{"Ctrl+Alt+d", "Ctrl+Alt+D"},
		{"Option+Control+F12", "Ctrl+Alt+F12"},
		{" CmdOrCtrl + Space ", "CmdOrCtrl+Space"},
		{"Super+ArrowLeft", "Cmd+Left"},
		{"F13", "F13"},
		{"Cmd+KeyK", "Cmd+K"},
		{"Cmd+Digit7", "Cmd+7"},
	}
	for _, tt := range tests {
		got, err := ParseShortcut(tt.in)
		if err != nil {
			t.Fatalf("ParseShortcut(%q) error: %v", tt.in, err)
		}
		if got.String() != tt.want {
			t.Fatalf("ParseShortcut(%q) = %q, want %q", tt.in, got.String(), tt.want)
		}
	}
}

func TestParseShortcutRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "Cmd+", "+1", "Cmd+Shift", "Hyper+1", "Cmd+Cmd+1", "Cmd+F25", "Cmd+??"} {
		_, err := ParseShortcut(in)
		if err == nil {
			t.Fatalf("ParseShortcut(%q) expected error", in)
		}
		if !errors.Is(err, ErrHotkeyInvalid) {
			t.Fatalf("ParseShortcut(%q) error kind = %v, want hotkey-invalid", in, KindOf(err))
		}
	}
}

func TestPatchDistinguishesOmittedAndClearedHotkey(t *testing.T) {
	base := Preset{ID: "p1", Name: "Desk", Config: "id:A", Hotkey: "Cmd+1"}

	name := "Couch"
	kept := PresetPatch{Name: &name}.Apply(base)
	if kept.Hotkey != "Cmd+1" {
		t.Fatalf("omitted hotkey changed binding to %q", kept.Hotkey)
	}
	if kept.Name != "Couch" {
		t.Fatalf("name = %q, want Couch", kept.Name)
	}

	cleared := ClearHotkey().Apply(base)
	if cleared.Hotkey != "" {
		t.Fatalf("cleared hotkey = %q, want empty", cleared.Hotkey)
	}
	if cleared.Name != "Desk" || cleared.Config != "id:A" {
		t.Fatalf("clearing hotkey touched other fields: %+v", cleared)
	}
}

func TestStoreUpdateNotFound(t *testing.T) {
	s := NewPresetStore()
	_, err := s.Update("missing", PresetPatch{})
	if !errors.Is(err, ErrPresetNotFound) {
		t.Fatalf("Update error = %v, want preset-not-found", err)
	}
}

func TestStoreRemoveAllMatching(t *testing.T) {
	s := PresetStore{Presets: []Preset{{ID: "a"}, {ID: "b"}, {ID: "a"}}}
	if n := s.Remove("a"); n != 2 {
		t.Fatalf("Remove removed %d, want 2", n)
	}
	if len(s.Presets) != 1 || s.Presets[0].ID != "b" {
		t.Fatalf("unexpected presets after Remove: %+v", s.Presets)
	}
	if n := s.Remove("zzz"); n != 0 {
		t.Fatalf("Remove of unknown id removed %d", n)
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	s := PresetStore{Version: "1.0", Presets: []Preset{{ID: "a", Name: "A"}}}
	c := s.Clone()
	c.Presets[0].Name = "changed"
	if s.Presets[0].Name != "A" {
		t.Fatal("Clone shares backing array with original")
	}
}

func TestErrorIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &Error{Kind: KindToolFailed, ExitCode: 2, Detail: "bad id"})
	if !errors.Is(err, ErrToolFailed) {
		t.Fatal("errors.Is did not match tool-failed sentinel")
	}
	if errors.Is(err, ErrParse) {
		t.Fatal("errors.Is matched wrong kind")
	}
	if KindOf(err) != KindToolFailed {
		t.Fatalf("KindOf = %v", KindOf(err))
	}
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Fatal("KindOf(plain) should be unknown")
	}
}

func TestResolutionSize(t *testing.T) {
	w, h, ok := Resolution("2560x1440").Size()
	if !ok || w != 2560 || h != 1440 {
		t.Fatalf("Size = %d,%d,%v", w, h, ok)
	}
	if _, _, ok := Resolution("").Size(); ok {
		t.Fatal("empty resolution should be unknown")
	}
	if _, _, ok := Resolution("0x1080").Size(); ok {
		t.Fatal("zero width should not decompose")
	}
	if Resolution("").String() != "unknown" {
		t.Fatal("unknown resolution should render as unknown")
	}
}

func effectTypes(effects []HotkeyEffect) []string {
	out := make([]string, len(effects))
	for i, e := range effects {
		out[i] = string(e.Type) + ":" + e.Binding.Shortcut
	}
	return out
}

func TestPlanHotkeys(t *testing.T) {
	presets := []Preset{
		{ID: "p1", Name: "Desk", Hotkey: "shift+cmd+1"},
		{ID: "p2", Name: "Couch", Hotkey: "Cmd+Shift+2"},
		{ID: "p3", Name: "Plain"},
	}
	active := []HotkeyBinding{
		BindingFor(presets[0]),
		{PresetID: "p2", Shortcut: "Cmd+Shift+9"},
		{PresetID: "gone", Shortcut: "Cmd+Shift+5"},
	}

	got := effectTypes(PlanHotkeys(active, presets))
	want := []string{
		"Unregister:Cmd+Shift+9",
		"Unregister:Cmd+Shift+5",
		"Register:Cmd+Shift+2",
		"RebuildMenu:",
	}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("PlanHotkeys = %v, want %v", got, want)
	}
}

func TestPlanHotkeysDuplicateShortcutRegistersBoth(t *testing.T) {
	presets := []Preset{
		{ID: "p1", Hotkey: "Cmd+1"},
		{ID: "p2", Hotkey: "Cmd+1"},
	}
	effects := PlanHotkeys(nil, presets)
	if len(effects) != 3 {
		t.Fatalf("expected 2 registers + rebuild, got %v", effectTypes(effects))
	}
	if effects[0].Binding.PresetID != "p1" || effects[1].Binding.PresetID != "p2" {
		t.Fatalf("register order should follow preset order: %+v", effects)
	}
}

func TestPlanHotkeysNoChangeOnlyRebuilds(t *testing.T) {
	presets := []Preset{{ID: "p1", Hotkey: "Cmd+1"}}
	active := []HotkeyBinding{BindingFor(presets[0])}
	effects := PlanHotkeys(active, presets)
	if len(effects) != 1 || effects[0].Type != EffectRebuildMenu {
		t.Fatalf("expected only a menu rebuild, got %v", effectTypes(effects))
	}
}

func TestPlanHotkeysRenameReregisters(t *testing.T) {
	active := []HotkeyBinding{BindingFor(Preset{ID: "p1", Name: "Desk", Hotkey: "Cmd+1"})}
	presets := []Preset{{ID: "p1", Name: "Standing desk", Hotkey: "Cmd+1"}}

	effects := PlanHotkeys(active, presets)
	got := effectTypes(effects)
	want := []string{"Unregister:Cmd+1", "Register:Cmd+1", "RebuildMenu:"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("PlanHotkeys = %v, want %v", got, want)
	}
	if !strings.Contains(effects[1].Binding.Description, "Standing desk") {
		t.Fatalf("description = %q", effects[1].Binding.Description)
	}
}

func TestPlanHotkeysSkipsUnparseableHotkeys(t *testing.T) {
	presets := []Preset{
		{ID: "bad", Name: "bad", Hotkey: "Ctrl+`"},
		{ID: "ok", Name: "ok", Hotkey: "Cmd+2"},
	}
	got := effectTypes(PlanHotkeys(nil, presets))
	want := []string{"Register:Cmd+2", "RebuildMenu:"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("PlanHotkeys = %v, want %v", got, want)
	}
	invalid := InvalidHotkeys(presets)
	if len(invalid) != 1 || invalid[0].ID != "bad" {
		t.Fatalf("InvalidHotkeys = %+v", invalid)
	}
}

func TestIsHotkeyWarning(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{&Error{Kind: KindHotkeyInUse}, true},
		{fmt.Errorf("sync: %w", &Error{Kind: KindHotkeyInvalid}), true},
		{errors.Join(&Error{Kind: KindHotkeyInUse, Detail: "Cmd+1"}), true},
		{&Error{Kind: KindStoreWrite}, false},
		{errors.New("plain"), false},
	}
	for _, tt := range tests {
		if got := IsHotkeyWarning(tt.err); got != tt.want {
			t.Errorf("IsHotkeyWarning(%v) = %t, want %t", tt.err, got, tt.want)
		}
	}
}

func TestDisplayJSONUnknownResolutionIsNull(t *testing.T) {
	data, err := json.Marshal(Display{ID: "A", Enabled: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"resolution":null`) {
		t.Fatalf("unknown resolution = %s", data)
	}
	data, _ = json.Marshal(Display{ID: "A", Resolution: "1920x1080"})
	if !strings.Contains(string(data), `"resolution":"1920x1080"`) {
		t.Fatalf("known resolution = %s", data)
	}

	var back Display
	if err := json.Unmarshal([]byte(`{"id":"A","resolution":null}`), &back); err != nil || back.Resolution.Known() {
		t.Fatalf("null should decode as unknown: %+v %v", back, err)
	}
}
