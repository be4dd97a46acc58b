package hotkey

import (
	"sort"
	"sync"

	"dpui/internal/domain"
	"dpui/internal/logging"
)

var hotkeyLog = logging.For("hotkeys")

type registration struct {
	binding domain.HotkeyBinding
	onFire  func()
}

// Registry implements domain.HotkeyRegistry as an in-process shortcut table.
// OS-level key capture lives outside the process (skhd, Hammerspoon, a tray
// shell); it delivers key presses through Fire.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]registration
}

// NewRegistry creates an empty shortcut table.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registration)}
}

// Register binds a shortcut. The shortcut is validated and normalized first.
func (r *Registry) Register(binding domain.HotkeyBinding, onFire func()) error {
	sc, err := domain.ParseShortcut(binding.Shortcut)
	if err != nil {
		return err
	}
	binding.Shortcut = sc.String()

	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.entries[binding.Shortcut]; ok {
		return &domain.Error{
			Kind:   domain.KindHotkeyInUse,
			Op:     "register hotkey",
			Detail: binding.Shortcut + " is bound to preset " + cur.binding.PresetID,
		}
	}
	r.entries[binding.Shortcut] = registration{binding: binding, onFire: onFire}
	hotkeyLog.Infof("registered %s -> preset %s", binding.Shortcut, binding.PresetID)
	return nil
}

// Unregister removes a shortcut. Unknown shortcuts are ignored.
func (r *Registry) Unregister(shortcut string) error {
	key := domain.NormalizeShortcut(shortcut)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[key]; ok {
		delete(r.entries, key)
		hotkeyLog.Infof("unregistered %s", key)
	}
	return nil
}

// IsRegistered reports whether the shortcut is currently held.
func (r *Registry) IsRegistered(shortcut string) bool {
	key := domain.NormalizeShortcut(shortcut)
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key]
	return ok
}

// Bindings lists every registration sorted by shortcut.
func (r *Registry) Bindings() []domain.HotkeyBinding {
	r.mu.RLock()
	out := make([]domain.HotkeyBinding, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.binding)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Shortcut < out[j].Shortcut })
	return out
}

// Fire simulates a key press. The callback runs on the caller's goroutine
// after the table lock is released.
func (r *Registry) Fire(shortcut string) (domain.HotkeyBinding, error) {
	sc, err := domain.ParseShortcut(shortcut)
	if err != nil {
		return domain.HotkeyBinding{}, err
	}
	r.mu.RLock()
	e, ok := r.entries[sc.String()]
	r.mu.RUnlock()
	if !ok {
		return domain.HotkeyBinding{}, &domain.Error{Kind: domain.KindPresetNotFound, Op: "fire hotkey", Detail: "no preset bound to " + sc.String()}
	}
	hotkeyLog.Debugf("fired %s -> preset %s", sc.String(), e.binding.PresetID)
	if e.onFire != nil {
		e.onFire()
	}
	return e.binding, nil
}
