package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"dpui/internal/domain"
	"dpui/internal/logging"
)

var storeLog = logging.For("store")

// FileRepository implements domain.PresetRepository using a JSON file.
// This is a secondary adapter.
//
// Load and Save on their own are not synchronized against each other: two
// callers doing Load, mutate, Save concurrently race and the last writer wins.
// Update serializes the whole cycle within the process and, through an
// advisory lock file, across processes sharing the same presets file.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileRepository creates a new file-based preset repository.
func NewFileRepository(path string) (*FileRepository, error) {
	if path == "" {
		return nil, errors.New("path is required")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	return &FileRepository{path: path}, nil
}

// Path returns the presets file location.
func (f *FileRepository) Path() string {
	return f.path
}

// persistedPreset represents one preset on disk. Files written by earlier
// releases used created_at; it is read but never written.
type persistedPreset struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Config          string  `json:"config"`
	Hotkey          *string `json:"hotkey,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	LegacyCreatedAt string  `json:"created_at,omitempty"`
}

// persistedData represents the JSON structure on disk.
type persistedData struct {
	Version string            `json:"version"`
	Presets []persistedPreset `json:"presets"`
}

// Load reads the preset collection from disk. A missing file yields an
// empty store; a file that exists but cannot be decoded is a KindStoreRead
// error so the caller can warn instead of overwriting user data.
func (f *FileRepository) Load() (domain.PresetStore, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			storeLog.Debugf("no presets file at %s, starting empty", f.path)
			return domain.NewPresetStore(), nil
		}
		return domain.PresetStore{}, &domain.Error{Kind: domain.KindStoreRead, Op: "load presets", Detail: f.path, Err: err}
	}
	return Decode(data)
}

// Decode converts the on-disk JSON representation to a domain store.
func Decode(data []byte) (domain.PresetStore, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.NewPresetStore(), nil
	}

	var persisted persistedData
	if err := json.Unmarshal(data, &persisted); err != nil {
		return domain.PresetStore{}, &domain.Error{Kind: domain.KindStoreRead, Op: "decode presets", Err: err}
	}

	version, err := migrateVersion(persisted.Version)
	if err != nil {
		return domain.PresetStore{}, err
	}

	store := domain.PresetStore{Version: version, Presets: make([]domain.Preset, 0, len(persisted.Presets))}
	for _, p := range persisted.Presets {
		store.Presets = append(store.Presets, toDomain(p))
	}
	return store, nil
}

// migrateVersion defaults a missing version and rejects files written by a
// newer major format.
func migrateVersion(v string) (string, error) {
	switch {
	case v == "":
		return domain.CurrentStoreVersion, nil
	case v == "1" || strings.HasPrefix(v, "1."):
		return domain.CurrentStoreVersion, nil
	default:
		return "", &domain.Error{
			Kind:   domain.KindStoreRead,
			Op:     "decode presets",
			Detail: fmt.Sprintf("unsupported format version %q (this build reads %s)", v, domain.CurrentStoreVersion),
		}
	}
}

func toDomain(p persistedPreset) domain.Preset {
	out := domain.Preset{ID: p.ID, Name: p.Name, Config: p.Config}
	if p.Hotkey != nil {
		out.Hotkey = *p.Hotkey
	}
	created := p.CreatedAt
	if created == "" {
		created = p.LegacyCreatedAt
	}
	if created != "" {
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			out.CreatedAt = t
		} else {
			storeLog.Warnf("preset %s has unreadable createdAt %q, keeping it verbatim", p.ID, created)
			out.CreatedAtRaw = created
		}
	}
	return out
}

func fromDomain(p domain.Preset) persistedPreset {
	out := persistedPreset{ID: p.ID, Name: p.Name, Config: p.Config}
	if p.HasHotkey() {
		hk := p.Hotkey
		out.Hotkey = &hk
	}
	switch {
	case !p.CreatedAt.IsZero():
		out.CreatedAt = p.CreatedAt.UTC().Format(time.RFC3339Nano)
	case p.CreatedAtRaw != "":
		out.CreatedAt = p.CreatedAtRaw
	}
	return out
}

// Encode renders the store deterministically: fixed key order, two-space
// indentation, trailing newline. The current version is always stamped.
func Encode(store domain.PresetStore) ([]byte, error) {
	persisted := persistedData{
		Version: domain.CurrentStoreVersion,
		Presets: make([]persistedPreset, 0, len(store.Presets)),
	}
	for _, p := range store.Presets {
		persisted.Presets = append(persisted.Presets, fromDomain(p))
	}
	data, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Save writes the store to disk. The previous file stays untouched unless
// the new content was fully written.
func (f *FileRepository) Save(store domain.PresetStore) error {
	data, err := Encode(store)
	if err != nil {
		return &domain.Error{Kind: domain.KindStoreWrite, Op: "encode presets", Err: err}
	}
	if err := writeAtomic(f.path, data); err != nil {
		return &domain.Error{Kind: domain.KindStoreWrite, Op: "save presets", Detail: f.path, Err: err}
	}
	storeLog.Debugf("saved %d preset(s) to %s", len(store.Presets), f.path)
	return nil
}

// Update runs load, fn, save as one step. Nothing is written if fn fails.
func (f *FileRepository) Update(fn func(*domain.PresetStore) error) (domain.PresetStore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	unlock, err := lockFile(f.path + ".lock")
	if err != nil {
		return domain.PresetStore{}, &domain.Error{Kind: domain.KindStoreWrite, Op: "lock presets", Detail: f.path, Err: err}
	}
	defer unlock()

	store, err := f.Load()
	if err != nil {
		return domain.PresetStore{}, err
	}
	if err := fn(&store); err != nil {
		return domain.PresetStore{}, err
	}
	if err := f.Save(store); err != nil {
		return domain.PresetStore{}, err
	}
	return store.Clone(), nil
}

// writeAtomic writes to a temp file in the same directory, syncs it and
// renames it over path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create tmp: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("sync tmp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close tmp: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("chmod tmp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("rename tmp: %w", err)
	}
	return nil
}
