package repository

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"dpui/internal/domain"
)

// Format selects the preset export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown export format %q (json|yaml)", s)
	}
}

type yamlPreset struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Config    string `yaml:"config"`
	Hotkey    string `yaml:"hotkey,omitempty"`
	CreatedAt string `yaml:"createdAt,omitempty"`
}

type yamlStore struct {
	Version string       `yaml:"version"`
	Presets []yamlPreset `yaml:"presets"`
}

// Export renders the store in the given format. JSON output is identical to
// the presets file.
func Export(store domain.PresetStore, format Format) ([]byte, error) {
	if format == FormatJSON {
		return Encode(store)
	}
	out := yamlStore{Version: domain.CurrentStoreVersion, Presets: make([]yamlPreset, 0, len(store.Presets))}
	for _, p := range store.Presets {
		pp := fromDomain(p)
		out.Presets = append(out.Presets, yamlPreset{
			ID:        pp.ID,
			Name:      pp.Name,
			Config:    pp.Config,
			Hotkey:    p.Hotkey,
			CreatedAt: pp.CreatedAt,
		})
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return data, nil
}

// Import decodes an exported document.
func Import(data []byte, format Format) (domain.PresetStore, error) {
	if format == FormatJSON {
		return Decode(data)
	}
	var in yamlStore
	if err := yaml.Unmarshal(data, &in); err != nil {
		return domain.PresetStore{}, &domain.Error{Kind: domain.KindStoreRead, Op: "decode yaml presets", Err: err}
	}
	version, err := migrateVersion(in.Version)
	if err != nil {
		return domain.PresetStore{}, err
	}
	store := domain.PresetStore{Version: version, Presets: make([]domain.Preset, 0, len(in.Presets))}
	for _, p := range in.Presets {
		pp := persistedPreset{ID: p.ID, Name: p.Name, Config: p.Config, CreatedAt: p.CreatedAt}
		if p.Hotkey != "" {
			hk := p.Hotkey
			pp.Hotkey = &hk
		}
		store.Presets = append(store.Presets, toDomain(pp))
	}
	return store, nil
}
