package web

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"dpui/internal/domain"
)

type presetView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Config    string    `json:"config"`
	Hotkey    string    `json:"hotkey,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type storeView struct {
	Version string       `json:"version"`
	Presets []presetView `json:"presets"`
}

type presetResponse struct {
	Preset  presetView `json:"preset"`
	Warning string     `json:"warning,omitempty"`
}

func toView(p domain.Preset) presetView {
	return presetView{ID: p.ID, Name: p.Name, Config: p.Config, Hotkey: p.Hotkey, CreatedAt: p.CreatedAt}
}

func toStoreView(s domain.PresetStore) storeView {
	out := storeView{Version: s.Version, Presets: make([]presetView, 0, len(s.Presets))}
	for _, p := range s.Presets {
		out.Presets = append(out.Presets, toView(p))
	}
	return out
}

func (s *Server) getDisplays(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.deps.Displays.Report(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}

func (s *Server) applyConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Config string `json:"config"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Config == "" {
		respondJSON(w, http.StatusBadRequest, errorView{Error: "config is required", Kind: "bad-request"})
		return
	}
	if err := s.deps.Displays.Apply(r.Context(), req.Config); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggleDisplay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled *bool `json:"enabled"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Enabled == nil {
		respondJSON(w, http.StatusBadRequest, errorView{Error: "enabled is required", Kind: "bad-request"})
		return
	}
	if err := s.deps.Displays.Toggle(r.Context(), chi.URLParam(r, "id"), *req.Enabled); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getPresets(w http.ResponseWriter, r *http.Request) {
	store, err := s.deps.Presets.Load()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toStoreView(store))
}

func (s *Server) putPresets(w http.ResponseWriter, r *http.Request) {
	var req storeView
	if !decodeJSON(w, r, &req) {
		return
	}
	current, err := s.deps.Presets.Load()
	if err != nil {
		respondError(w, err)
		return
	}
	store := domain.NewPresetStore()
	for _, p := range req.Presets {
		preset := domain.Preset{ID: p.ID, Name: p.Name, Config: p.Config, Hotkey: p.Hotkey, CreatedAt: p.CreatedAt}
		// views carry no unparsed creation time; keep the stored one
		if prev, ok := current.Find(p.ID); ok && preset.CreatedAt.IsZero() {
			preset.CreatedAt = prev.CreatedAt
			preset.CreatedAtRaw = prev.CreatedAtRaw
		}
		store.Presets = append(store.Presets, preset)
	}
	if err := s.deps.Presets.Save(store); err != nil && !isHotkeyWarning(err) {
		respondError(w, err)
		return
	}
	s.getPresets(w, r)
}

func (s *Server) addPreset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Config string `json:"config"`
		Hotkey string `json:"hotkey"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := s.deps.Presets.Add(req.Name, req.Config, req.Hotkey)
	s.respondPreset(w, http.StatusCreated, p, err)
}

func (s *Server) getPreset(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Presets.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toView(p))
}

// updatePreset applies a partial update. A missing field is left unchanged;
// "hotkey": null or "" clears the binding.
func (s *Server) updatePreset(w http.ResponseWriter, r *http.Request) {
	var fields map[string]json.RawMessage
	if !decodeJSON(w, r, &fields) {
		return
	}
	var patch domain.PresetPatch
	for key, dst := range map[string]**string{"name": &patch.Name, "config": &patch.Config, "hotkey": &patch.Hotkey} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var v *string
		if err := json.Unmarshal(raw, &v); err != nil {
			respondJSON(w, http.StatusBadRequest, errorView{Error: key + " must be a string", Kind: "bad-request"})
			return
		}
		if v == nil {
			if key != "hotkey" {
				continue
			}
			empty := ""
			v = &empty
		}
		*dst = v
	}
	p, err := s.deps.Presets.Update(chi.URLParam(r, "id"), patch)
	s.respondPreset(w, http.StatusOK, p, err)
}

func (s *Server) respondPreset(w http.ResponseWriter, status int, p domain.Preset, err error) {
	resp := presetResponse{Preset: toView(p)}
	if err != nil {
		if !isHotkeyWarning(err) || p.ID == "" {
			respondError(w, err)
			return
		}
		resp.Warning = err.Error()
	}
	respondJSON(w, status, resp)
}

func (s *Server) deletePreset(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Presets.Delete(chi.URLParam(r, "id")); err != nil && !isHotkeyWarning(err) {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) applyPreset(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Displays.ApplyPreset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toView(p))
}

type hotkeyRequest struct {
	PresetID string `json:"presetId"`
	Shortcut string `json:"shortcut"`
}

func (s *Server) listHotkeys(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.deps.Hotkeys.Bindings())
}

func (s *Server) registerHotkey(w http.ResponseWriter, r *http.Request) {
	var req hotkeyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := s.deps.Hotkeys.Register(req.PresetID, req.Shortcut)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, b)
}

func (s *Server) unregisterHotkey(w http.ResponseWriter, r *http.Request) {
	shortcut, err := url.PathUnescape(chi.URLParam(r, "shortcut"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorView{Error: err.Error(), Kind: "bad-request"})
		return
	}
	if err := s.deps.Hotkeys.Unregister(shortcut); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) unregisterAllHotkeys(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Hotkeys.UnregisterAll(); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) validateHotkey(w http.ResponseWriter, r *http.Request) {
	var req hotkeyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	normalized, err := s.deps.Hotkeys.Validate(req.Shortcut)
	if err != nil {
		respondJSON(w, http.StatusOK, map[string]any{"valid": false, "error": err.Error()})
		return
	}
	available, _ := s.deps.Hotkeys.IsAvailable(normalized)
	respondJSON(w, http.StatusOK, map[string]any{
		"valid":      true,
		"normalized": normalized,
		"available":  available,
	})
}

func (s *Server) fireHotkey(w http.ResponseWriter, r *http.Request) {
	if s.deps.Firer == nil {
		respondJSON(w, http.StatusNotImplemented, errorView{Error: "hotkey firing is not available", Kind: "unsupported"})
		return
	}
	var req hotkeyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := s.deps.Firer.Fire(req.Shortcut)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, b)
}

func (s *Server) getTray(w http.ResponseWriter, r *http.Request) {
	if s.deps.Menu == nil {
		respondJSON(w, http.StatusOK, []any{})
		return
	}
	respondJSON(w, http.StatusOK, s.deps.Menu.Items())
}

func (s *Server) clickTray(w http.ResponseWriter, r *http.Request) {
	if s.deps.Menu == nil {
		respondJSON(w, http.StatusNotImplemented, errorView{Error: "tray is not available", Kind: "unsupported"})
		return
	}
	if err := s.deps.Menu.HandleClick(chi.URLParam(r, "item")); err != nil {
		respondJSON(w, http.StatusNotFound, errorView{Error: err.Error(), Kind: "unknown-item"})
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
