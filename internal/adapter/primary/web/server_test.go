package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"dpui/internal/adapter/primary/web"
	"dpui/internal/adapter/secondary/displayplacer"
	"dpui/internal/adapter/secondary/events"
	"dpui/internal/adapter/secondary/hotkey"
	"dpui/internal/adapter/secondary/repository"
	"dpui/internal/adapter/secondary/tray"
	"dpui/internal/domain"
	"dpui/internal/usecase"
)

type testEnv struct {
	srv  *httptest.Server
	tool *displayplacer.DryRun
	hub  *events.Hub
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo, err := repository.NewFileRepository(filepath.Join(t.TempDir(), "presets.json"))
	if err != nil {
		t.Fatal(err)
	}
	hub := events.NewHub(16)
	registry := hotkey.NewRegistry()
	menu := tray.NewMenu(hub)
	tool := displayplacer.NewDryRun("")

	hotkeys := usecase.NewHotkeyUseCase(registry, menu, hub)
	presets := usecase.NewPresetUseCase(repo, hotkeys.OnStoreChanged)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	presets.Start(ctx)

	srv := web.NewServer(web.Deps{
		Displays: usecase.NewDisplayUseCase(tool, presets),
		Presets:  presets,
		Hotkeys:  hotkeys,
		Firer:    registry,
		Menu:     menu,
		Events:   hub,
	}, "127.0.0.1:0")
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &testEnv{srv: ts, tool: tool, hub: hub}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(data)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	return resp, buf.Bytes()
}

type presetResp struct {
	Preset struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Hotkey string `json:"hotkey"`
	} `json:"preset"`
	Warning string `json:"warning"`
}

func TestGetDisplays(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.do(t, http.MethodGet, "/api/displays", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}
	var cfg domain.DisplayConfiguration
	if err := json.Unmarshal(body, &cfg); err != nil {
		t.Fatal(err)
	}
	if len(cfg.Displays) != 2 || cfg.Displays[1].Origin != (domain.Point{X: 1512, Y: -458}) {
		t.Fatalf("displays = %+v", cfg.Displays)
	}
}

func TestToggleAndApply(t *testing.T) {
	env := newTestEnv(t)
	resp, _ := env.do(t, http.MethodPost, "/api/displays/ABC/toggle", map[string]bool{"enabled": false})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("toggle status %d", resp.StatusCode)
	}
	resp, _ = env.do(t, http.MethodPost, "/api/displays/ABC/toggle", map[string]any{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("toggle without enabled status %d", resp.StatusCode)
	}
	resp, _ = env.do(t, http.MethodPost, "/api/displays/apply", map[string]string{"config": "id:ABC res:800x600"})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("apply status %d", resp.StatusCode)
	}
	applied := env.tool.Applied()
	if len(applied) != 2 || applied[0][0] != "id:ABC enabled:false" || applied[1][0] != "id:ABC res:800x600" {
		t.Fatalf("applied = %q", applied)
	}
}

func TestPresetLifecycle(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/api/presets", map[string]string{
		"name": "desk", "config": "id:A res:1920x1080", "hotkey": "shift+cmd+1",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add status %d: %s", resp.StatusCode, body)
	}
	var added presetResp
	_ = json.Unmarshal(body, &added)
	id := added.Preset.ID
	if id == "" {
		t.Fatalf("no id in %s", body)
	}

	// omitted hotkey is kept
	_, body = env.do(t, http.MethodPatch, "/api/presets/"+id, map[string]any{"name": "desk 2"})
	var updated presetResp
	_ = json.Unmarshal(body, &updated)
	if updated.Preset.Name != "desk 2" || updated.Preset.Hotkey != "shift+cmd+1" {
		t.Fatalf("patch without hotkey: %s", body)
	}

	// explicit null clears it
	_, body = env.do(t, http.MethodPatch, "/api/presets/"+id, map[string]any{"hotkey": nil})
	updated = presetResp{}
	_ = json.Unmarshal(body, &updated)
	if updated.Preset.Hotkey != "" {
		t.Fatalf("patch with null hotkey: %s", body)
	}

	resp, _ = env.do(t, http.MethodPost, "/api/presets/"+id+"/apply", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("apply status %d", resp.StatusCode)
	}
	if applied := env.tool.Applied(); len(applied) != 1 || applied[0][0] != "id:A res:1920x1080" {
		t.Fatalf("applied = %q", applied)
	}

	resp, _ = env.do(t, http.MethodDelete, "/api/presets/"+id, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status %d", resp.StatusCode)
	}
	resp, body = env.do(t, http.MethodGet, "/api/presets/"+id, nil)
	if resp.StatusCode != http.StatusNotFound || !strings.Contains(string(body), "preset-not-found") {
		t.Fatalf("get deleted: %d %s", resp.StatusCode, body)
	}
}

func TestDuplicateHotkeyIsAWarning(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/presets", map[string]string{"name": "a", "config": "id:A", "hotkey": "Cmd+1"})
	resp, body := env.do(t, http.MethodPost, "/api/presets", map[string]string{"name": "b", "config": "id:B", "hotkey": "Cmd+1"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}
	var pr presetResp
	_ = json.Unmarshal(body, &pr)
	if pr.Preset.ID == "" || !strings.Contains(pr.Warning, "already in use") {
		t.Fatalf("expected warning, got %s", body)
	}

	_, body = env.do(t, http.MethodGet, "/api/hotkeys", nil)
	var bindings []domain.HotkeyBinding
	_ = json.Unmarshal(body, &bindings)
	if len(bindings) != 1 || bindings[0].Shortcut != "Cmd+1" {
		t.Fatalf("bindings = %s", body)
	}
}

func TestInvalidHotkeyOnAdd(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.do(t, http.MethodPost, "/api/presets", map[string]string{"name": "a", "config": "id:A", "hotkey": "Cmd+"})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}
}

func TestHotkeyEndpoints(t *testing.T) {
	env := newTestEnv(t)

	_, body := env.do(t, http.MethodPost, "/api/hotkeys/validate", map[string]string{"shortcut": "alt+ctrl+d"})
	var v struct {
		Valid      bool   `json:"valid"`
		Normalized string `json:"normalized"`
		Available  bool   `json:"available"`
	}
	_ = json.Unmarshal(body, &v)
	if !v.Valid || v.Normalized != "Ctrl+Alt+D" || !v.Available {
		t.Fatalf("validate = %s", body)
	}

	resp, _ := env.do(t, http.MethodPost, "/api/hotkeys", map[string]string{"presetId": "p1", "shortcut": "Ctrl+Alt+D"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status %d", resp.StatusCode)
	}
	resp, _ = env.do(t, http.MethodPost, "/api/hotkeys", map[string]string{"presetId": "p2", "shortcut": "Ctrl+Alt+D"})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register status %d", resp.StatusCode)
	}

	resp, _ = env.do(t, http.MethodDelete, "/api/hotkeys/Ctrl+Alt+D", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("unregister status %d", resp.StatusCode)
	}
	_, body = env.do(t, http.MethodPost, "/api/hotkeys/validate", map[string]string{"shortcut": "Hyper+X"})
	if !strings.Contains(string(body), `"valid":false`) {
		t.Fatalf("validate malformed = %s", body)
	}
	resp, _ = env.do(t, http.MethodPost, "/api/hotkeys/fire", map[string]string{"shortcut": "Ctrl+Alt+D"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("fire unbound status %d", resp.StatusCode)
	}
}

func TestEventStream(t *testing.T) {
	env := newTestEnv(t)

	wsURL := "ws" + strings.TrimPrefix(env.srv.URL, "http") + "/api/events"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for env.hub.Subscribers() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	resp, _ := env.do(t, http.MethodPost, "/api/tray/refresh/click", nil)
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("click status %d", resp.StatusCode)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev domain.Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if ev.Type != domain.EventRefreshDisplays {
		t.Fatalf("event = %+v", ev)
	}

	resp, _ = env.do(t, http.MethodPost, "/api/tray/bogus/click", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown item status %d", resp.StatusCode)
	}
}
