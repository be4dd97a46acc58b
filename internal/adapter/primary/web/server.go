package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"dpui/internal/adapter/secondary/tray"
	"dpui/internal/domain"
	"dpui/internal/logging"
	"dpui/internal/usecase"
)

var webLog = logging.For("web")

// HotkeyFirer delivers a key press captured outside the process.
type HotkeyFirer interface {
	Fire(shortcut string) (domain.HotkeyBinding, error)
}

// TrayMenu is the tray surface the UI renders and clicks.
type TrayMenu interface {
	Items() []tray.MenuItem
	HandleClick(id string) error
}

// EventSource hands out event subscriptions.
type EventSource interface {
	Subscribe() (<-chan domain.Event, func())
}

// Deps are the use cases and adapters the HTTP surface drives.
type Deps struct {
	Displays usecase.DisplayUseCase
	Presets  usecase.PresetUseCase
	Hotkeys  usecase.HotkeyUseCase
	Firer    HotkeyFirer
	Menu     TrayMenu
	Events   EventSource
}

// Server is a primary adapter that exposes the HTTP API, the event stream
// and a small UI.
type Server struct {
	deps   Deps
	server *http.Server
}

// NewServer creates the HTTP server bound to addr.
func NewServer(deps Deps, addr string) *Server {
	srv := &Server{deps: deps}
	srv.server = &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv
}

// Handler returns the routed handler without starting a listener.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(loggingMiddleware)

	r.Get("/", s.handleRoot)

	r.Route("/api", func(r chi.Router) {
		r.Get("/displays", s.getDisplays)
		r.Post("/displays/apply", s.applyConfig)
		r.Post("/displays/{id}/toggle", s.toggleDisplay)

		r.Get("/presets", s.getPresets)
		r.Put("/presets", s.putPresets)
		r.Post("/presets", s.addPreset)
		r.Get("/presets/{id}", s.getPreset)
		r.Patch("/presets/{id}", s.updatePreset)
		r.Delete("/presets/{id}", s.deletePreset)
		r.Post("/presets/{id}/apply", s.applyPreset)

		r.Get("/hotkeys", s.listHotkeys)
		r.Post("/hotkeys", s.registerHotkey)
		r.Delete("/hotkeys", s.unregisterAllHotkeys)
		r.Delete("/hotkeys/{shortcut}", s.unregisterHotkey)
		r.Post("/hotkeys/validate", s.validateHotkey)
		r.Post("/hotkeys/fire", s.fireHotkey)

		r.Get("/tray", s.getTray)
		r.Post("/tray/{item}/click", s.clickTray)

		r.Get("/events", s.streamEvents)
	})
	return r
}

// Start blocks and serves HTTP traffic.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type errorView struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// statusFor maps an error kind to the HTTP status the UI branches on.
func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindPresetNotFound:
		return http.StatusNotFound
	case domain.KindHotkeyInUse:
		return http.StatusConflict
	case domain.KindHotkeyInvalid:
		return http.StatusUnprocessableEntity
	case domain.KindToolUnavailable, domain.KindToolFailed, domain.KindParse:
		return http.StatusBadGateway
	case domain.KindToolTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func respondError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		webLog.Warnf("%v", err)
	}
	respondJSON(w, status, errorView{Error: err.Error(), Kind: domain.KindOf(err).String()})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		webLog.Errorf("encode JSON: %v", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondJSON(w, http.StatusBadRequest, errorView{Error: "invalid JSON: " + err.Error(), Kind: "bad-request"})
		return false
	}
	return true
}

// isHotkeyWarning reports whether err only concerns hotkey reconciliation,
// i.e. the store mutation itself succeeded.
func isHotkeyWarning(err error) bool {
	return domain.IsHotkeyWarning(err)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		webLog.Debugf("%s %s %d %s", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}
