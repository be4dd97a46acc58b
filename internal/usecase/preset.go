package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"dpui/internal/domain"
	"dpui/internal/logging"
)

var presetLog = logging.For("presets")

// ErrNotStarted is returned by mutations issued before Start or after the
// actor loop has stopped.
var ErrNotStarted = errors.New("preset actor is not running")

// StoreListener is told about every committed store mutation, in commit order.
// A returned hotkey warning is handed back to the caller of the mutation next
// to the saved result; any other error is only logged.
type StoreListener func(store domain.PresetStore) error

// PresetUseCase is the primary port for preset operations.
type PresetUseCase interface {
	Start(ctx context.Context)
	Load() (domain.PresetStore, error)
	Get(id string) (domain.Preset, error)
	Save(store domain.PresetStore) error
	Add(name, config, hotkey string) (domain.Preset, error)
	Delete(id string) error
	Update(id string, patch domain.PresetPatch) (domain.Preset, error)
	Import(store domain.PresetStore, replace bool) (int, error)
}

// presetInteractor funnels every mutation through one goroutine so two
// callers never interleave their load-mutate-save cycles.
type presetInteractor struct {
	repo      domain.PresetRepository
	listeners []StoreListener
	now       func() time.Time
	newID     func() string

	running atomic.Bool
	stopped chan struct{}
	eventCh chan mutationRequest
}

type mutationRequest struct {
	op       string
	mutate   func(*domain.PresetStore) (domain.Preset, error)
	resultCh chan mutationResult
}

type mutationResult struct {
	preset domain.Preset
	err    error
}

// NewPresetUseCase creates the preset use case. Listeners run on the actor
// goroutine after each successful save.
func NewPresetUseCase(repo domain.PresetRepository, listeners ...StoreListener) PresetUseCase {
	return &presetInteractor{
		repo:      repo,
		listeners: listeners,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
		stopped:   make(chan struct{}),
		eventCh:   make(chan mutationRequest),
	}
}

// Start launches the mutation loop until ctx is cancelled.
func (p *presetInteractor) Start(ctx context.Context) {
	if !p.running.CompareAndSwap(false, true) {
		return
	}
	go p.loop(ctx)
}

func (p *presetInteractor) loop(ctx context.Context) {
	defer close(p.stopped)
	for {
		select {
		case <-ctx.Done():
			presetLog.Debugf("actor stopped: %v", ctx.Err())
			return
		case req := <-p.eventCh:
			req.resultCh <- p.commit(req)
		}
	}
}

func (p *presetInteractor) commit(req mutationRequest) mutationResult {
	var preset domain.Preset
	store, err := p.repo.Update(func(s *domain.PresetStore) error {
		var err error
		preset, err = req.mutate(s)
		return err
	})
	if err != nil {
		presetLog.Debugf("%s failed: %v", req.op, err)
		return mutationResult{err: err}
	}
	presetLog.Infof("%s committed (%d preset(s))", req.op, len(store.Presets))

	// the mutation is saved; only hotkey conflicts go back to the caller
	var warnings []error
	for _, notify := range p.listeners {
		err := notify(store.Clone())
		switch {
		case err == nil:
		case domain.IsHotkeyWarning(err):
			warnings = append(warnings, err)
		default:
			presetLog.Warnf("%s: listener: %v", req.op, err)
		}
	}
	return mutationResult{preset: preset, err: errors.Join(warnings...)}
}

func (p *presetInteractor) submit(op string, mutate func(*domain.PresetStore) (domain.Preset, error)) (domain.Preset, error) {
	if !p.running.Load() {
		return domain.Preset{}, ErrNotStarted
	}
	req := mutationRequest{op: op, mutate: mutate, resultCh: make(chan mutationResult, 1)}
	select {
	case p.eventCh <- req:
	case <-p.stopped:
		return domain.Preset{}, ErrNotStarted
	}
	res := <-req.resultCh
	return res.preset, res.err
}

// Load returns a copy of the stored collection.
func (p *presetInteractor) Load() (domain.PresetStore, error) {
	store, err := p.repo.Load()
	if err != nil {
		return domain.PresetStore{}, err
	}
	return store.Clone(), nil
}

// Get returns the first preset with the given id.
func (p *presetInteractor) Get(id string) (domain.Preset, error) {
	store, err := p.repo.Load()
	if err != nil {
		return domain.Preset{}, err
	}
	preset, ok := store.Find(id)
	if !ok {
		return domain.Preset{}, domain.NotFound("get preset", id)
	}
	return preset, nil
}

// Save replaces the whole collection.
func (p *presetInteractor) Save(store domain.PresetStore) error {
	replacement := store.Clone()
	_, err := p.submit("save", func(s *domain.PresetStore) (domain.Preset, error) {
		s.Presets = replacement.Presets
		return domain.Preset{}, nil
	})
	return err
}

// Add appends a new preset with a fresh id and creation time. The returned
// preset is valid even when err reports a hotkey conflict: the store does
// not enforce hotkey uniqueness.
func (p *presetInteractor) Add(name, config, hotkey string) (domain.Preset, error) {
	preset := domain.Preset{
		ID:        p.newID(),
		Name:      name,
		Config:    config,
		Hotkey:    hotkey,
		CreatedAt: p.now().UTC(),
	}
	if preset.HasHotkey() {
		if _, err := domain.ParseShortcut(hotkey); err != nil {
			return domain.Preset{}, err
		}
	}
	return p.submit("add preset", func(s *domain.PresetStore) (domain.Preset, error) {
		s.Presets = append(s.Presets, preset)
		return preset, nil
	})
}

// Delete removes every preset with the given id. Unknown ids are not an error.
func (p *presetInteractor) Delete(id string) error {
	_, err := p.submit("delete preset", func(s *domain.PresetStore) (domain.Preset, error) {
		if n := s.Remove(id); n == 0 {
			presetLog.Debugf("delete %s: no such preset", id)
		}
		return domain.Preset{}, nil
	})
	return err
}

// Update applies patch to the preset with the given id.
func (p *presetInteractor) Update(id string, patch domain.PresetPatch) (domain.Preset, error) {
	if patch.Hotkey != nil && *patch.Hotkey != "" {
		if _, err := domain.ParseShortcut(*patch.Hotkey); err != nil {
			return domain.Preset{}, err
		}
	}
	return p.submit("update preset", func(s *domain.PresetStore) (domain.Preset, error) {
		return s.Update(id, patch)
	})
}

// Import merges presets into the store, or replaces it when replace is set.
// Merged presets whose id is already present get a fresh id.
func (p *presetInteractor) Import(in domain.PresetStore, replace bool) (int, error) {
	incoming := in.Clone().Presets
	count := 0
	_, err := p.submit("import presets", func(s *domain.PresetStore) (domain.Preset, error) {
		if replace {
			s.Presets = s.Presets[:0]
		}
		for _, preset := range incoming {
			if preset.ID == "" {
				preset.ID = p.newID()
			} else if _, exists := s.Find(preset.ID); exists {
				preset.ID = p.newID()
			}
			if preset.CreatedAt.IsZero() && preset.CreatedAtRaw == "" {
				preset.CreatedAt = p.now().UTC()
			}
			s.Presets = append(s.Presets, preset)
			count++
		}
		return domain.Preset{}, nil
	})
	if err != nil && !domain.IsHotkeyWarning(err) {
		return 0, fmt.Errorf("import: %w", err)
	}
	return count, err
}
