package events

import (
	"testing"

	"dpui/internal/domain"
)

func TestHubBroadcasts(t *testing.T) {
	h := NewHub(4)
	a, cancelA := h.Subscribe()
	b, cancelB := h.Subscribe()
	defer cancelA()
	defer cancelB()

	h.Publish(domain.Event{Type: domain.EventRefreshDisplays})

	for name, ch := range map[string]<-chan domain.Event{"a": a, "b": b} {
		select {
		case ev := <-ch:
			if ev.Type != domain.EventRefreshDisplays {
				t.Fatalf("%s got %s", name, ev.Type)
			}
		default:
			t.Fatalf("%s received nothing", name)
		}
	}
}

func TestHubDropsForSlowSubscriber(t *testing.T) {
	h := NewHub(1)
	ch, cancel := h.Subscribe()
	defer cancel()

	h.Publish(domain.Event{Type: domain.EventPresetsChanged})
	h.Publish(domain.Event{Type: domain.EventQuit})

	if ev := <-ch; ev.Type != domain.EventPresetsChanged {
		t.Fatalf("first event = %s", ev.Type)
	}
	select {
	case ev := <-ch:
		t.Fatalf("expected overflow event to be dropped, got %s", ev.Type)
	default:
	}
}

func TestCancelUnsubscribes(t *testing.T) {
	h := NewHub(0)
	ch, cancel := h.Subscribe()
	cancel()
	cancel()
	if h.Subscribers() != 0 {
		t.Fatalf("subscribers = %d", h.Subscribers())
	}
	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed")
	}
	h.Publish(domain.Event{Type: domain.EventQuit})
}
