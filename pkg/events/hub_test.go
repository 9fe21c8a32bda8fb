package events

import (
	"testing"
)

func TestEventHubPublish(t *testing.T) {
	h := NewEventHub()
	a := h.Subscribe()
	b := h.Subscribe()
	defer h.Unsubscribe(a)
	defer h.Unsubscribe(b)

	h.Publish(BatteryAlert, AlertEvent{ID: "1", Level: "low", Message: "Low battery: 15%. Consider plugging in.", Percent: 15})

	for _, ch := range []chan Event{a, b} {
		ev := <-ch
		if ev.Name != BatteryAlert {
			t.Fatalf("event name = %q, want %q", ev.Name, BatteryAlert)
		}
		payload, err := DecodeAs[AlertEvent](ev)
		if err != nil {
			t.Fatalf("DecodeAs() error = %v", err)
		}
		if payload.Level != "low" || payload.Percent != 15 {
			t.Fatalf("unexpected payload %+v", payload)
		}
	}
}

func TestEventHubDropsWhenFull(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()

	for i := 0; i < 100; i++ {
		h.Publish(BatteryCheck, CheckEvent{Level: "none"})
	}

	if got := len(ch); got != cap(ch) {
		t.Fatalf("buffered events = %d, want %d", got, cap(ch))
	}
}

func TestEventHubUnsubscribeAndClose(t *testing.T) {
	h := NewEventHub()
	a := h.Subscribe()
	b := h.Subscribe()
	if h.Subscribers() != 2 {
		t.Fatalf("Subscribers() = %d, want 2", h.Subscribers())
	}

	h.Unsubscribe(a)
	if _, ok := <-a; ok {
		t.Fatalf("unsubscribed channel should be closed")
	}
	// Unsubscribing twice is a no-op.
	h.Unsubscribe(a)

	h.Close()
	if _, ok := <-b; ok {
		t.Fatalf("channel should be closed by Close")
	}
	if _, ok := <-h.Subscribe(); ok {
		t.Fatalf("subscription after Close should be closed")
	}
	// Publishing after Close must not panic.
	h.Publish(MonitorStopped, StoppedEvent{Reason: "test"})
}

func TestNilHub(t *testing.T) {
	var h *EventHub
	h.Publish(BatteryAlert, AlertEvent{})
	if h.Subscribers() != 0 {
		t.Fatalf("nil hub should have no subscribers")
	}
}

func TestDecodeAsEmpty(t *testing.T) {
	got, err := DecodeAs[StoppedEvent](Event{Name: MonitorStopped})
	if err != nil {
		t.Fatalf("DecodeAs() error = %v", err)
	}
	if got.Reason != "" {
		t.Fatalf("expected zero value, got %+v", got)
	}
}
