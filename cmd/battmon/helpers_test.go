package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/charlie0129/battmon/pkg/events"
)

func mustEvent(t *testing.T, name string, v interface{}) events.Event {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}
	return events.Event{Name: name, Data: b}
}

func TestFormatEvent(t *testing.T) {
	color.NoColor = true

	percent, plugged := 42.5, false
	tests := []struct {
		name     string
		ev       events.Event
		all      bool
		wantOK   bool
		contains string
	}{
		{
			name:     "alert",
			ev:       mustEvent(t, events.BatteryAlert, events.AlertEvent{Level: "critical", Message: "Critical battery level: 5%! Plug in immediately."}),
			wantOK:   true,
			contains: "critical Critical battery level: 5%! Plug in immediately.",
		},
		{
			name:   "check hidden by default",
			ev:     mustEvent(t, events.BatteryCheck, events.CheckEvent{Level: "none", Percent: &percent, Plugged: &plugged}),
			wantOK: false,
		},
		{
			name:     "check shown with all",
			ev:       mustEvent(t, events.BatteryCheck, events.CheckEvent{Level: "none", Percent: &percent, Plugged: &plugged}),
			all:      true,
			wantOK:   true,
			contains: "42.5%, plugged in ✘",
		},
		{
			name:     "failed check",
			ev:       mustEvent(t, events.BatteryCheck, events.CheckEvent{Error: "failed to read battery"}),
			all:      true,
			wantOK:   true,
			contains: "check failed: failed to read battery",
		},
		{
			name:     "stopped",
			ev:       mustEvent(t, events.MonitorStopped, events.StoppedEvent{Reason: "no battery sensor available"}),
			wantOK:   true,
			contains: "monitor stopped: no battery sensor available",
		},
		{
			name:   "unknown",
			ev:     events.Event{Name: "something.else", Data: []byte("{}")},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, ok, err := formatEvent(tt.ev, tt.all)
			if err != nil {
				t.Fatalf("formatEvent() error = %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("formatEvent() ok = %v, want %v", ok, tt.wantOK)
			}
			if !strings.Contains(line, tt.contains) {
				t.Fatalf("formatEvent() = %q, want it to contain %q", line, tt.contains)
			}
		})
	}
}

func TestFormatEventBadLevel(t *testing.T) {
	ev := mustEvent(t, events.BatteryAlert, events.AlertEvent{Level: "bogus"})
	if _, _, err := formatEvent(ev, false); err == nil {
		t.Fatalf("formatEvent() expected error for unknown level")
	}
}
