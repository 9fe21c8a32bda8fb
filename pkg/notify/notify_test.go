package notify

import (
	"encoding/json"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/charlie0129/battmon/pkg/events"
)

type failingNotifier struct{ err error }

func (f failingNotifier) Notify(Alert) error { return f.err }

func TestFunc(t *testing.T) {
	var got []string
	n := Func(func(message string) { got = append(got, message) })

	if err := n.Notify(Alert{Level: LevelLow, Message: "hello"}); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if len(got) != 1 || got[0] != "hello" {
		t.Fatalf("callback got %v", got)
	}
}

func TestMulti(t *testing.T) {
	var calls []string
	first := Func(func(string) { calls = append(calls, "first") })
	last := Func(func(string) { calls = append(calls, "last") })
	boom := errors.New("boom")

	n := Multi(first, nil, failingNotifier{err: boom}, last)
	err := n.Notify(Alert{Message: "x"})
	if !errors.Is(err, boom) {
		t.Fatalf("Notify() error = %v, want boom", err)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "last" {
		t.Fatalf("calls = %v, every notifier should run in order", calls)
	}

	if err := Multi().Notify(Alert{}); err != nil {
		t.Fatalf("empty Multi should not fail: %v", err)
	}
}

func TestLogNotifier(t *testing.T) {
	logger, hook := test.NewNullLogger()
	n := NewLogNotifier(logger)

	err := n.Notify(Alert{ID: "abc", Level: LevelCritical, Message: "Critical battery level: 5%! Plug in immediately.", Percent: 5})
	if err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	if len(hook.Entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(hook.Entries))
	}
	entry := hook.LastEntry()
	if entry.Level != logrus.WarnLevel {
		t.Errorf("level = %v, want warning", entry.Level)
	}
	if entry.Message != "Critical battery level: 5%! Plug in immediately." {
		t.Errorf("message = %q", entry.Message)
	}
	if entry.Data["alertLevel"] != "critical" || entry.Data["alertID"] != "abc" {
		t.Errorf("unexpected fields %v", entry.Data)
	}
}

func TestEventNotifier(t *testing.T) {
	hub := events.NewEventHub()
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	now := time.Unix(1700000000, 0)
	n := NewEventNotifier(hub)
	if err := n.Notify(Alert{ID: "id", Level: LevelLow, Message: "m", Percent: 15, Time: now}); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	ev := <-ch
	payload, err := events.DecodeAs[events.AlertEvent](ev)
	if err != nil {
		t.Fatalf("DecodeAs() error = %v", err)
	}
	if ev.Name != events.BatteryAlert || payload.Level != "low" || payload.Ts != now.Unix() {
		t.Fatalf("unexpected event %s %+v", ev.Name, payload)
	}
}

func TestCommandNotifier(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	if _, err := NewCommandNotifier(nil, 0); err == nil {
		t.Fatalf("expected error for empty command")
	}

	ok, err := NewCommandNotifier([]string{"sh", "-c", `test "$1" = "Low battery: 15%. Consider plugging in." && test "$BATTMON_ALERT_LEVEL" = low`, "sh"}, time.Second)
	if err != nil {
		t.Fatalf("NewCommandNotifier() error = %v", err)
	}
	if err := ok.Notify(Alert{Level: LevelLow, Message: "Low battery: 15%. Consider plugging in."}); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	fail, err := NewCommandNotifier([]string{"sh", "-c", "echo nope; exit 3"}, time.Second)
	if err != nil {
		t.Fatalf("NewCommandNotifier() error = %v", err)
	}
	if err := fail.Notify(Alert{Message: "x"}); err == nil {
		t.Fatalf("expected error from failing command")
	}
}

func TestLevelText(t *testing.T) {
	b, err := json.Marshal(struct {
		L Level `json:"l"`
	}{L: LevelCritical})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `{"l":"critical"}` {
		t.Fatalf("Marshal() = %s", b)
	}

	var l Level
	if err := l.UnmarshalText([]byte("low")); err != nil || l != LevelLow {
		t.Fatalf("UnmarshalText(low) = %v, %v", l, err)
	}
	if err := l.UnmarshalText([]byte("bogus")); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
