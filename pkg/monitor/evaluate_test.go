package monitor

import (
	"testing"

	"github.com/charlie0129/battmon/pkg/notify"
	"github.com/charlie0129/battmon/pkg/powerinfo"
)

func TestEvaluate(t *testing.T) {
	const low, critical = 20, 10

	tests := []struct {
		name    string
		percent float64
		plugged bool
		want    notify.Level
	}{
		{name: "full, unplugged", percent: 100, want: notify.LevelNone},
		{name: "just above low", percent: 20.5, want: notify.LevelNone},
		{name: "at low", percent: 20, want: notify.LevelLow},
		{name: "between thresholds", percent: 15, want: notify.LevelLow},
		{name: "just above critical", percent: 10.1, want: notify.LevelLow},
		{name: "at critical", percent: 10, want: notify.LevelCritical},
		{name: "below critical", percent: 5, want: notify.LevelCritical},
		{name: "empty", percent: 0, want: notify.LevelCritical},
		{name: "plugged, critical", percent: 5, plugged: true, want: notify.LevelNone},
		{name: "plugged, low", percent: 15, plugged: true, want: notify.LevelNone},
		{name: "plugged, full", percent: 100, plugged: true, want: notify.LevelNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(powerinfo.Snapshot{Percent: tt.percent, Plugged: tt.plugged}, low, critical)
			if got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Sweep every integer percentage to check the ordering of the comparisons.
func TestEvaluateSweep(t *testing.T) {
	const low, critical = 20, 10

	for p := 0; p <= 100; p++ {
		for _, plugged := range []bool{false, true} {
			got := Evaluate(powerinfo.Snapshot{Percent: float64(p), Plugged: plugged}, low, critical)

			want := notify.LevelNone
			switch {
			case plugged:
			case p <= critical:
				want = notify.LevelCritical
			case p <= low:
				want = notify.LevelLow
			}

			if got != want {
				t.Fatalf("Evaluate(%d%%, plugged=%v) = %v, want %v", p, plugged, got, want)
			}
		}
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		level   notify.Level
		percent float64
		want    string
	}{
		{level: notify.LevelLow, percent: 15, want: "Low battery: 15%. Consider plugging in."},
		{level: notify.LevelCritical, percent: 5, want: "Critical battery level: 5%! Plug in immediately."},
		{level: notify.LevelLow, percent: 17.5, want: "Low battery: 17.5%. Consider plugging in."},
		{level: notify.LevelNone, percent: 50, want: ""},
	}
	for _, tt := range tests {
		if got := Message(tt.level, powerinfo.Snapshot{Percent: tt.percent}); got != tt.want {
			t.Errorf("Message(%v, %v) = %q, want %q", tt.level, tt.percent, got, tt.want)
		}
	}
}
