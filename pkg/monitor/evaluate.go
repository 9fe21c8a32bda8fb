package monitor

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/charlie0129/battmon/pkg/notify"
	"github.com/charlie0129/battmon/pkg/powerinfo"
)

// Evaluate returns the alert level for a snapshot. Nothing fires while
// plugged in. The critical comparison runs first, so a charge at or below
// critical never yields a low alert.
func Evaluate(s powerinfo.Snapshot, low, critical int) notify.Level {
	if s.Plugged {
		return notify.LevelNone
	}

	if s.Percent <= float64(critical) {
		return notify.LevelCritical
	}

	if s.Percent <= float64(low) {
		return notify.LevelLow
	}

	return notify.LevelNone
}

// Message formats the alert text for level. It returns "" for LevelNone.
func Message(level notify.Level, s powerinfo.Snapshot) string {
	switch level {
	case notify.LevelCritical:
		return fmt.Sprintf("Critical battery level: %s%%! Plug in immediately.", s.PercentString())
	case notify.LevelLow:
		return fmt.Sprintf("Low battery: %s%%. Consider plugging in.", s.PercentString())
	default:
		return ""
	}
}

func newAlert(level notify.Level, s powerinfo.Snapshot, t time.Time) notify.Alert {
	return notify.Alert{
		ID:      uuid.NewString(),
		Level:   level,
		Message: Message(level, s),
		Percent: s.Percent,
		Time:    t,
	}
}
