package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/charlie0129/battmon/pkg/events"
	"github.com/charlie0129/battmon/pkg/notify"
)

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}

func levelText(l notify.Level) string {
	switch l {
	case notify.LevelCritical:
		return color.New(color.Bold, color.FgRed).Sprint(l.String())
	case notify.LevelLow:
		return color.New(color.Bold, color.FgYellow).Sprint(l.String())
	default:
		return color.New(color.Bold, color.FgGreen).Sprint(l.String())
	}
}

func toJSON(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal json: %w", err)
	}
	return string(b), nil
}

// formatEvent renders one daemon event as a single line. ok is false for
// events that are not shown.
func formatEvent(ev events.Event, all bool) (line string, ok bool, err error) {
	switch ev.Name {
	case events.BatteryAlert:
		a, err := events.DecodeAs[events.AlertEvent](ev)
		if err != nil {
			return "", false, err
		}
		var level notify.Level
		if err := level.UnmarshalText([]byte(a.Level)); err != nil {
			return "", false, err
		}
		return fmt.Sprintf("%s %s %s", timestamp(a.Ts), levelText(level), a.Message), true, nil
	case events.BatteryCheck:
		if !all {
			return "", false, nil
		}
		c, err := events.DecodeAs[events.CheckEvent](ev)
		if err != nil {
			return "", false, err
		}
		if c.Error != "" {
			return fmt.Sprintf("%s check failed: %s", timestamp(c.Ts), c.Error), true, nil
		}
		if c.Percent == nil || c.Plugged == nil {
			return fmt.Sprintf("%s check: level %s", timestamp(c.Ts), c.Level), true, nil
		}
		return fmt.Sprintf("%s check: %g%%, plugged in %s", timestamp(c.Ts), *c.Percent, bool2Text(*c.Plugged)), true, nil
	case events.MonitorStopped:
		s, err := events.DecodeAs[events.StoppedEvent](ev)
		if err != nil {
			return "", false, err
		}
		return fmt.Sprintf("%s %s %s", timestamp(s.Ts), color.New(color.Bold, color.FgRed).Sprint("monitor stopped:"), s.Reason), true, nil
	}
	return "", false, nil
}

func timestamp(ts int64) string {
	return time.Unix(ts, 0).Format(time.Kitchen)
}
