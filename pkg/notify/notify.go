package notify

import (
	"errors"
	"fmt"
	"time"
)

// Level is the severity of a battery alert.
type Level int

const (
	LevelNone Level = iota
	LevelLow
	LevelCritical
)

func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelLow:
		return "low"
	case LevelCritical:
		return "critical"
	default:
		return fmt.Sprintf("unknown(%d)", int(l))
	}
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(b []byte) error {
	switch string(b) {
	case "none", "":
		*l = LevelNone
	case "low":
		*l = LevelLow
	case "critical":
		*l = LevelCritical
	default:
		return fmt.Errorf("unknown alert level %q", string(b))
	}
	return nil
}

// Alert is handed once to a Notifier and then discarded.
type Alert struct {
	ID      string    `json:"id"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Percent float64   `json:"percent"`
	Time    time.Time `json:"time"`
}

// Notifier receives battery alerts. Notify is called synchronously from the
// monitor loop and must not block for long.
type Notifier interface {
	Notify(alert Alert) error
}

// Func adapts a plain message callback to a Notifier.
type Func func(message string)

func (f Func) Notify(alert Alert) error {
	f(alert.Message)
	return nil
}

type multi []Notifier

// Multi sends every alert to all notifiers, in order. One failing notifier
// does not prevent the others from running.
func Multi(notifiers ...Notifier) Notifier {
	var m multi
	for _, n := range notifiers {
		if n != nil {
			m = append(m, n)
		}
	}
	return m
}

func (m multi) Notify(alert Alert) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(alert); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
