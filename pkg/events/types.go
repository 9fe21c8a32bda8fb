package events

import "encoding/json"

// Event name constants
const (
	BatteryAlert   = "battery.alert"
	BatteryCheck   = "battery.check"
	MonitorStopped = "monitor.stopped"
)

// Event is a generic SSE event from daemon.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// AlertEvent is the typed payload for battery.alert.
type AlertEvent struct {
	ID      string  `json:"id"`
	Level   string  `json:"level"`
	Message string  `json:"message"`
	Percent float64 `json:"percent"`
	Ts      int64   `json:"ts"`
}

// CheckEvent is the typed payload for battery.check.
type CheckEvent struct {
	Percent *float64 `json:"percent,omitempty"`
	Plugged *bool    `json:"plugged,omitempty"`
	Level   string   `json:"level"`
	Error   string   `json:"error,omitempty"`
	Ts      int64    `json:"ts"`
}

// StoppedEvent is the typed payload for monitor.stopped.
type StoppedEvent struct {
	Reason string `json:"reason"`
	Ts     int64  `json:"ts"`
}

// DecodeAs decodes the event payload into the caller-specified generic type T.
// It ignores the event name and simply unmarshals Data into T. If Data is empty,
// it returns the zero value of T with a nil error.
//
// Example:
//
//	payload, err := events.DecodeAs[events.AlertEvent](ev)
//	if err != nil { /* handle */ }
//	fmt.Println(payload.Level, payload.Message)
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
