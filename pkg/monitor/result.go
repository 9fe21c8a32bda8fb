package monitor

import (
	"fmt"
	"time"

	"github.com/charlie0129/battmon/pkg/notify"
	"github.com/charlie0129/battmon/pkg/powerinfo"
)

// Action tells the loop what to do after a check.
type Action int

const (
	// Continue means the loop should wait and check again.
	Continue Action = iota
	// Stop means the loop must end; Result.Err holds the reason.
	Stop
)

func (a Action) String() string {
	switch a {
	case Continue:
		return "continue"
	case Stop:
		return "stop"
	default:
		return fmt.Sprintf("unknown(%d)", int(a))
	}
}

func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(b []byte) error {
	switch string(b) {
	case "continue":
		*a = Continue
	case "stop":
		*a = Stop
	default:
		return fmt.Errorf("unknown action %q", string(b))
	}
	return nil
}

// Result is the outcome of one check.
type Result struct {
	Action Action
	// Level is LevelNone when no alert was due.
	Level notify.Level
	// Snapshot is nil when the battery could not be read.
	Snapshot *powerinfo.Snapshot
	// Alert is the alert handed to the notifier, if any.
	Alert *notify.Alert
	// Err is the stop reason for Stop, or a recovered failure for Continue.
	Err  error
	Time time.Time
}

// Report is the JSON form of a Result.
type Report struct {
	Time     time.Time           `json:"time"`
	Action   Action              `json:"action"`
	Level    notify.Level        `json:"level"`
	Snapshot *powerinfo.Snapshot `json:"snapshot,omitempty"`
	Alert    *notify.Alert       `json:"alert,omitempty"`
	Error    string              `json:"error,omitempty"`
}

func (r Result) Report() Report {
	rep := Report{
		Time:     r.Time,
		Action:   r.Action,
		Level:    r.Level,
		Snapshot: r.Snapshot,
		Alert:    r.Alert,
	}
	if r.Err != nil {
		rep.Error = r.Err.Error()
	}
	return rep
}
