package powerinfo

import (
	"context"
	"errors"
	"strconv"
)

// ErrNoBattery is returned by a Reader when the host has no battery sensor.
var ErrNoBattery = errors.New("no battery sensor available")

// Snapshot is one instantaneous reading of the battery.
type Snapshot struct {
	// Percent is the charge level, 0-100.
	Percent float64 `json:"percent"`
	// Plugged is true when the host runs on external power.
	Plugged bool `json:"plugged"`
}

// PercentString formats the charge with as few digits as needed: 15, 15.5.
func (s Snapshot) PercentString() string {
	return strconv.FormatFloat(s.Percent, 'f', -1, 64)
}

// Reader reads the current battery state.
type Reader interface {
	// Read returns ErrNoBattery (possibly wrapped) when there is no sensor.
	// Any other error is transient.
	Read(ctx context.Context) (Snapshot, error)
}

// ReaderFunc adapts a function to a Reader.
type ReaderFunc func(ctx context.Context) (Snapshot, error)

func (f ReaderFunc) Read(ctx context.Context) (Snapshot, error) {
	return f(ctx)
}
