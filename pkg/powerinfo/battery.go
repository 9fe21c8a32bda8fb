package powerinfo

import (
	"context"

	"github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var _ Reader = &SystemReader{}

// SystemReader reads the host batteries. Multiple packs are reported as one
// snapshot.
type SystemReader struct {
	getAll func() ([]*battery.Battery, error)
}

// NewSystemReader returns a Reader backed by the OS power supply interface.
func NewSystemReader() *SystemReader {
	return &SystemReader{getAll: battery.GetAll}
}

// pack is the subset of a battery we aggregate.
type pack struct {
	current float64
	full    float64
	state   battery.State
}

func (r *SystemReader) Read(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	bats, err := r.getAll()

	packs := make([]pack, 0, len(bats))
	for _, b := range bats {
		if b == nil {
			continue
		}
		packs = append(packs, pack{
			current: b.Current,
			full:    b.Full,
			state:   b.State,
		})
	}

	snapshot, ok := aggregate(packs)
	if !ok {
		if err != nil {
			return Snapshot{}, pkgerrors.Wrapf(err, "failed to read batteries")
		}
		return Snapshot{}, ErrNoBattery
	}

	if err != nil {
		// Partial failures still leave usable packs.
		logrus.WithError(err).Debug("some battery fields could not be read")
	}

	return snapshot, nil
}

// aggregate sums the capacity of every pack with a known full capacity. It
// returns false when no such pack exists.
//
// The host counts as plugged in only when some pack is charging or full and
// none is draining. Packs in an unknown state alone give no evidence of
// external power, so they read as unplugged.
func aggregate(packs []pack) (Snapshot, bool) {
	var current, full float64
	powered, draining := false, false
	usable := 0

	for _, p := range packs {
		if p.full <= 0 {
			continue
		}
		usable++
		current += p.current
		full += p.full
		switch p.state {
		case battery.Charging, battery.Full:
			powered = true
		case battery.Discharging, battery.Empty:
			draining = true
		}
	}

	if usable == 0 {
		return Snapshot{}, false
	}

	percent := current / full * 100
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}

	return Snapshot{Percent: percent, Plugged: powered && !draining}, true
}
