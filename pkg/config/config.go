package config

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Config is the read-only configuration of a battery monitor. Values never
// change after construction.
type Config interface {
	// LowThreshold is the percentage at or below which a low alert fires.
	LowThreshold() int
	// CriticalThreshold is the percentage at or below which a critical
	// alert fires. It takes priority over LowThreshold.
	CriticalThreshold() int
	// CheckInterval is the time between two battery reads.
	CheckInterval() time.Duration
	// AlertCommand is an optional command run for every alert, with the
	// alert message appended as the last argument.
	AlertCommand() []string

	LogrusFields() logrus.Fields
}
