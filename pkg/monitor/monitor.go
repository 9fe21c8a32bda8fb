package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/battmon/pkg/config"
	"github.com/charlie0129/battmon/pkg/events"
	"github.com/charlie0129/battmon/pkg/metrics"
	"github.com/charlie0129/battmon/pkg/notify"
	"github.com/charlie0129/battmon/pkg/powerinfo"
)

const (
	recorderSize = 60
	// continuousWindow is the number of intervals looked at when counting
	// continuous checks for Status.
	continuousWindow = 6
)

// BackoffFunc returns how long to wait after a failed check. failures is
// the number of consecutive failed checks, starting at 1.
type BackoffFunc func(failures int, interval time.Duration) time.Duration

// SleepFunc waits for d. It returns ctx.Err() if ctx is done first.
type SleepFunc func(ctx context.Context, d time.Duration) error

// FullInterval retries after the regular interval, regardless of failures.
func FullInterval(_ int, interval time.Duration) time.Duration {
	return interval
}

type Option func(*Monitor)

// WithBackoff sets the wait used after a failed check. The default is
// FullInterval.
func WithBackoff(b BackoffFunc) Option {
	return func(m *Monitor) {
		if b != nil {
			m.backoff = b
		}
	}
}

// WithSleep replaces the wait between checks.
func WithSleep(s SleepFunc) Option {
	return func(m *Monitor) {
		if s != nil {
			m.sleep = s
		}
	}
}

// WithEventHub publishes check results and loop termination to hub.
func WithEventHub(hub *events.EventHub) Option {
	return func(m *Monitor) {
		m.hub = hub
	}
}

// WithLogger sets the logger for loop messages.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(m *Monitor) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Monitor polls a battery reader and alerts a notifier when the charge is
// low while unplugged.
type Monitor struct {
	low      int
	critical int
	interval time.Duration

	reader   powerinfo.Reader
	notifier notify.Notifier
	backoff  BackoffFunc
	sleep    SleepFunc
	hub      *events.EventHub
	logger   logrus.FieldLogger

	// checkLock prevents parallel checks, e.g. a forced check from the API
	// while the loop is running one.
	checkLock sync.Mutex

	mu       sync.RWMutex
	running  bool
	last     *Result
	alerts   map[notify.Level]int
	recorder *TimeSeriesRecorder
}

// New returns a Monitor. A nil notifier falls back to a LogNotifier.
func New(conf config.Config, reader powerinfo.Reader, notifier notify.Notifier, opts ...Option) (*Monitor, error) {
	if err := config.Validate(conf); err != nil {
		return nil, err
	}
	if reader == nil {
		return nil, pkgerrors.New("battery reader is nil")
	}

	m := &Monitor{
		low:      conf.LowThreshold(),
		critical: conf.CriticalThreshold(),
		interval: conf.CheckInterval(),
		reader:   reader,
		notifier: notifier,
		backoff:  FullInterval,
		sleep:    sleepContext,
		logger:   logrus.StandardLogger(),
		alerts:   make(map[notify.Level]int),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.notifier == nil {
		m.notifier = notify.NewLogNotifier(m.logger)
	}
	m.recorder = NewTimeSeriesRecorder(recorderSize, m.interval)

	return m, nil
}

// Check runs one cycle: read the battery, compare against the thresholds
// and notify. It never panics; failures are reported in Result.Err.
func (m *Monitor) Check(ctx context.Context) (res Result) {
	m.checkLock.Lock()
	defer m.checkLock.Unlock()

	start := time.Now()
	res.Time = start

	defer func() {
		if r := recover(); r != nil {
			res.Action = Continue
			res.Err = pkgerrors.Errorf("panic during battery check: %v", r)
		}
		m.record(res, time.Since(start))
	}()

	snapshot, err := m.reader.Read(ctx)
	if err != nil {
		if errors.Is(err, powerinfo.ErrNoBattery) {
			res.Action = Stop
			res.Err = err
			return res
		}
		res.Err = pkgerrors.Wrap(err, "failed to read battery")
		return res
	}
	res.Snapshot = &snapshot

	res.Level = Evaluate(snapshot, m.low, m.critical)
	if res.Level == notify.LevelNone {
		return res
	}

	alert := newAlert(res.Level, snapshot, start)
	res.Alert = &alert

	metrics.AlertsTotal.WithLabelValues(res.Level.String()).Inc()
	if err := m.notifier.Notify(alert); err != nil {
		metrics.AlertFailuresTotal.Inc()
		res.Err = pkgerrors.Wrapf(err, "failed to dispatch %s alert", res.Level)
	}

	return res
}

// Run checks the battery every interval until the battery disappears or ctx
// is done. It returns the stop reason, or ctx.Err().
func (m *Monitor) Run(ctx context.Context) error {
	m.setRunning(true)
	defer m.setRunning(false)

	m.logger.WithFields(logrus.Fields{
		"lowThreshold":      m.low,
		"criticalThreshold": m.critical,
		"checkInterval":     m.interval.String(),
	}).Debug("monitor loop starts")

	failures := 0
	for {
		res := m.Check(ctx)
		if err := ctx.Err(); err != nil {
			return err
		}

		if res.Action == Stop {
			m.logger.WithError(res.Err).Error("battery monitor stopped")
			m.hub.Publish(events.MonitorStopped, events.StoppedEvent{
				Reason: errorString(res.Err),
				Ts:     time.Now().Unix(),
			})
			return res.Err
		}

		wait := m.interval
		if res.Err != nil {
			failures++
			wait = m.backoff(failures, m.interval)
			m.logger.WithError(res.Err).WithFields(logrus.Fields{
				"failures": failures,
				"retryIn":  wait.String(),
			}).Error("error in battery monitoring")
		} else {
			failures = 0
		}

		if err := m.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func (m *Monitor) record(res Result, took time.Duration) {
	metrics.CheckDuration.Observe(took.Seconds())

	switch {
	case res.Action == Stop:
		metrics.ChecksTotal.WithLabelValues(metrics.ResultStopped).Inc()
	case res.Err != nil:
		metrics.ChecksTotal.WithLabelValues(metrics.ResultError).Inc()
	default:
		metrics.ChecksTotal.WithLabelValues(metrics.ResultOK).Inc()
	}

	if res.Snapshot != nil {
		metrics.BatteryChargePercent.Set(res.Snapshot.Percent)
		if res.Snapshot.Plugged {
			metrics.BatteryPluggedIn.Set(1)
		} else {
			metrics.BatteryPluggedIn.Set(0)
		}
	}

	m.recorder.AddRecord(res.Time)

	m.mu.Lock()
	m.last = &res
	if res.Alert != nil {
		m.alerts[res.Level]++
	}
	m.mu.Unlock()

	if m.hub == nil {
		return
	}
	ev := events.CheckEvent{
		Level: res.Level.String(),
		Error: errorString(res.Err),
		Ts:    res.Time.Unix(),
	}
	if res.Snapshot != nil {
		percent, plugged := res.Snapshot.Percent, res.Snapshot.Plugged
		ev.Percent = &percent
		ev.Plugged = &plugged
	}
	m.hub.Publish(events.BatteryCheck, ev)
}

func (m *Monitor) setRunning(running bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = running
}

// Status is a point-in-time view of the monitor.
type Status struct {
	Running           bool           `json:"running"`
	LowThreshold      int            `json:"lowThreshold"`
	CriticalThreshold int            `json:"criticalThreshold"`
	CheckInterval     string         `json:"checkInterval"`
	LastCheck         *Report        `json:"lastCheck,omitempty"`
	Alerts            map[string]int `json:"alerts"`
	// ContinuousChecks counts recent checks that ran on schedule. It drops
	// after the host was asleep.
	ContinuousChecks int      `json:"continuousChecks"`
	RecentChecks     []string `json:"recentChecks"`
}

func (m *Monitor) Status() Status {
	m.mu.RLock()
	s := Status{
		Running:           m.running,
		LowThreshold:      m.low,
		CriticalThreshold: m.critical,
		CheckInterval:     m.interval.String(),
		Alerts: map[string]int{
			notify.LevelLow.String():      m.alerts[notify.LevelLow],
			notify.LevelCritical.String(): m.alerts[notify.LevelCritical],
		},
	}
	if m.last != nil {
		rep := m.last.Report()
		s.LastCheck = &rep
	}
	m.mu.RUnlock()

	s.ContinuousChecks = m.recorder.GetRecordsIn(continuousWindow * m.interval)
	s.RecentChecks = m.recorder.GetRecordsString()

	return s
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
