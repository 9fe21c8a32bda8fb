package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Battery metrics
	BatteryChargePercent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "battmon_battery_charge_percent",
			Help: "Battery charge reported by the last successful check",
		},
	)

	BatteryPluggedIn = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "battmon_battery_plugged_in",
			Help: "1 if the host was on external power at the last successful check",
		},
	)

	// Loop metrics
	ChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "battmon_checks_total",
			Help: "Total number of battery checks",
		},
		[]string{"result"}, // result: ok, error, stopped
	)

	CheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "battmon_check_duration_seconds",
			Help:    "Time taken by one battery check, including alert dispatch",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	// Alert metrics
	AlertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "battmon_alerts_total",
			Help: "Total number of alerts dispatched",
		},
		[]string{"level"}, // level: low, critical
	)

	AlertFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "battmon_alert_failures_total",
			Help: "Total number of alerts a sink failed to deliver",
		},
	)
)

// Check result labels
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultStopped = "stopped"
)
