package monitor

import (
	"sync"
	"time"
)

// TimeSeriesRecorder records the times of the last N checks, so that gaps
// (e.g. the host was asleep) can be spotted.
type TimeSeriesRecorder struct {
	MaxRecordCount int
	// Interval is the expected time between two records.
	Interval   time.Duration
	CheckTimes []time.Time
	mu         *sync.Mutex
}

// NewTimeSeriesRecorder returns a new TimeSeriesRecorder.
func NewTimeSeriesRecorder(maxRecordCount int, interval time.Duration) *TimeSeriesRecorder {
	return &TimeSeriesRecorder{
		MaxRecordCount: maxRecordCount,
		Interval:       interval,
		CheckTimes:     make([]time.Time, 0),
		mu:             &sync.Mutex{},
	}
}

// AddRecord adds a new record.
func (r *TimeSeriesRecorder) AddRecord(t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Strip monotonic clock reading, so time.Since stays accurate across
	// system sleep.
	t = t.Round(0)

	if r.MaxRecordCount > 0 && len(r.CheckTimes) >= r.MaxRecordCount {
		r.CheckTimes = r.CheckTimes[1:]
	}
	r.CheckTimes = append(r.CheckTimes, t)
}

// GetRecords returns a copy of the records.
func (r *TimeSeriesRecorder) GetRecords() []time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]time.Time(nil), r.CheckTimes...)
}

// GetRecordsString returns the records in RFC 3339 format.
func (r *TimeSeriesRecorder) GetRecordsString() []string {
	records := r.GetRecords()
	recordsString := make([]string, 0, len(records))
	for _, record := range records {
		recordsString = append(recordsString, record.Format(time.RFC3339))
	}
	return recordsString
}

// GetRecordsIn returns the number of continuous records in the last duration.
func (r *TimeSeriesRecorder) GetRecordsIn(last time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	tolerance := r.Interval + time.Second

	// The last record must be within the last duration.
	if len(r.CheckTimes) > 0 && time.Since(r.CheckTimes[len(r.CheckTimes)-1]) >= tolerance {
		return 0
	}

	// Find continuous records from the end of the list.
	// Continuous records are defined as the time difference between
	// two adjacent records is less than Interval+1 second.
	count := 0
	for i := len(r.CheckTimes) - 1; i >= 0; i-- {
		record := r.CheckTimes[i]
		if time.Since(record) > last {
			break
		}

		theRecordAfter := record
		if i+1 < len(r.CheckTimes) {
			theRecordAfter = r.CheckTimes[i+1]
		}

		if theRecordAfter.Sub(record) >= tolerance {
			break
		}
		count++
	}

	return count
}
