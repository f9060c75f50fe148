package models

import "time"

// ScanWindow is the [Start, End) epoch millisecond range queried in CloudWatch Logs
type ScanWindow struct {
	StartMillis int64
	EndMillis   int64
}

// Start returns the window start as a time.Time
func (w ScanWindow) Start() time.Time {
	return time.UnixMilli(w.StartMillis)
}

// End returns the window end as a time.Time
func (w ScanWindow) End() time.Time {
	return time.UnixMilli(w.EndMillis)
}

// Valid reports whether the window is non-empty
func (w ScanWindow) Valid() bool {
	return w.StartMillis < w.EndMillis
}
