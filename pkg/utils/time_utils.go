package utils

import (
	"fmt"
	"time"

	"github.com/younsl/initcost/internal/models"
)

// NewScanWindow returns the window covering the given number of days up to now.
// Days are counted in UTC so a daylight saving change never stretches the window.
func NewScanWindow(now time.Time, days int) (models.ScanWindow, error) {
	if days < 1 {
		return models.ScanWindow{}, fmt.Errorf("days must be at least 1, got %d", days)
	}
	now = now.UTC()

	window := models.ScanWindow{
		StartMillis: now.AddDate(0, 0, -days).UnixMilli(),
		EndMillis:   now.UnixMilli(),
	}
	if !window.Valid() {
		return models.ScanWindow{}, fmt.Errorf("invalid scan window %d-%d", window.StartMillis, window.EndMillis)
	}

	return window, nil
}

// WindowDays returns the window length in whole days, rounded up
func WindowDays(w models.ScanWindow) int {
	d := w.End().Sub(w.Start())
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// FormatWindow formats a scan window as "YYYY-MM-DD HH:MM ~ YYYY-MM-DD HH:MM" in UTC
func FormatWindow(w models.ScanWindow) string {
	const layout = "2006-01-02 15:04"
	return fmt.Sprintf("%s ~ %s UTC", w.Start().UTC().Format(layout), w.End().UTC().Format(layout))
}
