package timecalc

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DayLayout is the layout of a day-key, e.g. "2026-02-27".
const DayLayout = "2006-01-02"

// GenerateID creates a unique, opaque entry ID.
func GenerateID() string {
	return uuid.NewString()
}

// DayKey returns the calendar day of t in its own location as "2006-01-02".
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay parses a day-key in the local timezone.
func ParseDay(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", key, err)
	}
	return t, nil
}

// FormatDuration formats seconds as a human-readable string like "1h 40m" or "45m" or "30s".
func FormatDuration(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatDurationHHMMSS formats seconds as HH:MM:SS.
func FormatDurationHHMMSS(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	monday := StartOfDay(t.AddDate(0, 0, -(wd - 1)))
	sunday := monday.AddDate(0, 0, 6)
	return monday, sunday
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
