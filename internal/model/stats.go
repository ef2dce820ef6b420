package model

// DailyStats holds the accumulated counters for one calendar day.
type DailyStats struct {
	FocusSeconds      int64   `json:"focus_seconds"`
	RestSeconds       int64   `json:"rest_seconds"`
	MeditationSeconds int64   `json:"meditation_seconds"`
	DrivingDistanceKm float64 `json:"driving_distance_km"`
}

// Add returns the field-wise sum of s and o.
func (s DailyStats) Add(o DailyStats) DailyStats {
	return DailyStats{
		FocusSeconds:      s.FocusSeconds + o.FocusSeconds,
		RestSeconds:       s.RestSeconds + o.RestSeconds,
		MeditationSeconds: s.MeditationSeconds + o.MeditationSeconds,
		DrivingDistanceKm: s.DrivingDistanceKm + o.DrivingDistanceKm,
	}
}

// IsZero reports whether no counter has been accumulated.
func (s DailyStats) IsZero() bool {
	return s == DailyStats{}
}

// StatsUpdate is a set of optional increments for the current day. Nil fields
// are left untouched.
type StatsUpdate struct {
	FocusSeconds      *int64
	RestSeconds       *int64
	MeditationSeconds *int64
	DrivingDistanceKm *float64
}

// DayStats pairs a day-key with its counters.
type DayStats struct {
	Day   string     `json:"day"`
	Stats DailyStats `json:"stats"`
}
