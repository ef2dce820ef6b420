// Package session models the focus, rest and meditation timers. A session
// ticks once per second and never touches storage itself: when it ends it
// yields exactly one stats update for the caller to flush.
package session

import (
	"github.com/Tiliavir/mood-journal/internal/model"
	"github.com/Tiliavir/mood-journal/internal/stats"
)

// Kind identifies which counter a session feeds.
type Kind string

const (
	Focus      Kind = "focus"
	Rest       Kind = "rest"
	Meditation Kind = "meditation"
)

// Session is a one-second-resolution timer. A zero target counts up until
// stopped; a positive target counts down and finishes on its own.
type Session struct {
	kind     Kind
	target   int64
	elapsed  int64
	stopped  bool
	finished bool
}

// New creates a session of the given kind. targetMinutes <= 0 means open-ended.
func New(kind Kind, targetMinutes int) *Session {
	s := &Session{kind: kind}
	if targetMinutes > 0 {
		s.target = int64(targetMinutes) * 60
	}
	return s
}

// Kind returns the session kind.
func (s *Session) Kind() Kind { return s.kind }

// Elapsed returns the seconds counted so far.
func (s *Session) Elapsed() int64 { return s.elapsed }

// Remaining returns the seconds left for a countdown, or 0 when open-ended.
func (s *Session) Remaining() int64 {
	if s.target == 0 || s.elapsed >= s.target {
		return 0
	}
	return s.target - s.elapsed
}

// Countdown reports whether the session runs towards a fixed target.
func (s *Session) Countdown() bool { return s.target > 0 }

// Display returns the value a timer face should show: remaining seconds for a
// countdown, elapsed seconds otherwise.
func (s *Session) Display() int64 {
	if s.Countdown() {
		return s.Remaining()
	}
	return s.elapsed
}

// Done reports whether the session has stopped or reached its target.
func (s *Session) Done() bool {
	return s.stopped || (s.target > 0 && s.elapsed >= s.target)
}

// Tick advances the session by one second and reports whether it is done.
func (s *Session) Tick() bool {
	if !s.Done() {
		s.elapsed++
	}
	return s.Done()
}

// Stop ends the session early.
func (s *Session) Stop() { s.stopped = true }

// Finish stops the session and returns the update to flush. The second return
// value is false if Finish was already called. For focus sessions with a
// positive rateKmh, the distance covered at that rate is included once the
// duration reaches the stats floor.
func (s *Session) Finish(rateKmh float64) (model.StatsUpdate, bool) {
	if s.finished {
		return model.StatsUpdate{}, false
	}
	s.Stop()
	s.finished = true

	secs := s.elapsed
	var u model.StatsUpdate
	switch s.kind {
	case Focus:
		u.FocusSeconds = &secs
		if rateKmh > 0 && secs >= stats.MinDurationSeconds {
			km := float64(secs) / 3600 * rateKmh
			u.DrivingDistanceKm = &km
		}
	case Rest:
		u.RestSeconds = &secs
	case Meditation:
		u.MeditationSeconds = &secs
	}
	return u, true
}
