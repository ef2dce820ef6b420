// Package stats accumulates per-day focus, rest, meditation and distance counters.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Tiliavir/mood-journal/internal/model"
	"github.com/Tiliavir/mood-journal/internal/timecalc"
)

// MinDurationSeconds is the smallest duration increment that is recorded.
// Shorter increments are dropped without error.
const MinDurationSeconds = 60

// Store is the persistence port for the day→stats mapping.
type Store interface {
	Load(ctx context.Context) (map[string]model.DailyStats, error)
	Save(ctx context.Context, days map[string]model.DailyStats) error
}

// Aggregator owns the day→stats mapping and is the only writer of its Store.
type Aggregator struct {
	log   *slog.Logger
	store Store
	now   func() time.Time

	mu   sync.Mutex
	days map[string]model.DailyStats
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock overrides the clock used to pick the current day.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// New creates an Aggregator and loads the persisted mapping from store.
func New(ctx context.Context, log *slog.Logger, store Store, opts ...Option) (*Aggregator, error) {
	a := &Aggregator{
		log:   log,
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	days, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	if days == nil {
		days = map[string]model.DailyStats{}
	}
	a.days = days
	return a, nil
}

// Update adds the provided increments to today's record and persists the
// mapping. Durations below MinDurationSeconds are ignored; distance is added
// whenever it is provided. The in-memory state only changes once the store
// accepted the write.
func (a *Aggregator) Update(ctx context.Context, u model.StatsUpdate) (model.DailyStats, error) {
	if u.DrivingDistanceKm != nil && !(*u.DrivingDistanceKm >= 0) {
		return model.DailyStats{}, fmt.Errorf("%w: driving distance must be non-negative, got %v",
			model.ErrValidation, *u.DrivingDistanceKm)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	day := timecalc.DayKey(a.now())
	st := a.days[day]
	if u.FocusSeconds != nil && *u.FocusSeconds >= MinDurationSeconds {
		st.FocusSeconds += *u.FocusSeconds
	}
	if u.RestSeconds != nil && *u.RestSeconds >= MinDurationSeconds {
		st.RestSeconds += *u.RestSeconds
	}
	if u.MeditationSeconds != nil && *u.MeditationSeconds >= MinDurationSeconds {
		st.MeditationSeconds += *u.MeditationSeconds
	}
	if u.DrivingDistanceKm != nil {
		st.DrivingDistanceKm += *u.DrivingDistanceKm
	}

	next := make(map[string]model.DailyStats, len(a.days)+1)
	for k, v := range a.days {
		next[k] = v
	}
	next[day] = st

	if err := a.store.Save(ctx, next); err != nil {
		a.log.Error("save stats", slog.String("day", day), slog.String("error", err.Error()))
		return a.days[day], fmt.Errorf("save stats: %w", err)
	}
	a.days = next
	a.log.Debug("stats updated", slog.String("day", day),
		slog.Int64("focus_seconds", st.FocusSeconds),
		slog.Int64("rest_seconds", st.RestSeconds),
		slog.Int64("meditation_seconds", st.MeditationSeconds),
		slog.Float64("driving_distance_km", st.DrivingDistanceKm))
	return st, nil
}

// StatsFor returns the record for the calendar day containing day, or a zero
// record when nothing was recorded.
func (a *Aggregator) StatsFor(day time.Time) model.DailyStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.days[timecalc.DayKey(day)]
}

// Today returns the record for the current day.
func (a *Aggregator) Today() model.DailyStats {
	return a.StatsFor(a.now())
}

// Totals sums every stored day.
func (a *Aggregator) Totals() model.DailyStats {
	a.mu.Lock()
	defer a.mu.Unlock()

	var total model.DailyStats
	for _, st := range a.days {
		total = total.Add(st)
	}
	return total
}

// Range sums the days from from through to, inclusive.
func (a *Aggregator) Range(from, to time.Time) model.DailyStats {
	lo, hi := timecalc.DayKey(from), timecalc.DayKey(to)

	a.mu.Lock()
	defer a.mu.Unlock()

	var total model.DailyStats
	for day, st := range a.days {
		if day >= lo && day <= hi {
			total = total.Add(st)
		}
	}
	return total
}

// Days returns every stored day in ascending order.
func (a *Aggregator) Days() []model.DayStats {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]model.DayStats, 0, len(a.days))
	for day, st := range a.days {
		out = append(out, model.DayStats{Day: day, Stats: st})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// ClearAll removes every stored day. It cannot be undone.
func (a *Aggregator) ClearAll(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	empty := map[string]model.DailyStats{}
	if err := a.store.Save(ctx, empty); err != nil {
		a.log.Error("clear stats", slog.String("error", err.Error()))
		return fmt.Errorf("clear stats: %w", err)
	}
	a.days = empty
	a.log.Info("stats cleared")
	return nil
}
