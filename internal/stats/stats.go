// Package stats derives completion rates, weekly breakdowns and per-habit
// statistics from stored completions.
package stats

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/storage"
	"github.com/julianstephens/habitlit/internal/streak"
	"github.com/julianstephens/habitlit/internal/utils"
)

// Store is the read side of storage the engine needs.
type Store interface {
	streak.CompletionSource
	GetHabit(id int64) (models.Habit, error)
}

// Engine computes habit statistics on demand. It holds no state between calls.
type Engine struct {
	store  Store
	streak *streak.Calculator
}

// New returns an Engine over store. A nil calc builds one from the same store.
func New(store Store, calc *streak.Calculator) *Engine {
	if calc == nil {
		calc = streak.New(store)
	}
	return &Engine{store: store, streak: calc}
}

// lookup returns the habit and its completion set. ok is false for an unknown habit.
func (e *Engine) lookup(habitID int64) (models.Habit, map[time.Time]bool, bool, error) {
	habit, err := e.store.GetHabit(habitID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Habit{}, nil, false, nil
		}
		return models.Habit{}, nil, false, fmt.Errorf("failed to load habit %d: %w", habitID, err)
	}

	days, err := e.store.GetCompletionDays(habitID)
	if err != nil {
		return models.Habit{}, nil, false, fmt.Errorf("failed to load completions for habit %d: %w", habitID, err)
	}
	set := make(map[time.Time]bool, len(days))
	for _, d := range days {
		set[utils.DateOf(d)] = true
	}
	return habit, set, true, nil
}

// CompletionRate returns the percentage (0-100) of days completed in the last
// windowDays days ending today. The window never reaches back before the
// habit was created. Unknown habits and empty windows yield 0.
func (e *Engine) CompletionRate(habitID int64, windowDays int, today time.Time) (float64, error) {
	habit, done, ok, err := e.lookup(habitID)
	if err != nil || !ok {
		return 0, err
	}
	return completionRate(habit.CreatedAt, done, windowDays, utils.DateOf(today)), nil
}

func completionRate(created time.Time, done map[time.Time]bool, windowDays int, today time.Time) float64 {
	created = utils.DateOf(created)
	window := windowDays
	if sinceCreation := utils.DaysBetween(created, today) + 1; sinceCreation < window {
		window = sinceCreation
	}
	if window <= 0 {
		return 0
	}

	hits := 0
	for i := 0; i < window; i++ {
		day := today.AddDate(0, 0, -i)
		if day.Before(created) {
			continue
		}
		if done[day] {
			hits++
		}
	}
	return float64(hits) / float64(window) * 100
}

// HabitStats returns the statistics record for one habit. An unknown habit
// yields the zero HabitStats (Empty reports true) and a nil error.
func (e *Engine) HabitStats(habitID int64, today time.Time) (models.HabitStats, error) {
	habit, done, ok, err := e.lookup(habitID)
	if err != nil || !ok {
		return models.HabitStats{}, err
	}
	return e.build(habit, done, utils.DateOf(today)), nil
}

func (e *Engine) build(habit models.Habit, done map[time.Time]bool, today time.Time) models.HabitStats {
	days := make([]time.Time, 0, len(done))
	for d := range done {
		days = append(days, d)
	}
	info := streak.Compute(days, today)

	return models.HabitStats{
		HabitID:          habit.ID,
		Name:             habit.Name,
		Description:      habit.Description,
		Category:         habit.Category,
		CreatedAt:        habit.CreatedAt,
		CurrentStreak:    info.CurrentStreak,
		LongestStreak:    info.LongestStreak,
		TotalCompletions: info.TotalCompletions,
		Rate7Day:         round1(completionRate(habit.CreatedAt, done, constants.ShortRateWindowDays, today)),
		Rate30Day:        round1(completionRate(habit.CreatedAt, done, constants.LongRateWindowDays, today)),
		CompletedToday:   done[today],
	}
}

// WeeklyBreakdown marks each day from Monday of the current week through
// today as completed or not. Days after today are omitted.
func (e *Engine) WeeklyBreakdown(habitID int64, today time.Time) (models.WeeklyBreakdown, error) {
	days, err := e.store.GetCompletionDays(habitID)
	if err != nil {
		return nil, fmt.Errorf("failed to load completions for habit %d: %w", habitID, err)
	}
	done := make(map[time.Time]bool, len(days))
	for _, d := range days {
		done[utils.DateOf(d)] = true
	}

	today = utils.DateOf(today)
	start := utils.StartOfWeek(today)
	week := make(models.WeeklyBreakdown, 0, constants.DaysPerWeek)
	for i := 0; i < constants.DaysPerWeek; i++ {
		day := start.AddDate(0, 0, i)
		if day.After(today) {
			break
		}
		week = append(week, models.DayMark{Weekday: day.Weekday(), Date: day, Completed: done[day]})
	}
	return week, nil
}

// AllHabitsSummary returns HabitStats for every active habit in habits, in order.
func (e *Engine) AllHabitsSummary(habits []models.Habit, today time.Time) ([]models.HabitStats, error) {
	today = utils.DateOf(today)
	out := make([]models.HabitStats, 0, len(habits))
	for _, h := range habits {
		if !h.Active {
			continue
		}
		s, err := e.HabitStats(h.ID, today)
		if err != nil {
			return nil, err
		}
		if s.Empty() {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// StreakInfo exposes the engine's streak calculator for a single habit.
func (e *Engine) StreakInfo(habitID int64, today time.Time) (models.StreakInfo, error) {
	return e.streak.Info(habitID, today)
}

// round1 rounds half to even at one decimal place.
func round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
