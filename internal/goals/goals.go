// Package goals tracks per-habit targets on streak, completion count and
// 30-day consistency.
package goals

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/logger"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/stats"
)

// Store is the persistence the tracker needs.
type Store interface {
	stats.Store
	AddGoal(models.Goal) error
	GetGoal(id string) (models.Goal, error)
	GetGoals(habitID int64) ([]models.Goal, error)
	UpdateGoal(models.Goal) error
	DeleteGoal(id string) error
}

type Tracker struct {
	store  Store
	engine *stats.Engine
	now    func() time.Time
}

// New returns a Tracker. A nil engine builds one over store.
func New(store Store, engine *stats.Engine) *Tracker {
	if engine == nil {
		engine = stats.New(store, nil)
	}
	return &Tracker{store: store, engine: engine, now: time.Now}
}

// Create stores a new goal for an existing habit and computes its initial progress.
func (t *Tracker) Create(habitID int64, goalType models.GoalType, target int, today time.Time) (models.Goal, error) {
	if target <= 0 {
		return models.Goal{}, fmt.Errorf("goal target must be positive, got %d", target)
	}
	if _, err := models.ParseGoalType(string(goalType)); err != nil {
		return models.Goal{}, err
	}
	if _, err := t.store.GetHabit(habitID); err != nil {
		return models.Goal{}, err
	}

	goal := models.Goal{
		ID:        uuid.New().String(),
		HabitID:   habitID,
		Type:      goalType,
		Target:    target,
		CreatedAt: t.now(),
	}
	if err := t.store.AddGoal(goal); err != nil {
		return models.Goal{}, err
	}

	if _, err := t.Refresh(goal.ID, today); err != nil {
		return models.Goal{}, err
	}
	return t.store.GetGoal(goal.ID)
}

// Measure returns the current value of the metric a goal tracks.
func (t *Tracker) Measure(goal models.Goal, today time.Time) (int, error) {
	switch goal.Type {
	case models.GoalStreak:
		info, err := t.engine.StreakInfo(goal.HabitID, today)
		return info.CurrentStreak, err
	case models.GoalTotal:
		info, err := t.engine.StreakInfo(goal.HabitID, today)
		return info.TotalCompletions, err
	case models.GoalConsistency:
		rate, err := t.engine.CompletionRate(goal.HabitID, constants.LongRateWindowDays, today)
		return int(rate), err
	default:
		return 0, fmt.Errorf("goal %s has unknown type %q", goal.ID, goal.Type)
	}
}

// Refresh recomputes a goal's current value and persists it. It reports
// whether the goal reached its target for the first time. Once set,
// CompletedAt is kept even if the value later drops.
func (t *Tracker) Refresh(goalID string, today time.Time) (bool, error) {
	goal, err := t.store.GetGoal(goalID)
	if err != nil {
		return false, err
	}
	return t.refresh(goal, today)
}

func (t *Tracker) refresh(goal models.Goal, today time.Time) (bool, error) {
	value, err := t.Measure(goal, today)
	if err != nil {
		return false, err
	}

	goal.Current = value
	newly := false
	if value >= goal.Target && !goal.Completed() {
		at := t.now()
		goal.CompletedAt = &at
		newly = true
	}

	if err := t.store.UpdateGoal(goal); err != nil {
		return false, fmt.Errorf("failed to update goal %s: %w", goal.ID, err)
	}
	if newly {
		logger.Info("goal completed", "goal", goal.ID, "habit", goal.HabitID, "type", goal.Type, "target", goal.Target)
	}
	return newly, nil
}

// RefreshAll refreshes every open goal and returns the ones completed by this call.
func (t *Tracker) RefreshAll(today time.Time) ([]models.Goal, error) {
	all, err := t.store.GetGoals(0)
	if err != nil {
		return nil, err
	}

	var completed []models.Goal
	for _, g := range all {
		if g.Completed() {
			continue
		}
		newly, err := t.refresh(g, today)
		if err != nil {
			return completed, err
		}
		if newly {
			updated, err := t.store.GetGoal(g.ID)
			if err != nil {
				return completed, err
			}
			completed = append(completed, updated)
		}
	}
	return completed, nil
}

// Delete removes a goal.
func (t *Tracker) Delete(goalID string) error {
	return t.store.DeleteGoal(goalID)
}

// Counts returns the number of open and completed goals.
func (t *Tracker) Counts() (open, completed int, err error) {
	all, err := t.store.GetGoals(0)
	if err != nil {
		return 0, 0, err
	}
	for _, g := range all {
		if g.Completed() {
			completed++
		} else {
			open++
		}
	}
	return open, completed, nil
}
