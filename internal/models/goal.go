package models

import (
	"fmt"
	"time"
)

// GoalType selects which metric a goal tracks
type GoalType string

const (
	GoalStreak      GoalType = "streak"      // current streak in days
	GoalTotal       GoalType = "total"       // total completions
	GoalConsistency GoalType = "consistency" // 30-day completion rate, percent
)

// ParseGoalType validates a goal type string.
func ParseGoalType(s string) (GoalType, error) {
	switch GoalType(s) {
	case GoalStreak, GoalTotal, GoalConsistency:
		return GoalType(s), nil
	default:
		return "", fmt.Errorf("invalid goal type %q (expected streak, total or consistency)", s)
	}
}

// Goal is a target value for one habit metric
type Goal struct {
	ID          string     `json:"id"`
	HabitID     int64      `json:"habit_id"`
	Type        GoalType   `json:"goal_type"`
	Target      int        `json:"target_value"`
	Current     int        `json:"current_value"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Completed reports whether the goal has been reached at some point.
func (g Goal) Completed() bool {
	return g.CompletedAt != nil
}

// Progress returns Current/Target as a percentage capped at 100.
func (g Goal) Progress() float64 {
	if g.Target <= 0 {
		return 0
	}
	p := float64(g.Current) / float64(g.Target) * 100
	if p > 100 {
		return 100
	}
	return p
}
