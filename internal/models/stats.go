package models

import "time"

// StreakInfo is derived from a habit's completion days on every query
type StreakInfo struct {
	CurrentStreak    int `json:"current_streak"`
	LongestStreak    int `json:"longest_streak"`
	TotalCompletions int `json:"total_completions"`
}

// HabitStats is the per-habit statistics record
type HabitStats struct {
	HabitID          int64     `json:"habit_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	CreatedAt        time.Time `json:"created_at"`
	CurrentStreak    int       `json:"current_streak"`
	LongestStreak    int       `json:"longest_streak"`
	TotalCompletions int       `json:"total_completions"`
	Rate7Day         float64   `json:"completion_rate_7d"`
	Rate30Day        float64   `json:"completion_rate_30d"`
	CompletedToday   bool      `json:"is_completed_today"`
}

// Empty reports whether s is the zero record returned for an unknown habit.
func (s HabitStats) Empty() bool {
	return s.HabitID == 0 && s.Name == ""
}

// DayMark is one day of a weekly breakdown
type DayMark struct {
	Weekday   time.Weekday `json:"weekday"`
	Date      time.Time    `json:"date"`
	Completed bool         `json:"completed"`
}

// WeeklyBreakdown covers Monday through today of the current week, in order
type WeeklyBreakdown []DayMark

// Map returns weekday name to 1 (completed) or 0.
func (w WeeklyBreakdown) Map() map[string]int {
	m := make(map[string]int, len(w))
	for _, d := range w {
		v := 0
		if d.Completed {
			v = 1
		}
		m[d.Weekday.String()] = v
	}
	return m
}

// CompletedDays counts the completed days in the breakdown.
func (w WeeklyBreakdown) CompletedDays() int {
	n := 0
	for _, d := range w {
		if d.Completed {
			n++
		}
	}
	return n
}
