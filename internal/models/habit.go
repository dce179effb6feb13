package models

import (
	"fmt"
	"time"
)

// Frequency is how often a habit is expected to be completed
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// ParseFrequency validates a frequency string. Empty input means daily.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case "", FrequencyDaily:
		return FrequencyDaily, nil
	case FrequencyWeekly:
		return FrequencyWeekly, nil
	default:
		return "", fmt.Errorf("invalid frequency %q (expected daily or weekly)", s)
	}
}

// Habit is a named recurring activity the user tracks
type Habit struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Frequency   Frequency `json:"frequency"`
	CreatedAt   time.Time `json:"created_at"` // calendar date, UTC midnight
	Active      bool      `json:"active"`
}

// Completion records that a habit was done on a calendar day
type Completion struct {
	ID        int64     `json:"id"`
	HabitID   int64     `json:"habit_id"`
	Day       time.Time `json:"day"` // calendar date, UTC midnight
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"` // wall-clock time the mark was recorded
}
