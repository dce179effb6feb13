package models

import "time"

// DeletedHabit is a purged habit archived together with its completion days
type DeletedHabit struct {
	ID        string      `json:"id"`
	Habit     Habit       `json:"habit"`
	Days      []time.Time `json:"days"`
	DeletedAt time.Time   `json:"deleted_at"`
}
