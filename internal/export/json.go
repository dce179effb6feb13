package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/utils"
)

type jsonExport struct {
	ExportDate  string      `json:"export_date"`
	TotalHabits int         `json:"total_habits"`
	Habits      []jsonHabit `json:"habits"`
}

type jsonHabit struct {
	HabitID          int64   `json:"habit_id"`
	HabitName        string  `json:"habit_name"`
	Description      string  `json:"description"`
	Category         string  `json:"category"`
	CreatedAt        string  `json:"created_at"`
	CurrentStreak    int     `json:"current_streak"`
	LongestStreak    int     `json:"longest_streak"`
	TotalCompletions int     `json:"total_completions"`
	Rate7Day         float64 `json:"completion_rate_7d"`
	Rate30Day        float64 `json:"completion_rate_30d"`
	CompletedToday   bool    `json:"is_completed_today"`
}

func ToJSON(w io.Writer, stats []models.HabitStats, exportedAt time.Time) error {
	export := jsonExport{
		ExportDate:  exportedAt.Format(time.RFC3339),
		TotalHabits: len(stats),
		Habits:      make([]jsonHabit, 0, len(stats)),
	}

	for _, s := range stats {
		export.Habits = append(export.Habits, jsonHabit{
			HabitID:          s.HabitID,
			HabitName:        s.Name,
			Description:      s.Description,
			Category:         s.Category,
			CreatedAt:        utils.FormatDate(s.CreatedAt),
			CurrentStreak:    s.CurrentStreak,
			LongestStreak:    s.LongestStreak,
			TotalCompletions: s.TotalCompletions,
			Rate7Day:         s.Rate7Day,
			Rate30Day:        s.Rate30Day,
			CompletedToday:   s.CompletedToday,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(export); err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	return nil
}
