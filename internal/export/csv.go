package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/utils"
)

var csvHeader = []string{
	"Habit Name", "Current Streak", "Longest Streak", "Total Completions",
	"7-Day Rate (%)", "30-Day Rate (%)", "Completed Today", "Created Date",
}

func ToCSV(w io.Writer, stats []models.HabitStats) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, s := range stats {
		completed := "No"
		if s.CompletedToday {
			completed = "Yes"
		}
		row := []string{
			s.Name,
			strconv.Itoa(s.CurrentStreak),
			strconv.Itoa(s.LongestStreak),
			strconv.Itoa(s.TotalCompletions),
			strconv.FormatFloat(s.Rate7Day, 'f', 1, 64),
			strconv.FormatFloat(s.Rate30Day, 'f', 1, 64),
			completed,
			utils.FormatDate(s.CreatedAt),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
