// Package streak computes consecutive-day completion streaks for habits.
package streak

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/utils"
)

// CompletionSource supplies the completion days of a habit.
type CompletionSource interface {
	GetCompletionDays(habitID int64) ([]time.Time, error)
}

// Calculator computes streaks from the days held in a CompletionSource.
type Calculator struct {
	source CompletionSource
}

// New returns a Calculator reading from source.
func New(source CompletionSource) *Calculator {
	return &Calculator{source: source}
}

// Info returns current streak, longest streak and total completions for a habit.
// A habit without completions (or an unknown habit) yields the zero StreakInfo.
func (c *Calculator) Info(habitID int64, today time.Time) (models.StreakInfo, error) {
	days, err := c.source.GetCompletionDays(habitID)
	if err != nil {
		return models.StreakInfo{}, fmt.Errorf("failed to load completions for habit %d: %w", habitID, err)
	}
	return Compute(days, today), nil
}

// Current returns the current streak of a habit as of today.
func (c *Calculator) Current(habitID int64, today time.Time) (int, error) {
	days, err := c.source.GetCompletionDays(habitID)
	if err != nil {
		return 0, fmt.Errorf("failed to load completions for habit %d: %w", habitID, err)
	}
	return CurrentStreak(days, today), nil
}

// Longest returns the longest streak the habit has ever had.
func (c *Calculator) Longest(habitID int64) (int, error) {
	days, err := c.source.GetCompletionDays(habitID)
	if err != nil {
		return 0, fmt.Errorf("failed to load completions for habit %d: %w", habitID, err)
	}
	return LongestStreak(days), nil
}

// AtRisk reports whether a running streak will break unless the habit is
// completed today: the streak is alive through yesterday but today is missing.
func (c *Calculator) AtRisk(habitID int64, today time.Time) (bool, error) {
	days, err := c.source.GetCompletionDays(habitID)
	if err != nil {
		return false, fmt.Errorf("failed to load completions for habit %d: %w", habitID, err)
	}
	today = utils.DateOf(today)
	for _, d := range days {
		if utils.DateOf(d).Equal(today) {
			return false, nil
		}
	}
	return CurrentStreak(days, today) > 0, nil
}

// Compute derives a StreakInfo from a set of completion days.
func Compute(days []time.Time, today time.Time) models.StreakInfo {
	unique := normalize(days)
	return models.StreakInfo{
		CurrentStreak:    currentFromSorted(unique, utils.DateOf(today)),
		LongestStreak:    longestFromSorted(unique),
		TotalCompletions: len(unique),
	}
}

// CurrentStreak counts consecutive completed days ending today or yesterday.
// Yesterday counts as the start of a live streak so that a streak is not
// reported broken before today is over.
func CurrentStreak(days []time.Time, today time.Time) int {
	return currentFromSorted(normalize(days), utils.DateOf(today))
}

// LongestStreak returns the length of the longest run of consecutive days.
func LongestStreak(days []time.Time) int {
	return longestFromSorted(normalize(days))
}

// normalize truncates to calendar days, drops duplicates and sorts ascending.
func normalize(days []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(days))
	out := make([]time.Time, 0, len(days))
	for _, d := range days {
		day := utils.DateOf(d)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func currentFromSorted(days []time.Time, today time.Time) int {
	if len(days) == 0 {
		return 0
	}

	yesterday := today.AddDate(0, 0, -1)
	mostRecent := days[len(days)-1]
	// Older than yesterday means broken; a future-dated entry never starts a streak.
	if !mostRecent.Equal(today) && !mostRecent.Equal(yesterday) {
		return 0
	}

	streak := 1
	expected := mostRecent.AddDate(0, 0, -1)
	for i := len(days) - 2; i >= 0; i-- {
		if !days[i].Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

func longestFromSorted(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if utils.DaysBetween(days[i-1], days[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
