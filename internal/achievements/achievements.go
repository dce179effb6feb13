// Package achievements evaluates and records achievement unlocks.
package achievements

import (
	"sort"
	"time"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/logger"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/streak"
	"github.com/julianstephens/habitlit/internal/utils"
)

type Store interface {
	GetAllHabits(includeInactive bool) ([]models.Habit, error)
	GetCompletionDays(habitID int64) ([]time.Time, error)
	GetAllCompletions() ([]models.Completion, error)
	GetGoals(habitID int64) ([]models.Goal, error)
	GetUnlockedAchievements() (map[string]time.Time, error)
	UnlockAchievement(key string, at time.Time) (bool, error)
}

type Evaluator struct {
	store Store
	defs  []models.AchievementDef
	loc   *time.Location
	now   func() time.Time
}

// New returns an Evaluator over the built-in definitions. loc is the zone
// completion timestamps are read in for the time-of-day achievements; nil
// means time.Local.
func New(store Store, loc *time.Location) *Evaluator {
	if loc == nil {
		loc = time.Local
	}
	return &Evaluator{store: store, defs: models.AchievementDefs, loc: loc, now: time.Now}
}

// metrics holds the value each achievement kind is compared against.
type metrics map[models.AchievementKind]int

func (e *Evaluator) measure(today time.Time) (metrics, error) {
	m := metrics{}

	habits, err := e.store.GetAllHabits(false)
	if err != nil {
		return nil, err
	}
	all, err := e.store.GetAllHabits(true)
	if err != nil {
		return nil, err
	}
	m[models.KindHabitCount] = len(all)

	perHabit := make(map[int64][]time.Time, len(habits))
	for _, h := range habits {
		days, err := e.store.GetCompletionDays(h.ID)
		if err != nil {
			return nil, err
		}
		perHabit[h.ID] = days

		info := streak.Compute(days, today)
		if info.CurrentStreak > m[models.KindStreak] {
			m[models.KindStreak] = info.CurrentStreak
		}
		if info.TotalCompletions > m[models.KindCompletions] {
			m[models.KindCompletions] = info.TotalCompletions
		}
	}
	m[models.KindPerfectDays] = longestPerfectRun(habits, perHabit, today)

	completions, err := e.store.GetAllCompletions()
	if err != nil {
		return nil, err
	}
	for _, c := range completions {
		hour := c.CreatedAt.In(e.loc).Hour()
		if hour < constants.EarlyBirdBeforeHour {
			m[models.KindEarlyBird]++
		}
		if hour >= constants.NightOwlAfterHour {
			m[models.KindNightOwl]++
		}
	}

	goals, err := e.store.GetGoals(0)
	if err != nil {
		return nil, err
	}
	m[models.KindGoalsCreated] = len(goals)
	for _, g := range goals {
		if g.Completed() {
			m[models.KindGoalsReached]++
		}
	}
	return m, nil
}

// longestPerfectRun returns the longest run of consecutive days, up to today,
// on which every habit that existed that day was completed.
func longestPerfectRun(habits []models.Habit, days map[int64][]time.Time, today time.Time) int {
	if len(habits) == 0 {
		return 0
	}
	today = utils.DateOf(today)

	start := today
	done := make(map[int64]map[time.Time]bool, len(habits))
	for _, h := range habits {
		created := utils.DateOf(h.CreatedAt)
		if created.Before(start) {
			start = created
		}
		set := make(map[time.Time]bool, len(days[h.ID]))
		for _, d := range days[h.ID] {
			set[utils.DateOf(d)] = true
		}
		done[h.ID] = set
	}

	longest, run := 0, 0
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		perfect, existing := true, 0
		for _, h := range habits {
			if utils.DateOf(h.CreatedAt).After(d) {
				continue
			}
			existing++
			if !done[h.ID][d] {
				perfect = false
				break
			}
		}
		if perfect && existing > 0 {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

// Check evaluates every definition and unlocks those whose threshold is met.
// It returns the achievements unlocked by this call.
func (e *Evaluator) Check(today time.Time) ([]models.AchievementDef, error) {
	m, err := e.measure(today)
	if err != nil {
		return nil, err
	}

	var unlocked []models.AchievementDef
	at := e.now()
	for _, def := range e.defs {
		if m[def.Kind] < def.Threshold {
			continue
		}
		newly, err := e.store.UnlockAchievement(def.Key, at)
		if err != nil {
			return unlocked, err
		}
		if newly {
			logger.Info("achievement unlocked", "key", def.Key, "name", def.Name)
			unlocked = append(unlocked, def)
		}
	}
	return unlocked, nil
}

// List returns every achievement with its unlock state, ordered legendary
// first, then unlocked before locked, then by threshold.
func (e *Evaluator) List() ([]models.Achievement, error) {
	unlocked, err := e.store.GetUnlockedAchievements()
	if err != nil {
		return nil, err
	}

	list := make([]models.Achievement, 0, len(e.defs))
	for _, def := range e.defs {
		a := models.Achievement{AchievementDef: def}
		if at, ok := unlocked[def.Key]; ok {
			a.UnlockedAt = &at
		}
		list = append(list, a)
	}

	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Rarity.Rank() != b.Rarity.Rank() {
			return a.Rarity.Rank() < b.Rarity.Rank()
		}
		if a.Unlocked() != b.Unlocked() {
			return a.Unlocked()
		}
		return a.Threshold < b.Threshold
	})
	return list, nil
}

// Stats reports how many of the known achievements are unlocked.
func (e *Evaluator) Stats() (models.AchievementStats, error) {
	unlocked, err := e.store.GetUnlockedAchievements()
	if err != nil {
		return models.AchievementStats{}, err
	}

	stats := models.AchievementStats{Total: len(e.defs)}
	for _, def := range e.defs {
		if _, ok := unlocked[def.Key]; ok {
			stats.Unlocked++
		}
	}
	if stats.Total > 0 {
		stats.Percentage = float64(stats.Unlocked * 100 / stats.Total)
	}
	return stats, nil
}
