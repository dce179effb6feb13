package achievements

import (
	"testing"
	"time"

	"github.com/julianstephens/habitlit/internal/models"
)

var today = time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

type memStore struct {
	habits      []models.Habit
	days        map[int64][]time.Time
	completions []models.Completion
	goals       []models.Goal
	unlocked    map[string]time.Time
}

func newMemStore() *memStore {
	return &memStore{days: map[int64][]time.Time{}, unlocked: map[string]time.Time{}}
}

// addHabit creates an active habit completed on each of the given offsets from today.
func (m *memStore) addHabit(id int64, createdDaysAgo int, doneDaysAgo ...int) {
	m.habits = append(m.habits, models.Habit{ID: id, CreatedAt: today.AddDate(0, 0, -createdDaysAgo), Active: true})
	for _, d := range doneDaysAgo {
		m.days[id] = append(m.days[id], today.AddDate(0, 0, -d))
	}
}

func run(from, to int) []int {
	var out []int
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func (m *memStore) GetAllHabits(includeInactive bool) ([]models.Habit, error) {
	var out []models.Habit
	for _, h := range m.habits {
		if h.Active || includeInactive {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *memStore) GetCompletionDays(habitID int64) ([]time.Time, error) {
	return m.days[habitID], nil
}

func (m *memStore) GetAllCompletions() ([]models.Completion, error) {
	return m.completions, nil
}

func (m *memStore) GetGoals(habitID int64) ([]models.Goal, error) {
	return m.goals, nil
}

func (m *memStore) GetUnlockedAchievements() (map[string]time.Time, error) {
	return m.unlocked, nil
}

func (m *memStore) UnlockAchievement(key string, at time.Time) (bool, error) {
	if _, ok := m.unlocked[key]; ok {
		return false, nil
	}
	m.unlocked[key] = at
	return true, nil
}

func keys(defs []models.AchievementDef) map[string]bool {
	out := make(map[string]bool, len(defs))
	for _, d := range defs {
		out[d.Key] = true
	}
	return out
}

func TestCheck_StreakAndCompletions(t *testing.T) {
	store := newMemStore()
	store.addHabit(1, 40, run(0, 11)...)
	store.addHabit(2, 40, 30, 35)

	e := New(store, time.UTC)
	got, err := e.Check(today)
	if err != nil {
		t.Fatalf("Check() failed: %v", err)
	}

	k := keys(got)
	for _, want := range []string{"streak_7", "complete_10"} {
		if !k[want] {
			t.Errorf("expected %s to unlock, got %v", want, k)
		}
	}
	for _, not := range []string{"streak_30", "complete_50", "perfect_week", "habit_creator"} {
		if k[not] {
			t.Errorf("%s should not unlock", not)
		}
	}

	again, err := e.Check(today)
	if err != nil {
		t.Fatalf("second Check() failed: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second Check() unlocked %v, want none", keys(again))
	}
}

func TestCheck_PerfectWeek(t *testing.T) {
	store := newMemStore()
	store.addHabit(1, 20, run(0, 8)...)
	// created 3 days ago, so earlier days only need habit 1
	store.addHabit(2, 3, run(0, 3)...)

	got, err := New(store, time.UTC).Check(today)
	if err != nil {
		t.Fatalf("Check() failed: %v", err)
	}
	if !keys(got)["perfect_week"] {
		t.Errorf("expected perfect_week, got %v", keys(got))
	}
}

func TestCheck_PerfectWeekBrokenBySecondHabit(t *testing.T) {
	store := newMemStore()
	store.addHabit(1, 20, run(0, 8)...)
	store.addHabit(2, 20, 0, 1, 2, 4, 5, 6, 7, 8)

	got, err := New(store, time.UTC).Check(today)
	if err != nil {
		t.Fatalf("Check() failed: %v", err)
	}
	if keys(got)["perfect_week"] {
		t.Error("perfect_week should not unlock when a day was missed")
	}
}

func TestCheck_TimeOfDayAndGoals(t *testing.T) {
	store := newMemStore()
	store.addHabit(1, 5)
	store.completions = []models.Completion{
		{HabitID: 1, Day: today, CreatedAt: time.Date(2024, 6, 30, 5, 10, 0, 0, time.UTC)},
		{HabitID: 1, Day: today, CreatedAt: time.Date(2024, 6, 29, 22, 30, 0, 0, time.UTC)},
	}
	done := today
	store.goals = []models.Goal{
		{ID: "a", HabitID: 1, Type: models.GoalTotal, Target: 1, CompletedAt: &done},
		{ID: "b", HabitID: 1, Type: models.GoalStreak, Target: 7},
	}
	for i := int64(2); i <= 5; i++ {
		store.addHabit(i, 1)
	}

	got, err := New(store, time.UTC).Check(today)
	if err != nil {
		t.Fatalf("Check() failed: %v", err)
	}
	k := keys(got)
	for _, want := range []string{"early_bird", "night_owl", "goal_setter", "goal_achiever", "habit_creator"} {
		if !k[want] {
			t.Errorf("expected %s to unlock, got %v", want, k)
		}
	}
}

func TestCheck_TimeOfDayUsesLocation(t *testing.T) {
	store := newMemStore()
	store.addHabit(1, 5)
	// 03:00 UTC is 23:00 the previous evening in New York
	store.completions = []models.Completion{
		{HabitID: 1, Day: today, CreatedAt: time.Date(2024, 6, 30, 3, 0, 0, 0, time.UTC)},
	}
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	got, err := New(store, loc).Check(today)
	if err != nil {
		t.Fatalf("Check() failed: %v", err)
	}
	k := keys(got)
	if !k["night_owl"] || k["early_bird"] {
		t.Errorf("unlocked %v, want night_owl only", k)
	}
}

func TestListOrderAndStats(t *testing.T) {
	store := newMemStore()
	store.unlocked["streak_7"] = today
	store.unlocked["streak_30"] = today
	store.unlocked["retired_key"] = today

	e := New(store, time.UTC)
	list, err := e.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(list) != len(models.AchievementDefs) {
		t.Fatalf("List() returned %d entries, want %d", len(list), len(models.AchievementDefs))
	}
	if list[0].Rarity != models.RarityLegendary {
		t.Errorf("first entry rarity = %s, want legendary", list[0].Rarity)
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Rarity.Rank() > list[i].Rarity.Rank() {
			t.Fatalf("List() not ordered by rarity at %d", i)
		}
	}

	var firstCommon models.Achievement
	for _, a := range list {
		if a.Rarity == models.RarityCommon {
			firstCommon = a
			break
		}
	}
	if firstCommon.Key != "streak_7" || !firstCommon.Unlocked() {
		t.Errorf("first common achievement = %s, want unlocked streak_7", firstCommon.Key)
	}

	stats, err := e.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Unlocked != 2 || stats.Total != len(models.AchievementDefs) {
		t.Errorf("Stats() = %+v", stats)
	}
	if stats.Percentage != 13 {
		t.Errorf("Percentage = %v, want 13", stats.Percentage)
	}
}
