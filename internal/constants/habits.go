package constants

const (
	DefaultCategory = "General"

	// Completion-rate windows shown in habit stats
	ShortRateWindowDays = 7
	LongRateWindowDays  = 30

	// Hour boundaries for the time-of-day achievements
	EarlyBirdBeforeHour = 6
	NightOwlAfterHour   = 22

	// HabitCreatorThreshold is the habit count that unlocks habit_creator
	HabitCreatorThreshold = 5
)

// Categories lists the suggested habit categories, DefaultCategory first.
var Categories = []string{
	DefaultCategory,
	"Health",
	"Fitness",
	"Learning",
	"Work",
	"Finance",
	"Social",
	"Mindfulness",
	"Creativity",
	"Home",
}

// StreakMilestones are the current-streak values that trigger a celebration message.
var StreakMilestones = []int{7, 14, 30, 60, 90, 100, 365}
