package models

import "time"

// Rarity ranks how hard an achievement is to unlock
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Rank orders rarities from legendary (0) to common (3).
func (r Rarity) Rank() int {
	switch r {
	case RarityLegendary:
		return 0
	case RarityEpic:
		return 1
	case RarityRare:
		return 2
	default:
		return 3
	}
}

// AchievementKind is the metric an achievement threshold applies to
type AchievementKind string

const (
	KindStreak       AchievementKind = "streak"
	KindCompletions  AchievementKind = "completions"
	KindPerfectDays  AchievementKind = "perfect_days"
	KindEarlyBird    AchievementKind = "early_bird"
	KindNightOwl     AchievementKind = "night_owl"
	KindHabitCount   AchievementKind = "habit_count"
	KindGoalsCreated AchievementKind = "goals_created"
	KindGoalsReached AchievementKind = "goals_reached"
)

// AchievementDef is a static achievement definition
type AchievementDef struct {
	Key         string          `json:"key"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Kind        AchievementKind `json:"kind"`
	Threshold   int             `json:"threshold"`
	Rarity      Rarity          `json:"rarity"`
}

// Achievement is a definition plus its unlock state
type Achievement struct {
	AchievementDef
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// Unlocked reports whether the achievement has been earned.
func (a Achievement) Unlocked() bool {
	return a.UnlockedAt != nil
}

// AchievementStats summarises unlock progress
type AchievementStats struct {
	Unlocked   int     `json:"unlocked"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// AchievementDefs lists every achievement the application knows about.
var AchievementDefs = []AchievementDef{
	{Key: "streak_7", Name: "Week Warrior", Description: "Maintain a 7-day streak", Icon: "🔥", Kind: KindStreak, Threshold: 7, Rarity: RarityCommon},
	{Key: "streak_30", Name: "Monthly Master", Description: "Maintain a 30-day streak", Icon: "⭐", Kind: KindStreak, Threshold: 30, Rarity: RarityRare},
	{Key: "streak_100", Name: "Century Champion", Description: "Maintain a 100-day streak", Icon: "💎", Kind: KindStreak, Threshold: 100, Rarity: RarityEpic},
	{Key: "streak_365", Name: "Year Legend", Description: "Maintain a 365-day streak", Icon: "👑", Kind: KindStreak, Threshold: 365, Rarity: RarityLegendary},
	{Key: "complete_10", Name: "Getting Started", Description: "Complete a habit 10 times", Icon: "🌱", Kind: KindCompletions, Threshold: 10, Rarity: RarityCommon},
	{Key: "complete_50", Name: "Dedicated", Description: "Complete a habit 50 times", Icon: "💪", Kind: KindCompletions, Threshold: 50, Rarity: RarityCommon},
	{Key: "complete_100", Name: "Centurion", Description: "Complete a habit 100 times", Icon: "🏆", Kind: KindCompletions, Threshold: 100, Rarity: RarityRare},
	{Key: "complete_500", Name: "Unstoppable", Description: "Complete a habit 500 times", Icon: "🚀", Kind: KindCompletions, Threshold: 500, Rarity: RarityEpic},
	{Key: "perfect_week", Name: "Perfect Week", Description: "Complete all habits for 7 days straight", Icon: "✨", Kind: KindPerfectDays, Threshold: 7, Rarity: RarityRare},
	{Key: "perfect_month", Name: "Flawless Month", Description: "Complete all habits for 30 days straight", Icon: "🌟", Kind: KindPerfectDays, Threshold: 30, Rarity: RarityEpic},
	{Key: "early_bird", Name: "Early Bird", Description: "Complete a habit before 6 AM", Icon: "🌅", Kind: KindEarlyBird, Threshold: 1, Rarity: RarityCommon},
	{Key: "night_owl", Name: "Night Owl", Description: "Complete a habit after 10 PM", Icon: "🦉", Kind: KindNightOwl, Threshold: 1, Rarity: RarityCommon},
	{Key: "habit_creator", Name: "Habit Builder", Description: "Create 5 different habits", Icon: "🏗️", Kind: KindHabitCount, Threshold: 5, Rarity: RarityCommon},
	{Key: "goal_setter", Name: "Goal Setter", Description: "Create your first goal", Icon: "🎯", Kind: KindGoalsCreated, Threshold: 1, Rarity: RarityCommon},
	{Key: "goal_achiever", Name: "Goal Achiever", Description: "Complete your first goal", Icon: "🏅", Kind: KindGoalsReached, Threshold: 1, Rarity: RarityRare},
}
