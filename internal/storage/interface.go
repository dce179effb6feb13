package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/habitlit/internal/models"
)

var (
	// ErrNotFound is returned by every lookup that matches no row.
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized is returned by Load when the database was never created.
	ErrNotInitialized = errors.New("storage not initialized")
)

// CompletionStore is the read-only view of habits and completions that the
// streak and statistics engines consume.
type CompletionStore interface {
	GetHabit(id int64) (models.Habit, error)
	HabitExists(id int64) (bool, error)
	GetCompletionDays(habitID int64) ([]time.Time, error)
	HasCompletion(habitID int64, day time.Time) (bool, error)
}

type Provider interface {
	CompletionStore

	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habits
	// AddHabit inserts a habit and returns its assigned ID. A zero CreatedAt
	// means today; an empty Category means the default category.
	AddHabit(models.Habit) (int64, error)
	GetHabitByName(name string) (models.Habit, error)
	GetAllHabits(includeInactive bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	// DeactivateHabit soft-deletes a habit; its completions are kept.
	DeactivateHabit(id int64) error
	ReactivateHabit(id int64) error
	// PurgeHabit removes a habit and its completions. With archive set, a
	// snapshot is written to the trash first and its trash ID returned.
	PurgeHabit(id int64, archive bool) (string, error)

	// Completions
	// MarkCompletion records a completion; it reports false if one already existed.
	MarkCompletion(habitID int64, day time.Time, note string) (bool, error)
	// UnmarkCompletion deletes a completion; it reports false if there was none.
	UnmarkCompletion(habitID int64, day time.Time) (bool, error)
	GetCompletion(habitID int64, day time.Time) (models.Completion, error)
	GetCompletionsForHabit(habitID int64, start, end time.Time) ([]models.Completion, error)
	GetCompletionsForDay(day time.Time) ([]models.Completion, error)
	GetAllCompletions() ([]models.Completion, error)
	SetCompletionNote(habitID int64, day time.Time, note string) error

	// Goals
	AddGoal(models.Goal) error
	GetGoal(id string) (models.Goal, error)
	// GetGoals lists goals for one habit, or all goals when habitID is 0.
	GetGoals(habitID int64) ([]models.Goal, error)
	UpdateGoal(models.Goal) error
	DeleteGoal(id string) error

	// Achievements
	GetUnlockedAchievements() (map[string]time.Time, error)
	// UnlockAchievement records an unlock; it reports false if already unlocked.
	UnlockAchievement(key string, at time.Time) (bool, error)

	// Trash
	GetTrash() ([]models.DeletedHabit, error)
	GetTrashItem(id string) (models.DeletedHabit, error)
	// RestoreFromTrash recreates the habit and its completions. The original
	// ID is reused when free.
	RestoreFromTrash(id string) (models.Habit, error)
	DeleteFromTrash(id string) error
	EmptyTrash() (int, error)

	// Utils
	GetConfigPath() string
}
