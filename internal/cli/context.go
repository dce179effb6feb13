package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/habitlit/internal/achievements"
	"github.com/julianstephens/habitlit/internal/backup"
	"github.com/julianstephens/habitlit/internal/goals"
	"github.com/julianstephens/habitlit/internal/logger"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/reminder"
	"github.com/julianstephens/habitlit/internal/stats"
	"github.com/julianstephens/habitlit/internal/storage"
	"github.com/julianstephens/habitlit/internal/streak"
	"github.com/julianstephens/habitlit/internal/utils"
)

type Context struct {
	Store storage.Provider
	// DBPath is the SQLite file in use; empty when running against PostgreSQL.
	DBPath string
	// Clock overrides time.Now, mostly for tests.
	Clock func() time.Time
}

// Now returns the current wall-clock time.
func (c *Context) Now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

// Location returns the timezone configured in settings.
func (c *Context) Location() (*time.Location, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q in settings: %w", settings.Timezone, err)
	}
	return loc, nil
}

// Today returns the current calendar day in the configured timezone.
func (c *Context) Today() (time.Time, error) {
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, err
	}
	return utils.DateOf(c.Now().In(loc)), nil
}

// ParseDay resolves a day argument: empty or "today", "yesterday", or YYYY-MM-DD.
func ParseDay(value string, today time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return utils.AddDays(today, -1), nil
	default:
		return utils.ParseDate(value)
	}
}

// ResolveHabit looks a habit up by numeric ID, falling back to its name.
func (c *Context) ResolveHabit(ref string) (models.Habit, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		habit, err := c.Store.GetHabit(id)
		if err == nil {
			return habit, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return models.Habit{}, err
		}
	}

	habit, err := c.Store.GetHabitByName(ref)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Habit{}, fmt.Errorf("habit %q not found", ref)
		}
		return models.Habit{}, err
	}
	return habit, nil
}

func (c *Context) Streaks() *streak.Calculator {
	return streak.New(c.Store)
}

func (c *Context) Stats() *stats.Engine {
	return stats.New(c.Store, c.Streaks())
}

func (c *Context) Goals() *goals.Tracker {
	return goals.New(c.Store, c.Stats())
}

func (c *Context) Achievements() (*achievements.Evaluator, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	return achievements.New(c.Store, loc), nil
}

func (c *Context) Reminders(sender reminder.Sender) *reminder.Scheduler {
	return reminder.New(c.Store, sender)
}

// BackupManager returns the backup manager for the SQLite database in use.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if c.DBPath == "" {
		return nil, fmt.Errorf("backups are only supported for SQLite storage")
	}
	return backup.NewManager(c.DBPath), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if c.DBPath == "" {
		return
	}
	if _, err := backup.NewManager(c.DBPath).Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Celebrate reports streak milestones, goals reached and achievements
// unlocked after a completion was recorded. Failures are logged only.
func (c *Context) Celebrate(habit models.Habit, today time.Time) {
	current, err := c.Streaks().Current(habit.ID, today)
	if err != nil {
		logger.Warn("streak lookup failed", "habit", habit.ID, "error", err)
	} else if msg, ok := reminder.Milestone(habit.Name, current); ok {
		fmt.Printf("🔥 %s %s\n", msg.Title, msg.Body)
	}

	reached, err := c.Goals().RefreshAll(today)
	if err != nil {
		logger.Warn("goal refresh failed", "error", err)
	}
	for _, g := range reached {
		fmt.Printf("🎯 Goal reached: %s %d\n", g.Type, g.Target)
	}

	evaluator, err := c.Achievements()
	if err != nil {
		logger.Warn("achievement check skipped", "error", err)
		return
	}
	unlocked, err := evaluator.Check(today)
	if err != nil {
		logger.Warn("achievement check failed", "error", err)
	}
	for _, def := range unlocked {
		fmt.Printf("%s Achievement unlocked: %s\n", def.Icon, def.Name)
	}
}
