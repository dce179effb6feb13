package habits

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/storage"
	"github.com/julianstephens/habitlit/internal/utils"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	Edit    HabitEditCmd    `cmd:"" help:"Edit a habit."`
	List    HabitListCmd    `cmd:"" help:"List habits."`
	Mark    HabitMarkCmd    `cmd:"" help:"Mark a habit as done for a day."`
	Unmark  HabitUnmarkCmd  `cmd:"" help:"Remove a completion."`
	Note    HabitNoteCmd    `cmd:"" help:"Set the note on a completion."`
	Today   HabitTodayCmd   `cmd:"" help:"Show today's habit status."`
	Log     HabitLogCmd     `cmd:"" help:"Show habit log (ASCII history)."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit (soft delete)."`
	Restore HabitRestoreCmd `cmd:"" help:"Restore a deleted habit."`
	Purge   HabitPurgeCmd   `cmd:"" help:"Permanently delete a habit and its history."`
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `help:"Habit description." default:""`
	Category    string `help:"Habit category." default:"General"`
	Frequency   string `help:"How often the habit is due." enum:"daily,weekly" default:"daily"`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("habit name cannot be empty")
	}

	// Check if habit with same name already exists
	if _, err := ctx.Store.GetHabitByName(name); err == nil {
		return fmt.Errorf("habit with name %q already exists", name)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	freq, err := models.ParseFrequency(c.Frequency)
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	id, err := ctx.Store.AddHabit(models.Habit{
		Name:        name,
		Description: c.Description,
		Category:    c.Category,
		Frequency:   freq,
		CreatedAt:   today,
		Active:      true,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (id %d)\n", name, id)
	return nil
}

type HabitEditCmd struct {
	Habit       string  `arg:"" help:"Habit name or ID."`
	Name        *string `help:"New name."`
	Description *string `help:"New description."`
	Category    *string `help:"New category."`
	Frequency   *string `help:"New frequency (daily or weekly)."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	updated := false
	if c.Name != nil {
		name := strings.TrimSpace(*c.Name)
		if name == "" {
			return fmt.Errorf("habit name cannot be empty")
		}
		if name != habit.Name {
			if _, err := ctx.Store.GetHabitByName(name); err == nil {
				return fmt.Errorf("habit with name %q already exists", name)
			}
			habit.Name = name
			updated = true
		}
	}
	if c.Description != nil {
		habit.Description = *c.Description
		updated = true
	}
	if c.Category != nil {
		habit.Category = *c.Category
		updated = true
	}
	if c.Frequency != nil {
		freq, err := models.ParseFrequency(*c.Frequency)
		if err != nil {
			return err
		}
		habit.Frequency = freq
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified.")
		return nil
	}
	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}
	fmt.Printf("Updated habit: %s\n", habit.Name)
	return nil
}

type HabitListCmd struct {
	All      bool   `help:"Include deleted habits."`
	Category string `help:"Only show habits in this category."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(c.All)
	if err != nil {
		return err
	}

	shown := 0
	for _, habit := range habits {
		if c.Category != "" && !strings.EqualFold(habit.Category, c.Category) {
			continue
		}
		status := ""
		if !habit.Active {
			status = " [DELETED]"
		}
		fmt.Printf("%4d  %s (%s, %s)%s\n", habit.ID, habit.Name, habit.Category, habit.Frequency, status)
		shown++
	}

	if shown == 0 {
		fmt.Println("No habits found.")
	}
	return nil
}

type HabitMarkCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Date  string `help:"Date in YYYY-MM-DD format, 'today' or 'yesterday' (default: today)." default:""`
	Note  string `help:"Optional note for this entry." default:""`
}

func (c *HabitMarkCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	if !habit.Active {
		return fmt.Errorf("habit %q is deleted, restore it first", habit.Name)
	}

	today, err := ctx.Today()
	if err != nil {
		return err
	}
	day, err := cli.ParseDay(c.Date, today)
	if err != nil {
		return err
	}
	if day.After(today) {
		return fmt.Errorf("cannot mark %s: date is in the future", utils.FormatDate(day))
	}

	created, err := ctx.Store.MarkCompletion(habit.ID, day, c.Note)
	if err != nil {
		return err
	}
	if !created {
		fmt.Printf("Habit %q is already marked for %s\n", habit.Name, utils.FormatDate(day))
		return nil
	}

	fmt.Printf("Marked habit %q for %s\n", habit.Name, utils.FormatDate(day))
	ctx.Celebrate(habit, today)
	return nil
}

type HabitUnmarkCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Date  string `help:"Date in YYYY-MM-DD format, 'today' or 'yesterday' (default: today)." default:""`
}

func (c *HabitUnmarkCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	day, err := cli.ParseDay(c.Date, today)
	if err != nil {
		return err
	}

	removed, err := ctx.Store.UnmarkCompletion(habit.ID, day)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Printf("Habit %q was not marked for %s\n", habit.Name, utils.FormatDate(day))
		return nil
	}
	fmt.Printf("Unmarked habit %q for %s\n", habit.Name, utils.FormatDate(day))
	return nil
}

type HabitNoteCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Note  string `arg:"" help:"Note text (empty string clears it)."`
	Date  string `help:"Date in YYYY-MM-DD format, 'today' or 'yesterday' (default: today)." default:""`
}

func (c *HabitNoteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	day, err := cli.ParseDay(c.Date, today)
	if err != nil {
		return err
	}

	if err := ctx.Store.SetCompletionNote(habit.ID, day, c.Note); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("habit %q is not marked for %s", habit.Name, utils.FormatDate(day))
		}
		return err
	}
	fmt.Printf("Saved note for %q on %s\n", habit.Name, utils.FormatDate(day))
	return nil
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(false)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	entries, err := ctx.Store.GetCompletionsForDay(today)
	if err != nil {
		return err
	}

	done := make(map[int64]models.Completion, len(entries))
	for _, entry := range entries {
		done[entry.HabitID] = entry
	}

	streaks := ctx.Streaks()
	fmt.Printf("Habits for %s:\n\n", utils.FormatDate(today))
	recorded := 0
	for _, habit := range habits {
		entry, ok := done[habit.ID]
		if ok {
			recorded++
			if !settings.ShowCompleted {
				continue
			}
		}

		status := "[ ]"
		if ok {
			status = "[x]"
		}
		line := fmt.Sprintf("%s %s", status, habit.Name)
		if current, err := streaks.Current(habit.ID, today); err == nil && current > 0 {
			line += fmt.Sprintf("  🔥 %d", current)
		}
		if ok && entry.Note != "" {
			line += fmt.Sprintf("  (%s)", entry.Note)
		}
		fmt.Println(line)
	}

	fmt.Printf("\nRecorded: %d/%d\n", recorded, len(habits))
	return nil
}

type HabitLogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for specific habit only (name or ID)."`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if c.Days <= 0 {
		return fmt.Errorf("days must be positive, got %d", c.Days)
	}

	var selected []models.Habit
	if c.Habit != "" {
		habit, err := ctx.ResolveHabit(c.Habit)
		if err != nil {
			return err
		}
		selected = []models.Habit{habit}
	} else {
		habits, err := ctx.Store.GetAllHabits(false)
		if err != nil {
			return err
		}
		selected = habits
	}
	if len(selected) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	endDay, err := ctx.Today()
	if err != nil {
		return err
	}
	startDay := utils.AddDays(endDay, -(c.Days - 1))

	fmt.Printf("Habit log (last %d days):\n\n", c.Days)

	const maxNameLen = 20
	fmt.Print(strings.Repeat(" ", maxNameLen))
	for i := 0; i < c.Days; i++ {
		fmt.Printf(" %5s", utils.AddDays(startDay, i).Format("01/02"))
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", maxNameLen+6*c.Days))

	for _, habit := range selected {
		fmt.Print(padName(habit.Name, maxNameLen))

		entries, err := ctx.Store.GetCompletionsForHabit(habit.ID, startDay, endDay)
		if err != nil {
			return err
		}
		marked := make(map[string]bool, len(entries))
		for _, entry := range entries {
			marked[utils.FormatDate(entry.Day)] = true
		}

		for i := 0; i < c.Days; i++ {
			if marked[utils.FormatDate(utils.AddDays(startDay, i))] {
				fmt.Print("  x   ")
			} else {
				fmt.Print("  .   ")
			}
		}
		fmt.Println()
	}

	return nil
}

// padName truncates or pads a habit name to width runes.
func padName(name string, width int) string {
	r := []rune(name)
	if len(r) > width {
		return string(r[:width-3]) + "..."
	}
	return name + strings.Repeat(" ", width-len(r))
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or ID to delete."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	if !habit.Active {
		return fmt.Errorf("habit %q is already deleted", habit.Name)
	}

	if err := ctx.Store.DeactivateHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", habit.Name)
	fmt.Printf("(This is a soft delete. Use '%s habit restore' to undo)\n", constants.AppName)
	return nil
}

type HabitRestoreCmd struct {
	Habit string `arg:"" help:"Habit name or ID to restore."`
}

func (c *HabitRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	if habit.Active {
		return fmt.Errorf("deleted habit %q not found", c.Habit)
	}

	if err := ctx.Store.ReactivateHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Restored habit: %s\n", habit.Name)
	return nil
}

type HabitPurgeCmd struct {
	Habit     string `arg:"" help:"Habit name or ID to purge."`
	NoArchive bool   `help:"Do not keep a copy in the trash."`
}

func (c *HabitPurgeCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	trashID, err := ctx.Store.PurgeHabit(habit.ID, !c.NoArchive)
	if err != nil {
		return err
	}

	fmt.Printf("Purged habit: %s\n", habit.Name)
	if trashID != "" {
		fmt.Printf("A copy was moved to the trash (id %s). Use '%s trash restore' to undo.\n", trashID, constants.AppName)
	}
	return nil
}
