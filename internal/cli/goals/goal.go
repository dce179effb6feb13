package goals

import (
	"fmt"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/utils"
)

type GoalCmd struct {
	Add     GoalAddCmd     `cmd:"" help:"Set a goal for a habit."`
	List    GoalListCmd    `cmd:"" help:"List goals and their progress."`
	Refresh GoalRefreshCmd `cmd:"" help:"Recompute progress of open goals."`
	Delete  GoalDeleteCmd  `cmd:"" help:"Delete a goal."`
}

type GoalAddCmd struct {
	Habit  string `arg:"" help:"Habit name or ID."`
	Type   string `arg:"" help:"Goal type: streak, total or consistency." enum:"streak,total,consistency"`
	Target int    `arg:"" help:"Target value (days, completions or percent)."`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	goalType, err := models.ParseGoalType(c.Type)
	if err != nil {
		return err
	}
	if goalType == models.GoalConsistency && c.Target > 100 {
		return fmt.Errorf("consistency target is a percentage, got %d", c.Target)
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	goal, err := ctx.Goals().Create(habit.ID, goalType, c.Target, today)
	if err != nil {
		return err
	}

	fmt.Printf("Added %s goal for %q: %d/%d (id %s)\n", goal.Type, habit.Name, goal.Current, goal.Target, goal.ID)
	if goal.Completed() {
		fmt.Println("🎯 Goal already reached!")
	}
	return nil
}

type GoalListCmd struct {
	Habit string `help:"Only show goals for this habit (name or ID)."`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var habitID int64
	if c.Habit != "" {
		habit, err := ctx.ResolveHabit(c.Habit)
		if err != nil {
			return err
		}
		habitID = habit.ID
	}

	goals, err := ctx.Store.GetGoals(habitID)
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		fmt.Println("No goals found.")
		return nil
	}

	names := make(map[int64]string)
	for _, g := range goals {
		if _, ok := names[g.HabitID]; ok {
			continue
		}
		habit, err := ctx.Store.GetHabit(g.HabitID)
		if err != nil {
			return err
		}
		names[g.HabitID] = habit.Name
	}

	for _, g := range goals {
		status := "[ ]"
		if g.Completed() {
			status = "[x]"
		}
		fmt.Printf("%s %-20s %-11s %4d/%-4d %5.1f%%  %s\n",
			status, names[g.HabitID], g.Type, g.Current, g.Target, g.Progress(), g.ID)
		if g.Completed() {
			fmt.Printf("    reached %s\n", utils.FormatDate(*g.CompletedAt))
		}
	}

	open, completed, err := ctx.Goals().Counts()
	if err != nil {
		return err
	}
	fmt.Printf("\nOpen: %d  Completed: %d\n", open, completed)
	return nil
}

type GoalRefreshCmd struct{}

func (c *GoalRefreshCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	today, err := ctx.Today()
	if err != nil {
		return err
	}
	reached, err := ctx.Goals().RefreshAll(today)
	if err != nil {
		return err
	}

	if len(reached) == 0 {
		fmt.Println("Goals refreshed. No new goals reached.")
		return nil
	}
	for _, g := range reached {
		fmt.Printf("🎯 Goal reached: %s %d (id %s)\n", g.Type, g.Target, g.ID)
	}
	return nil
}

type GoalDeleteCmd struct {
	ID string `arg:"" help:"Goal ID."`
}

func (c *GoalDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := ctx.Goals().Delete(c.ID); err != nil {
		return fmt.Errorf("failed to delete goal %s: %w", c.ID, err)
	}
	fmt.Printf("Deleted goal: %s\n", c.ID)
	return nil
}
