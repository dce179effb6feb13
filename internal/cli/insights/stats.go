package insights

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/utils"
)

type StatsCmd struct {
	Show    StatsShowCmd    `cmd:"" help:"Show statistics for one habit."`
	Streak  StatsStreakCmd  `cmd:"" help:"Show current and longest streak."`
	Week    StatsWeekCmd    `cmd:"" help:"Show this week's completions."`
	Summary StatsSummaryCmd `cmd:"" help:"Show statistics for all active habits."`
}

type StatsShowCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *StatsShowCmd) Run(ctx *cli.Context) error {
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

	s, err := ctx.Stats().HabitStats(habit.ID, today)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", s.Name)
	if s.Description != "" {
		fmt.Printf("  %s\n", s.Description)
	}
	fmt.Printf("  Category:          %s\n", s.Category)
	fmt.Printf("  Created:           %s\n", utils.FormatDate(s.CreatedAt))
	fmt.Printf("  Current Streak:    %d\n", s.CurrentStreak)
	fmt.Printf("  Longest Streak:    %d\n", s.LongestStreak)
	fmt.Printf("  Total Completions: %d\n", s.TotalCompletions)
	fmt.Printf("  7-Day Rate:        %.1f%%\n", s.Rate7Day)
	fmt.Printf("  30-Day Rate:       %.1f%%\n", s.Rate30Day)
	fmt.Printf("  Completed Today:   %s\n", yesNo(s.CompletedToday))
	return nil
}

type StatsStreakCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *StatsStreakCmd) Run(ctx *cli.Context) error {
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

	streaks := ctx.Streaks()
	info, err := streaks.Info(habit.ID, today)
	if err != nil {
		return err
	}
	fmt.Printf("%s: current %d, longest %d, total %d\n", habit.Name, info.CurrentStreak, info.LongestStreak, info.TotalCompletions)

	atRisk, err := streaks.AtRisk(habit.ID, today)
	if err != nil {
		return err
	}
	if atRisk {
		fmt.Printf("⚠ Complete %q today to keep your %d day streak.\n", habit.Name, info.CurrentStreak)
	}
	return nil
}

type StatsWeekCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *StatsWeekCmd) Run(ctx *cli.Context) error {
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

	week, err := ctx.Stats().WeeklyBreakdown(habit.ID, today)
	if err != nil {
		return err
	}

	fmt.Printf("%s, week of %s:\n", habit.Name, utils.FormatDate(utils.StartOfWeek(today)))
	for _, d := range week {
		mark := "."
		if d.Completed {
			mark = "x"
		}
		fmt.Printf("  %-3s %s\n", d.Weekday.String()[:3], mark)
	}
	fmt.Printf("\nCompleted: %d/%d\n", week.CompletedDays(), len(week))
	return nil
}

type StatsSummaryCmd struct{}

func (c *StatsSummaryCmd) Run(ctx *cli.Context) error {
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
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	summary, err := ctx.Stats().AllHabitsSummary(habits, today)
	if err != nil {
		return err
	}

	fmt.Printf("%-24s %7s %7s %6s %6s %6s %5s\n", "Habit", "Current", "Longest", "Total", "7d%", "30d%", "Today")
	fmt.Println(strings.Repeat("-", 67))
	completed := 0
	for _, s := range summary {
		if s.CompletedToday {
			completed++
		}
		fmt.Printf("%-24s %7d %7d %6d %6.1f %6.1f %5s\n",
			truncate(s.Name, 24), s.CurrentStreak, s.LongestStreak, s.TotalCompletions,
			s.Rate7Day, s.Rate30Day, yesNo(s.CompletedToday))
	}
	fmt.Printf("\nCompleted today: %d/%d\n", completed, len(summary))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
