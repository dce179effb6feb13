package insights

import (
	"fmt"

	"github.com/julianstephens/habitlit/internal/cli"
)

type AchievementCmd struct {
	List  AchievementListCmd  `cmd:"" help:"List achievements and their unlock state."`
	Check AchievementCheckCmd `cmd:"" help:"Evaluate progress and unlock earned achievements."`
}

type AchievementListCmd struct {
	Unlocked bool `help:"Only show unlocked achievements."`
}

func (c *AchievementListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	evaluator, err := ctx.Achievements()
	if err != nil {
		return err
	}
	list, err := evaluator.List()
	if err != nil {
		return err
	}
	stats, err := evaluator.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("Achievements: %d/%d unlocked (%.0f%%)\n\n", stats.Unlocked, stats.Total, stats.Percentage)
	for _, a := range list {
		if c.Unlocked && !a.Unlocked() {
			continue
		}
		status := "[ ]"
		when := ""
		if a.Unlocked() {
			status = "[x]"
			when = " - " + a.UnlockedAt.Format("2006-01-02")
		}
		fmt.Printf("%s %s %s (%s): %s%s\n", status, a.Icon, a.Name, a.Rarity, a.Description, when)
	}
	return nil
}

type AchievementCheckCmd struct{}

func (c *AchievementCheckCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	today, err := ctx.Today()
	if err != nil {
		return err
	}
	evaluator, err := ctx.Achievements()
	if err != nil {
		return err
	}
	unlocked, err := evaluator.Check(today)
	if err != nil {
		return err
	}

	if len(unlocked) == 0 {
		fmt.Println("No new achievements.")
		return nil
	}
	for _, def := range unlocked {
		fmt.Printf("%s Achievement unlocked: %s (%s)\n", def.Icon, def.Name, def.Description)
	}
	return nil
}
