package trash

import (
	"fmt"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/utils"
)

type TrashCmd struct {
	List    TrashListCmd    `cmd:"" help:"List purged habits kept in the trash."`
	Restore TrashRestoreCmd `cmd:"" help:"Recreate a purged habit with its history."`
	Remove  TrashRemoveCmd  `cmd:"" help:"Permanently remove one trash item."`
	Empty   TrashEmptyCmd   `cmd:"" help:"Permanently remove every trash item."`
}

type TrashListCmd struct{}

func (c *TrashListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	items, err := ctx.Store.GetTrash()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("Trash is empty.")
		return nil
	}

	for _, item := range items {
		fmt.Printf("%s  %-20s %4d completion(s)  deleted %s\n",
			item.ID, item.Habit.Name, len(item.Days), item.DeletedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

type TrashRestoreCmd struct {
	ID string `arg:"" help:"Trash item ID."`
}

func (c *TrashRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Store.RestoreFromTrash(c.ID)
	if err != nil {
		return fmt.Errorf("failed to restore %s: %w", c.ID, err)
	}

	days, err := ctx.Store.GetCompletionDays(habit.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Restored habit: %s (id %d, %d completion(s), created %s)\n",
		habit.Name, habit.ID, len(days), utils.FormatDate(habit.CreatedAt))
	return nil
}

type TrashRemoveCmd struct {
	ID string `arg:"" help:"Trash item ID."`
}

func (c *TrashRemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := ctx.Store.DeleteFromTrash(c.ID); err != nil {
		return fmt.Errorf("failed to remove %s: %w", c.ID, err)
	}
	fmt.Printf("Removed %s from the trash.\n", c.ID)
	return nil
}

type TrashEmptyCmd struct{}

func (c *TrashEmptyCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	n, err := ctx.Store.EmptyTrash()
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d item(s) from the trash.\n", n)
	return nil
}
