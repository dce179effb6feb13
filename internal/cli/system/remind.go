package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/reminder"
)

type RemindCmd struct {
	Once bool `help:"Send today's reminder immediately and exit."`
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	sender := reminder.LogSender{Printf: func(format string, args ...interface{}) {
		fmt.Printf(format, args...)
	}}
	scheduler := ctx.Reminders(sender)

	if c.Once {
		today, err := ctx.Today()
		if err != nil {
			return err
		}
		msg, err := scheduler.Daily(today)
		if err != nil {
			return err
		}
		return sender.Send(msg)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.NotificationsEnabled {
		fmt.Println("Notifications are disabled in settings; the reminder will not fire until they are enabled.")
	}
	fmt.Printf("Waiting for the daily reminder at %s (%s). Press Ctrl+C to stop.\n", settings.ReminderTime, settings.Timezone)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return scheduler.Run(runCtx)
}
