package settings

import (
	"fmt"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/utils"
)

type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" help:"List current settings."`
	Set  SettingsSetCmd  `cmd:"" help:"Update settings."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	fmt.Println("Current Settings:")
	fmt.Printf("  Timezone:              %s\n", settings.Timezone)
	fmt.Printf("  Show Completed:        %v\n", settings.ShowCompleted)
	fmt.Println("\nReminder Settings:")
	fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
	fmt.Printf("  Reminder Time:         %s\n", settings.ReminderTime)
	return nil
}

type SettingsSetCmd struct {
	NotificationsEnabled *bool   `help:"Enable or disable the daily reminder."`
	ReminderTime         *string `help:"Daily reminder time (HH:MM)."`
	Timezone             *string `help:"IANA timezone used to decide what 'today' is (or 'Local')."`
	ShowCompleted        *bool   `help:"List completed habits in 'habit today'."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	updated := false
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.ReminderTime != nil {
		if !utils.ValidateTimeFormat(*c.ReminderTime) {
			return fmt.Errorf("invalid reminder time %q (expected HH:MM)", *c.ReminderTime)
		}
		settings.ReminderTime = *c.ReminderTime
		updated = true
	}
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.ShowCompleted != nil {
		settings.ShowCompleted = *c.ShowCompleted
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use 'settings show' to view settings or flags to update them.")
	}

	return nil
}
