package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/habitlit/internal/constants"
)

// MapToSettings converts stored key/value rows to Settings.
// Unknown keys are ignored.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingNotificationsEnabled:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.NotificationsEnabled = b
		case constants.SettingShowCompleted:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.ShowCompleted = b
		case constants.SettingReminderTime:
			settings.ReminderTime = value
		case constants.SettingTimezone:
			settings.Timezone = value
		}
	}
	return settings, nil
}

// SettingsToMap converts Settings to key/value rows for storage.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingNotificationsEnabled: strconv.FormatBool(settings.NotificationsEnabled),
		constants.SettingReminderTime:         settings.ReminderTime,
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingShowCompleted:        strconv.FormatBool(settings.ShowCompleted),
	}
}

// DefaultSettings returns the settings written by `habitlit init`.
func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		ReminderTime:         constants.DefaultReminderTime,
		Timezone:             constants.DefaultTimezone,
		ShowCompleted:        constants.DefaultShowCompleted,
	}
}

// ApplyDefaultSettings fills empty string fields with their defaults.
func ApplyDefaultSettings(settings *Settings) {
	if settings.ReminderTime == "" {
		settings.ReminderTime = constants.DefaultReminderTime
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
}
