package models

import (
	"testing"

	"github.com/julianstephens/habitlit/internal/constants"
)

func TestSettingsRoundTripThroughMap(t *testing.T) {
	in := Settings{
		NotificationsEnabled: false,
		ReminderTime:         "21:30",
		Timezone:             "Europe/Berlin",
		ShowCompleted:        true,
	}

	out, err := MapToSettings(SettingsToMap(in))
	if err != nil {
		t.Fatalf("MapToSettings() error = %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestMapToSettingsInvalidBool(t *testing.T) {
	_, err := MapToSettings(map[string]string{constants.SettingNotificationsEnabled: "maybe"})
	if err == nil {
		t.Error("expected error for non-boolean notifications_enabled")
	}
}

func TestApplyDefaultSettings(t *testing.T) {
	s := Settings{}
	ApplyDefaultSettings(&s)

	if s.ReminderTime != constants.DefaultReminderTime {
		t.Errorf("ReminderTime = %q, want %q", s.ReminderTime, constants.DefaultReminderTime)
	}
	if s.Timezone != constants.DefaultTimezone {
		t.Errorf("Timezone = %q, want %q", s.Timezone, constants.DefaultTimezone)
	}

	s = Settings{ReminderTime: "07:15", Timezone: "UTC"}
	ApplyDefaultSettings(&s)
	if s.ReminderTime != "07:15" || s.Timezone != "UTC" {
		t.Errorf("ApplyDefaultSettings overwrote set values: %+v", s)
	}
}
