package constants

const (
	SettingNotificationsEnabled = "notifications_enabled"
	SettingReminderTime         = "notification_time"
	SettingTimezone             = "timezone"
	SettingShowCompleted        = "show_completed"

	DefaultNotificationsEnabled = true
	DefaultReminderTime         = "09:00"
	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultShowCompleted        = true
)
