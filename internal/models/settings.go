package models

// Settings represents application-wide settings
type Settings struct {
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether the daily reminder fires
	ReminderTime         string `json:"notification_time"`     // HH:MM local time of the daily reminder
	Timezone             string `json:"timezone"`              // IANA name, or "Local" for the system timezone
	ShowCompleted        bool   `json:"show_completed"`        // list completed habits in `habit today`
}
