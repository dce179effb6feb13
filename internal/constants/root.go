package constants

import "time"

const (
	AppName            = "habitlit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitlit/habitlit.db"
	Version            = "v0.1.0"

	// EnvDBConnection overrides --config when set (also read from .env)
	EnvDBConnection = "HABITLIT_DB_CONNECTION"
	// KeyringConfigValue makes the CLI read the connection string from the OS keyring
	KeyringConfigValue = "keyring"

	// Log file rotation
	LogDirName    = "logs"
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitlit-"
	BackupFileSuffix = ".db"

	// Reminder loop
	ReminderTickInterval = 30 * time.Second
	ReminderKeyFormat    = "2006-01-02 15:04"
)
