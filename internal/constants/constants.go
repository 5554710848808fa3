package constants

const (
	AppName            = "wakelit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/wakelit/wakelit.db"
	Version            = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Notify constants
	NotifierLockfileName   = "wakelit-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.wakelit"

	// DefaultRoutineDurationMin is assumed when a routine has no duration set
	DefaultRoutineDurationMin = 10

	// Settings keys
	SettingTimezone             = "timezone"
	SettingNotificationsEnabled = "notifications_enabled"
	SettingDefaultTravelMode    = "default_travel_mode"

	// Settings defaults
	DefaultTimezone             = "Local"
	DefaultNotificationsEnabled = true
	DefaultTravelMode           = "Walk"
	DefaultUserID               = "default"
)
