package models

import (
	"fmt"

	"github.com/julianstephens/wakelit/internal/constants"
)

// Settings represents application-wide settings
type Settings struct {
	Timezone             string `json:"timezone"`              // IANA timezone name, or "Local" for the system timezone
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether morning alerts may notify at all
	DefaultTravelMode    string `json:"default_travel_mode"`   // travel mode assumed by `routine add` when none is given
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Notifications default to enabled when the key is absent; a stored "false"
// is an explicit opt-out and wins.
func MapToSettings(data map[string]string) Settings {
	settings := Settings{NotificationsEnabled: constants.DefaultNotificationsEnabled}
	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingDefaultTravelMode:
			settings.DefaultTravelMode = value
		}
	}
	return settings
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingNotificationsEnabled: fmt.Sprintf("%v", settings.NotificationsEnabled),
		constants.SettingDefaultTravelMode:    settings.DefaultTravelMode,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.DefaultTravelMode == "" {
		settings.DefaultTravelMode = constants.DefaultTravelMode
	}
}
