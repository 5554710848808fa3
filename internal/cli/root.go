package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/wakelit/internal/models"
	"github.com/julianstephens/wakelit/internal/storage"
	"github.com/julianstephens/wakelit/internal/utils"
	"github.com/julianstephens/wakelit/internal/wakeup"
)

type Context struct {
	Store  storage.Provider
	UserID string
}

// Now returns the current time in the user's configured timezone, falling
// back to the system clock when the setting is missing or unparseable.
func (c *Context) Now() time.Time {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return time.Now()
	}
	now, err := utils.NowInTimezone(settings.Timezone)
	if err != nil {
		return time.Now()
	}
	return now
}

// ResolveDay turns a --day flag value into a canonical weekday name.
// Accepts "today", "tomorrow", full names, three-letter abbreviations, and
// numbers (0=Sunday). An empty value means today.
func ResolveDay(day string, now time.Time) (string, error) {
	switch strings.ToLower(strings.TrimSpace(day)) {
	case "", "today":
		return utils.DayName(now), nil
	case "tomorrow":
		return utils.DayName(now.AddDate(0, 0, 1)), nil
	}
	return utils.NormalizeWeekday(day)
}

// ParseTravelMode parses a travel mode flag value case-insensitively.
func ParseTravelMode(s string) (models.TravelMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "walk":
		return models.TravelWalk, nil
	case "bike":
		return models.TravelBike, nil
	case "car":
		return models.TravelCar, nil
	}
	return "", fmt.Errorf("invalid travel mode: %s (expected Walk, Bike, or Car)", s)
}

// ParsePriority parses a priority flag value case-insensitively.
func ParsePriority(s string) (models.Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return models.PriorityNormal, nil
	case "high":
		return models.PriorityHigh, nil
	case "medium":
		return models.PriorityMedium, nil
	case "low":
		return models.PriorityLow, nil
	}
	return "", fmt.Errorf("invalid priority: %s (expected high, medium, low, or normal)", s)
}

// MoodIcon maps a timeline mood to a terminal-friendly icon.
func MoodIcon(m wakeup.Mood) string {
	switch m {
	case wakeup.MoodEarly:
		return "✨"
	case wakeup.MoodLate:
		return "⏰"
	case wakeup.MoodVeryLate:
		return "😢"
	case wakeup.MoodSnoozeHeavy:
		return "😴"
	case wakeup.MoodWorried:
		return "😟"
	default:
		return "🙂"
	}
}

// FormatMinutes renders a minute count as "1h 05m" or "45m".
func FormatMinutes(min int) string {
	if min >= 60 {
		return fmt.Sprintf("%dh %02dm", min/60, min%60)
	}
	return fmt.Sprintf("%dm", min)
}
