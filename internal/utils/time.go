package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/wakelit/internal/constants"
)

// ErrInvalidTimeFormat is returned when a wall-clock string is not valid HH:MM.
var ErrInvalidTimeFormat = errors.New("invalid time format (expected HH:MM)")

// ParseClock parses a time string in the standard format (HH:MM).
func ParseClock(timeStr string) (time.Time, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, timeStr)
	}
	return t, nil
}

// ParseClockOn parses a time string (HH:MM) and anchors it to the calendar
// day and location of the given reference time. All arithmetic downstream is
// local-naive wall-clock math; no timezone conversion happens here.
func ParseClockOn(timeStr string, day time.Time) (time.Time, error) {
	t, err := ParseClock(timeStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseClock(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders an instant as zero-padded 24-hour HH:MM.
func FormatClock(t time.Time) string {
	return t.Format(constants.TimeFormat)
}

// AddMinutes advances an instant by the given number of wall-clock minutes.
func AddMinutes(t time.Time, minutes int) time.Time {
	return t.Add(time.Duration(minutes) * time.Minute)
}

// DiffMinutes returns a minus b in whole minutes; the result may be negative.
func DiffMinutes(a, b time.Time) int {
	return int(a.Sub(b).Minutes())
}

// DayName returns the weekday name ("Monday"...) used as the routine partition key.
func DayName(t time.Time) string {
	return t.Weekday().String()
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseClock(timeStr)
	return err == nil
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// NormalizeWeekday resolves a weekday given by full name, three-letter
// abbreviation, or number (0=Sunday) to its canonical name.
func NormalizeWeekday(s string) (string, error) {
	s = strings.TrimSpace(s)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := wd.String()
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:3]) {
			return name, nil
		}
	}
	if num, err := strconv.Atoi(s); err == nil && num >= 0 && num <= 6 {
		return time.Weekday(num).String(), nil
	}
	return "", fmt.Errorf("invalid weekday: %s", s)
}
