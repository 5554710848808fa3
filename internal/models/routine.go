package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/wakelit/internal/constants"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
)

type TravelMode string

const (
	TravelWalk TravelMode = "Walk"
	TravelBike TravelMode = "Bike"
	TravelCar  TravelMode = "Car"
)

// Routine represents one planned morning activity. Routines belong to a
// user and a weekday; their position defines execution order within that day.
type Routine struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	DayOfWeek   string     `json:"day_of_week"` // weekday name, e.g. "Monday"
	Position    int        `json:"position"`
	Priority    Priority   `json:"priority,omitempty"`
	DurationMin int        `json:"duration_min"`
	TravelMode  TravelMode `json:"travel_mode,omitempty"`
	StartTime   string     `json:"start_time,omitempty"` // HH:MM format
	EndTime     string     `json:"end_time,omitempty"`   // HH:MM format
	Location    string     `json:"location,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (r *Routine) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("routine title cannot be empty")
	}

	if !ValidWeekday(r.DayOfWeek) {
		return fmt.Errorf("invalid day of week: %s", r.DayOfWeek)
	}

	if r.Position < 0 {
		return fmt.Errorf("position cannot be negative")
	}

	if r.DurationMin < 0 {
		return fmt.Errorf("duration cannot be negative")
	}

	if r.Priority != "" {
		switch r.Priority {
		case PriorityHigh, PriorityMedium, PriorityLow, PriorityNormal:
		default:
			return fmt.Errorf("invalid priority: %s", r.Priority)
		}
	}

	if r.TravelMode != "" {
		switch r.TravelMode {
		case TravelWalk, TravelBike, TravelCar:
		default:
			return fmt.Errorf("invalid travel mode: %s", r.TravelMode)
		}
	}

	if r.StartTime != "" {
		if _, err := time.Parse(constants.TimeFormat, r.StartTime); err != nil {
			return fmt.Errorf("invalid start time format (expected HH:MM): %w", err)
		}
	}
	if r.EndTime != "" {
		if _, err := time.Parse(constants.TimeFormat, r.EndTime); err != nil {
			return fmt.Errorf("invalid end time format (expected HH:MM): %w", err)
		}
	}

	return nil
}

// ApplyDefaults fills in the documented defaults for optional fields.
func (r *Routine) ApplyDefaults() {
	if r.DurationMin == 0 {
		r.DurationMin = constants.DefaultRoutineDurationMin
	}
	if r.TravelMode == "" {
		r.TravelMode = TravelWalk
	}
	if r.Priority == "" {
		r.Priority = PriorityNormal
	}
}

// ValidWeekday reports whether name is one of the seven weekday names.
func ValidWeekday(name string) bool {
	switch name {
	case "Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday":
		return true
	}
	return false
}
