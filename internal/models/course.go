package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/wakelit/internal/constants"
)

// Course represents a class the student is enrolled in.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Code        string    `json:"code"`
	Lecturer    string    `json:"lecturer,omitempty"`
	Description string    `json:"description,omitempty"`
	CourseUnit  int       `json:"course_unit,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *Course) Validate() error {
	if c.Title == "" {
		return fmt.Errorf("course title cannot be empty")
	}
	if c.Code == "" {
		return fmt.Errorf("course code cannot be empty")
	}
	return nil
}

// CourseSchedule represents one weekly meeting of a course.
type CourseSchedule struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	UserID    string    `json:"user_id"`
	Day       string    `json:"day"`        // weekday name, e.g. "Monday"
	StartTime string    `json:"start_time"` // HH:MM format
	EndTime   string    `json:"end_time"`   // HH:MM format
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *CourseSchedule) Validate() error {
	if s.CourseID == "" {
		return fmt.Errorf("schedule must reference a course")
	}
	if !ValidWeekday(s.Day) {
		return fmt.Errorf("invalid day: %s", s.Day)
	}
	start, err := time.Parse(constants.TimeFormat, s.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start time format (expected HH:MM): %w", err)
	}
	end, err := time.Parse(constants.TimeFormat, s.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end time format (expected HH:MM): %w", err)
	}
	if !end.After(start) {
		return fmt.Errorf("end time must be after start time")
	}
	return nil
}

// ClassInfo is the read model for the user's earliest class on a given day.
type ClassInfo struct {
	CourseTitle string `json:"course_title,omitempty"`
	StartTime   string `json:"start_time"` // HH:MM format
	Location    string `json:"location,omitempty"`
}
