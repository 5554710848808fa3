package models

import (
	"fmt"
	"time"
)

type AssignmentStatus string

const (
	StatusPending    AssignmentStatus = "pending"
	StatusInProgress AssignmentStatus = "in progress"
	StatusDone       AssignmentStatus = "done"
)

// Urgency buckets an assignment by how close its due date is.
type Urgency string

const (
	UrgencyOverdue  Urgency = "overdue"
	UrgencyCritical Urgency = "critical" // due within a day
	UrgencySoon     Urgency = "soon"     // due within three days
	UrgencyLater    Urgency = "later"
)

// Assignment represents a piece of coursework with a due date.
type Assignment struct {
	ID          string           `json:"id"`
	CourseID    string           `json:"course_id"`
	UserID      string           `json:"user_id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	DueDate     time.Time        `json:"due_date"`
	Status      AssignmentStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
}

func (a *Assignment) Validate() error {
	if a.Title == "" {
		return fmt.Errorf("assignment title cannot be empty")
	}
	if a.DueDate.IsZero() {
		return fmt.Errorf("assignment due date cannot be empty")
	}
	if a.Status != "" {
		switch a.Status {
		case StatusPending, StatusInProgress, StatusDone:
		default:
			return fmt.Errorf("invalid status: %s", a.Status)
		}
	}
	return nil
}

// UrgencyAt buckets the assignment relative to now.
func (a *Assignment) UrgencyAt(now time.Time) Urgency {
	remaining := a.DueDate.Sub(now)
	switch {
	case remaining <= 0:
		return UrgencyOverdue
	case remaining <= 24*time.Hour:
		return UrgencyCritical
	case remaining <= 3*24*time.Hour:
		return UrgencySoon
	default:
		return UrgencyLater
	}
}
