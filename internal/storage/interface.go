package storage

import (
	"errors"

	"github.com/julianstephens/wakelit/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Provider persists routines, courses, schedules, and assignments per user.
// Day-scoped reads are keyed by weekday name; routine order within a day is
// the ascending position column.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Routines
	AddRoutine(models.Routine) error
	GetRoutine(id string) (models.Routine, error)
	GetAllRoutines(userID string) ([]models.Routine, error)
	// GetRoutinesForDay returns the user's routines for the named weekday,
	// ordered by position ascending.
	GetRoutinesForDay(userID, day string) ([]models.Routine, error)
	UpdateRoutine(models.Routine) error
	DeleteRoutine(id string) error
	// ReorderRoutines rewrites positions for the user's weekday so they follow
	// the given id order (0, 1, 2, ...). Only the listed ids are touched.
	ReorderRoutines(userID, day string, orderedIDs []string) error

	// Courses
	AddCourse(models.Course) error
	GetCourse(id string) (models.Course, error)
	GetAllCourses() ([]models.Course, error)
	DeleteCourse(id string) error

	// Course schedules
	AddSchedule(models.CourseSchedule) error
	GetSchedulesForDay(userID, day string) ([]models.CourseSchedule, error)
	GetAllSchedules(userID string) ([]models.CourseSchedule, error)
	DeleteSchedule(id string) error
	// GetFirstClass returns the user's earliest class on the named weekday,
	// or nil when there is none.
	GetFirstClass(userID, day string) (*models.ClassInfo, error)

	// Assignments
	AddAssignment(models.Assignment) error
	GetAllAssignments(userID string) ([]models.Assignment, error)
	UpdateAssignmentStatus(id string, status models.AssignmentStatus) error
	DeleteAssignment(id string) error

	// Utils
	GetConfigPath() string
}
