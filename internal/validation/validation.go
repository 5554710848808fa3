package validation

import (
	"fmt"
	"sort"

	"github.com/julianstephens/wakelit/internal/models"
	"github.com/julianstephens/wakelit/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicatePosition    ConflictType = "duplicate_position"
	ConflictInvalidTime          ConflictType = "invalid_time"
	ConflictNegativeWindow       ConflictType = "negative_window"
	ConflictOverlappingSchedules ConflictType = "overlapping_schedules"
	ConflictInvalidWeekday       ConflictType = "invalid_weekday"
	ConflictInvalidDueDate       ConflictType = "invalid_due_date"
)

// Conflict represents a detected conflict in routines or course schedules
type Conflict struct {
	Type        ConflictType
	Description string
	Day         string   // Weekday name (if applicable)
	Items       []string // Routine/course titles involved
	IDs         []string // IDs of records involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator validates routines and course schedules for conflicts
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateRoutines checks stored routines for conflicts: invalid weekdays,
// malformed clock times, time windows that end before they start, and
// duplicate positions within the same user and day. Duplicate positions make
// the morning timeline order nondeterministic, so they are reported rather
// than silently tolerated.
func (v *Validator) ValidateRoutines(routines []models.Routine) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	type slot struct {
		userID string
		day    string
		pos    int
	}
	positions := make(map[slot][]models.Routine)

	for _, r := range routines {
		if !models.ValidWeekday(r.DayOfWeek) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidWeekday,
				Description: fmt.Sprintf("Routine \"%s\" has invalid weekday: %s", r.Title, r.DayOfWeek),
				Items:       []string{r.Title},
				IDs:         []string{r.ID},
			})
		}

		if r.StartTime != "" && !utils.ValidateTimeFormat(r.StartTime) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("Routine \"%s\" has invalid start time: %s", r.Title, r.StartTime),
				Day:         r.DayOfWeek,
				Items:       []string{r.Title},
				IDs:         []string{r.ID},
			})
		}
		if r.EndTime != "" && !utils.ValidateTimeFormat(r.EndTime) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("Routine \"%s\" has invalid end time: %s", r.Title, r.EndTime),
				Day:         r.DayOfWeek,
				Items:       []string{r.Title},
				IDs:         []string{r.ID},
			})
		}

		if r.StartTime != "" && r.EndTime != "" {
			startMin, err1 := utils.ParseTimeToMinutes(r.StartTime)
			endMin, err2 := utils.ParseTimeToMinutes(r.EndTime)
			if err1 == nil && err2 == nil && endMin <= startMin {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictNegativeWindow,
					Description: fmt.Sprintf("Routine \"%s\" ends (%s) at or before it starts (%s)", r.Title, r.EndTime, r.StartTime),
					Day:         r.DayOfWeek,
					Items:       []string{r.Title},
					IDs:         []string{r.ID},
				})
			}
		}

		key := slot{userID: r.UserID, day: r.DayOfWeek, pos: r.Position}
		positions[key] = append(positions[key], r)
	}

	// Collect duplicate positions in a stable order for reporting
	var dupKeys []slot
	for key, group := range positions {
		if len(group) > 1 {
			dupKeys = append(dupKeys, key)
		}
	}
	sort.Slice(dupKeys, func(i, j int) bool {
		a, b := dupKeys[i], dupKeys[j]
		if a.day != b.day {
			return a.day < b.day
		}
		return a.pos < b.pos
	})

	for _, key := range dupKeys {
		group := positions[key]
		var titles, ids []string
		for _, r := range group {
			titles = append(titles, r.Title)
			ids = append(ids, r.ID)
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicatePosition,
			Description: fmt.Sprintf("%s: position %d shared by %d routines: %v", key.day, key.pos, len(group), titles),
			Day:         key.day,
			Items:       titles,
			IDs:         ids,
		})
	}

	return result
}

// ValidateSchedules checks course schedules for malformed times, windows that
// end before they start, and same-day overlaps. Course titles are looked up in
// the given courses slice when available.
func (v *Validator) ValidateSchedules(schedules []models.CourseSchedule, courses []models.Course) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	titles := make(map[string]string)
	for _, c := range courses {
		titles[c.ID] = c.Title
	}
	titleFor := func(courseID string) string {
		if t, ok := titles[courseID]; ok {
			return t
		}
		return courseID
	}

	byDay := make(map[string][]models.CourseSchedule)
	for _, cs := range schedules {
		valid := true
		if !utils.ValidateTimeFormat(cs.StartTime) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("Schedule for \"%s\" has invalid start time: %s", titleFor(cs.CourseID), cs.StartTime),
				Day:         cs.Day,
				Items:       []string{titleFor(cs.CourseID)},
				IDs:         []string{cs.ID},
			})
			valid = false
		}
		if !utils.ValidateTimeFormat(cs.EndTime) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("Schedule for \"%s\" has invalid end time: %s", titleFor(cs.CourseID), cs.EndTime),
				Day:         cs.Day,
				Items:       []string{titleFor(cs.CourseID)},
				IDs:         []string{cs.ID},
			})
			valid = false
		}
		if !valid {
			continue
		}

		startMin, _ := utils.ParseTimeToMinutes(cs.StartTime)
		endMin, _ := utils.ParseTimeToMinutes(cs.EndTime)
		if endMin <= startMin {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNegativeWindow,
				Description: fmt.Sprintf("Schedule for \"%s\" ends (%s) at or before it starts (%s)", titleFor(cs.CourseID), cs.EndTime, cs.StartTime),
				Day:         cs.Day,
				Items:       []string{titleFor(cs.CourseID)},
				IDs:         []string{cs.ID},
			})
			continue
		}

		byDay[cs.Day] = append(byDay[cs.Day], cs)
	}

	var days []string
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	// O(n²) per day - fine for a weekly timetable
	for _, day := range days {
		daySchedules := byDay[day]
		sort.Slice(daySchedules, func(i, j int) bool {
			return daySchedules[i].StartTime < daySchedules[j].StartTime
		})

		for i := 0; i < len(daySchedules); i++ {
			for j := i + 1; j < len(daySchedules); j++ {
				s1, s2 := daySchedules[i], daySchedules[j]
				if timesOverlap(s1.StartTime, s1.EndTime, s2.StartTime, s2.EndTime) {
					result.Conflicts = append(result.Conflicts, Conflict{
						Type: ConflictOverlappingSchedules,
						Description: fmt.Sprintf("%s: \"%s\" (%s-%s) overlaps \"%s\" (%s-%s)",
							day, titleFor(s1.CourseID), s1.StartTime, s1.EndTime,
							titleFor(s2.CourseID), s2.StartTime, s2.EndTime),
						Day:   day,
						Items: []string{titleFor(s1.CourseID), titleFor(s2.CourseID)},
						IDs:   []string{s1.ID, s2.ID},
					})
				}
			}
		}
	}

	return result
}

// ValidateAssignments checks stored assignments for missing or nonsensical
// due dates. A due date before the assignment was created usually means a
// typo'd year.
func (v *Validator) ValidateAssignments(assignments []models.Assignment) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	for _, a := range assignments {
		if a.DueDate.IsZero() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDueDate,
				Description: fmt.Sprintf("Assignment \"%s\" has no due date", a.Title),
				Items:       []string{a.Title},
				IDs:         []string{a.ID},
			})
			continue
		}
		if !a.CreatedAt.IsZero() && a.DueDate.Before(a.CreatedAt) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDueDate,
				Description: fmt.Sprintf("Assignment \"%s\" is due (%s) before it was created (%s)", a.Title, a.DueDate.Format("2006-01-02"), a.CreatedAt.Format("2006-01-02")),
				Items:       []string{a.Title},
				IDs:         []string{a.ID},
			})
		}
	}

	return result
}

// timesOverlap checks if two HH:MM ranges overlap
func timesOverlap(start1, end1, start2, end2 string) bool {
	s1, err := utils.ParseTimeToMinutes(start1)
	if err != nil {
		return false
	}
	e1, err := utils.ParseTimeToMinutes(end1)
	if err != nil {
		return false
	}
	s2, err := utils.ParseTimeToMinutes(start2)
	if err != nil {
		return false
	}
	e2, err := utils.ParseTimeToMinutes(end2)
	if err != nil {
		return false
	}

	// Two ranges overlap if: start1 < end2 AND start2 < end1
	return s1 < e2 && s2 < e1
}
