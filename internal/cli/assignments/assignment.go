package assignments

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/julianstephens/wakelit/internal/cli"
	"github.com/julianstephens/wakelit/internal/constants"
	"github.com/julianstephens/wakelit/internal/models"
)

var urgencyStyles = map[models.Urgency]lipgloss.Style{
	models.UrgencyOverdue:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	models.UrgencyCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	models.UrgencySoon:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	models.UrgencyLater:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

type AssignmentAddCmd struct {
	Title       string `arg:"" help:"Assignment title."`
	Course      string `short:"c" help:"Course ID or code." required:""`
	Due         string `short:"d" help:"Due date (YYYY-MM-DD, optionally with HH:MM)." required:""`
	Description string `help:"Assignment description."`
}

func (c *AssignmentAddCmd) Run(ctx *cli.Context) error {
	courses, err := ctx.Store.GetAllCourses()
	if err != nil {
		return err
	}
	var courseID string
	for _, course := range courses {
		if strings.HasPrefix(course.ID, c.Course) || strings.EqualFold(course.Code, c.Course) {
			courseID = course.ID
			break
		}
	}
	if courseID == "" {
		return fmt.Errorf("no course found with ID or code %s", c.Course)
	}

	due, err := parseDue(c.Due)
	if err != nil {
		return err
	}

	assignment := models.Assignment{
		ID:          uuid.New().String(),
		CourseID:    courseID,
		UserID:      ctx.UserID,
		Title:       c.Title,
		Description: c.Description,
		DueDate:     due,
		Status:      models.StatusPending,
		CreatedAt:   time.Now(),
	}

	if err := assignment.Validate(); err != nil {
		return fmt.Errorf("invalid assignment: %w", err)
	}

	if err := ctx.Store.AddAssignment(assignment); err != nil {
		return err
	}

	fmt.Printf("Added assignment \"%s\" due %s\n", assignment.Title, due.Format("Mon Jan 2"))
	return nil
}

// parseDue accepts "2006-01-02" or "2006-01-02 15:04". A date without a time
// is treated as due end of day.
func parseDue(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(constants.DateFormat+" "+constants.TimeFormat, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(constants.DateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date (expected YYYY-MM-DD or YYYY-MM-DD HH:MM): %s", s)
	}
	return t.Add(23*time.Hour + 59*time.Minute), nil
}

type AssignmentListCmd struct {
	All bool `short:"a" help:"Include completed assignments."`
}

func (c *AssignmentListCmd) Run(ctx *cli.Context) error {
	assignments, err := ctx.Store.GetAllAssignments(ctx.UserID)
	if err != nil {
		return err
	}

	titles := make(map[string]string)
	if courses, err := ctx.Store.GetAllCourses(); err == nil {
		for _, course := range courses {
			titles[course.ID] = course.Code
		}
	}

	now := time.Now()
	shown := 0
	for _, a := range assignments {
		if a.Status == models.StatusDone && !c.All {
			continue
		}
		shown++

		urgency := a.UrgencyAt(now)
		style, ok := urgencyStyles[urgency]
		if !ok {
			style = lipgloss.NewStyle()
		}

		code := titles[a.CourseID]
		if code == "" {
			code = a.CourseID[:8]
		}
		line := fmt.Sprintf("%s  %s [%s] due %s", style.Render(string(urgency)), a.Title, code, a.DueDate.Format("Mon Jan 2 15:04"))
		if a.Status != models.StatusPending {
			line += fmt.Sprintf(" (%s)", a.Status)
		}
		line += "  " + a.ID[:8]
		fmt.Println(line)
	}

	if shown == 0 {
		fmt.Println("No open assignments.")
	}
	return nil
}

type AssignmentStatusCmd struct {
	ID     string `arg:"" help:"Assignment ID (a unique prefix is enough)."`
	Status string `arg:"" help:"New status (pending|'in progress'|done)."`
}

func (c *AssignmentStatusCmd) Validate() error {
	switch models.AssignmentStatus(strings.ToLower(c.Status)) {
	case models.StatusPending, models.StatusInProgress, models.StatusDone:
		return nil
	}
	return fmt.Errorf("invalid status: %s", c.Status)
}

func (c *AssignmentStatusCmd) Run(ctx *cli.Context) error {
	assignment, err := resolveAssignment(ctx, c.ID)
	if err != nil {
		return err
	}
	status := models.AssignmentStatus(strings.ToLower(c.Status))
	if err := ctx.Store.UpdateAssignmentStatus(assignment.ID, status); err != nil {
		return err
	}
	fmt.Printf("Marked \"%s\" as %s\n", assignment.Title, status)
	return nil
}

type AssignmentDeleteCmd struct {
	ID string `arg:"" help:"Assignment ID (a unique prefix is enough)."`
}

func (c *AssignmentDeleteCmd) Run(ctx *cli.Context) error {
	assignment, err := resolveAssignment(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteAssignment(assignment.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted assignment \"%s\"\n", assignment.Title)
	return nil
}

func resolveAssignment(ctx *cli.Context, idPrefix string) (models.Assignment, error) {
	assignments, err := ctx.Store.GetAllAssignments(ctx.UserID)
	if err != nil {
		return models.Assignment{}, err
	}

	var matches []models.Assignment
	for _, a := range assignments {
		if strings.HasPrefix(a.ID, idPrefix) {
			matches = append(matches, a)
		}
	}

	switch len(matches) {
	case 0:
		return models.Assignment{}, fmt.Errorf("no assignment found with ID %s", idPrefix)
	case 1:
		return matches[0], nil
	default:
		return models.Assignment{}, fmt.Errorf("ID prefix %s matches %d assignments, use a longer prefix", idPrefix, len(matches))
	}
}
