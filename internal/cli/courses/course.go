package courses

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/julianstephens/wakelit/internal/cli"
	"github.com/julianstephens/wakelit/internal/models"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type CourseAddCmd struct {
	Title       string `arg:"" help:"Course title."`
	Code        string `short:"c" help:"Course code (e.g. CS101)." required:""`
	Lecturer    string `short:"l" help:"Lecturer name."`
	Description string `help:"Course description."`
	Unit        int    `short:"u" help:"Credit units." default:"0"`
}

func (c *CourseAddCmd) Run(ctx *cli.Context) error {
	course := models.Course{
		ID:          uuid.New().String(),
		Title:       c.Title,
		Code:        c.Code,
		Lecturer:    c.Lecturer,
		Description: c.Description,
		CourseUnit:  c.Unit,
		CreatedAt:   time.Now(),
	}

	if err := course.Validate(); err != nil {
		return fmt.Errorf("invalid course: %w", err)
	}

	if err := ctx.Store.AddCourse(course); err != nil {
		return err
	}

	fmt.Printf("Added course %s \"%s\"\n", course.Code, course.Title)
	return nil
}

type CourseListCmd struct{}

func (c *CourseListCmd) Run(ctx *cli.Context) error {
	courses, err := ctx.Store.GetAllCourses()
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		fmt.Println("No courses yet. Add one with 'wakelit course add'.")
		return nil
	}

	for _, course := range courses {
		var details []string
		if course.Lecturer != "" {
			details = append(details, course.Lecturer)
		}
		if course.CourseUnit > 0 {
			details = append(details, fmt.Sprintf("%d units", course.CourseUnit))
		}
		details = append(details, course.ID[:8])
		fmt.Printf("%s %s %s\n",
			titleStyle.Render(course.Code), course.Title,
			detailStyle.Render("("+strings.Join(details, ", ")+")"))
	}
	return nil
}

type CourseDeleteCmd struct {
	ID string `arg:"" help:"Course ID (a unique prefix is enough)."`
}

func (c *CourseDeleteCmd) Run(ctx *cli.Context) error {
	course, err := resolveCourse(ctx, c.ID)
	if err != nil {
		return err
	}

	// Schedules and assignments cascade with the course
	if err := ctx.Store.DeleteCourse(course.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted course %s \"%s\"\n", course.Code, course.Title)
	return nil
}

func resolveCourse(ctx *cli.Context, idPrefix string) (models.Course, error) {
	courses, err := ctx.Store.GetAllCourses()
	if err != nil {
		return models.Course{}, err
	}

	var matches []models.Course
	for _, course := range courses {
		if strings.HasPrefix(course.ID, idPrefix) || strings.EqualFold(course.Code, idPrefix) {
			matches = append(matches, course)
		}
	}

	switch len(matches) {
	case 0:
		return models.Course{}, fmt.Errorf("no course found with ID or code %s", idPrefix)
	case 1:
		return matches[0], nil
	default:
		return models.Course{}, fmt.Errorf("%s matches %d courses, use a longer prefix", idPrefix, len(matches))
	}
}
