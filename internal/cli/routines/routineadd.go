package routines

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/wakelit/internal/cli"
	"github.com/julianstephens/wakelit/internal/models"
	"github.com/julianstephens/wakelit/internal/utils"
)

type RoutineAddCmd struct {
	Title       string `arg:"" optional:"" help:"Routine title."`
	Day         string `short:"D" help:"Weekday the routine belongs to (defaults to today)."`
	Duration    int    `short:"d" help:"Duration in minutes." default:"10"`
	Travel      string `short:"t" help:"Travel mode (Walk|Bike|Car)."`
	Priority    string `short:"p" help:"Priority (high|medium|low|normal)." default:"normal"`
	Start       string `short:"s" help:"Pinned start time (HH:MM)."`
	End         string `short:"e" help:"Pinned end time (HH:MM)."`
	Location    string `short:"l" help:"Location."`
	Notes       string `help:"Free-form notes."`
	Interactive bool   `short:"i" help:"Fill in the routine through an interactive form."`
}

func (c *RoutineAddCmd) Validate() error {
	if !c.Interactive && c.Title == "" {
		return fmt.Errorf("title is required (or use --interactive)")
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be greater than zero")
	}
	if c.Start != "" && !utils.ValidateTimeFormat(c.Start) {
		return fmt.Errorf("invalid start time format (expected HH:MM): %s", c.Start)
	}
	if c.End != "" && !utils.ValidateTimeFormat(c.End) {
		return fmt.Errorf("invalid end time format (expected HH:MM): %s", c.End)
	}
	if c.Start != "" && c.End != "" {
		startMin, _ := utils.ParseTimeToMinutes(c.Start)
		endMin, _ := utils.ParseTimeToMinutes(c.End)
		if endMin <= startMin {
			return fmt.Errorf("end time must be after start time")
		}
	}
	return nil
}

func (c *RoutineAddCmd) Run(ctx *cli.Context) error {
	if c.Interactive {
		if err := c.runForm(); err != nil {
			return err
		}
	}

	day, err := cli.ResolveDay(c.Day, ctx.Now())
	if err != nil {
		return err
	}

	priority, err := cli.ParsePriority(c.Priority)
	if err != nil {
		return err
	}

	travel := c.Travel
	if travel == "" {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		travel = settings.DefaultTravelMode
	}
	travelMode, err := cli.ParseTravelMode(travel)
	if err != nil {
		return err
	}

	// New routines go to the end of the day's order
	existing, err := ctx.Store.GetRoutinesForDay(ctx.UserID, day)
	if err != nil {
		return fmt.Errorf("failed to get routines: %w", err)
	}

	routine := models.Routine{
		ID:          uuid.New().String(),
		UserID:      ctx.UserID,
		Title:       c.Title,
		DayOfWeek:   day,
		Position:    len(existing),
		Priority:    priority,
		DurationMin: c.Duration,
		TravelMode:  travelMode,
		StartTime:   c.Start,
		EndTime:     c.End,
		Location:    c.Location,
		Notes:       c.Notes,
		CreatedAt:   time.Now(),
	}
	routine.ApplyDefaults()

	if err := routine.Validate(); err != nil {
		return fmt.Errorf("invalid routine: %w", err)
	}

	if err := ctx.Store.AddRoutine(routine); err != nil {
		return err
	}

	fmt.Printf("Added routine \"%s\" to %s (position %d)\n", routine.Title, day, routine.Position)
	return nil
}

func (c *RoutineAddCmd) runForm() error {
	duration := strconv.Itoa(c.Duration)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&c.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Day").
				Description("Weekday name, 'today', or 'tomorrow'").
				Value(&c.Day),
			huh.NewInput().
				Title("Duration (min)").
				Value(&duration).
				Validate(func(s string) error {
					i, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if i <= 0 {
						return fmt.Errorf("duration must be a positive number of minutes")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Travel mode").
				Options(
					huh.NewOption("Walk", "Walk"),
					huh.NewOption("Bike", "Bike"),
					huh.NewOption("Car", "Car"),
				).
				Value(&c.Travel),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("Normal", "normal"),
					huh.NewOption("High", "high"),
					huh.NewOption("Medium", "medium"),
					huh.NewOption("Low", "low"),
				).
				Value(&c.Priority),
			huh.NewInput().
				Title("Start time (HH:MM)").
				Description("Optional pinned start").
				Value(&c.Start).
				Validate(optionalClock),
			huh.NewInput().
				Title("End time (HH:MM)").
				Description("Optional pinned end").
				Value(&c.End).
				Validate(optionalClock),
			huh.NewInput().
				Title("Location").
				Value(&c.Location),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return err
	}

	d, err := strconv.Atoi(duration)
	if err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	c.Duration = d
	return nil
}

func optionalClock(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if !utils.ValidateTimeFormat(s) {
		return fmt.Errorf("expected HH:MM")
	}
	return nil
}
