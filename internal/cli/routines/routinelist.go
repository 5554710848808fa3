package routines

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/wakelit/internal/cli"
	"github.com/julianstephens/wakelit/internal/models"
)

var (
	dayHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	detailStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type RoutineListCmd struct {
	Day string `short:"D" help:"Show a single weekday (defaults to all)."`
	All bool   `short:"a" help:"Show every weekday, including empty ones."`
}

func (c *RoutineListCmd) Run(ctx *cli.Context) error {
	if c.Day != "" {
		day, err := cli.ResolveDay(c.Day, ctx.Now())
		if err != nil {
			return err
		}
		routines, err := ctx.Store.GetRoutinesForDay(ctx.UserID, day)
		if err != nil {
			return err
		}
		printDay(day, routines)
		return nil
	}

	routines, err := ctx.Store.GetAllRoutines(ctx.UserID)
	if err != nil {
		return err
	}
	if len(routines) == 0 {
		fmt.Println("No routines yet. Add one with 'wakelit routine add'.")
		return nil
	}

	byDay := make(map[string][]models.Routine)
	for _, r := range routines {
		byDay[r.DayOfWeek] = append(byDay[r.DayOfWeek], r)
	}

	weekdays := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for _, day := range weekdays {
		dayRoutines, ok := byDay[day]
		if !ok && !c.All {
			continue
		}
		printDay(day, dayRoutines)
	}
	return nil
}

func printDay(day string, routines []models.Routine) {
	fmt.Println(dayHeaderStyle.Render(day))
	if len(routines) == 0 {
		fmt.Println(detailStyle.Render("  (no routines)"))
		return
	}
	for _, r := range routines {
		var details []string
		details = append(details, fmt.Sprintf("%dm", r.DurationMin))
		if r.TravelMode != "" && r.TravelMode != models.TravelWalk {
			details = append(details, string(r.TravelMode))
		}
		if r.Priority != "" && r.Priority != models.PriorityNormal {
			details = append(details, string(r.Priority))
		}
		if r.StartTime != "" {
			window := r.StartTime
			if r.EndTime != "" {
				window += "-" + r.EndTime
			}
			details = append(details, window)
		}
		if r.Location != "" {
			details = append(details, "@ "+r.Location)
		}
		fmt.Printf("  %d. %s %s\n", r.Position+1, r.Title,
			detailStyle.Render("("+strings.Join(details, ", ")+")  "+r.ID[:8]))
	}
}
