package plans

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/wakelit/internal/cli"
	"github.com/julianstephens/wakelit/internal/wakeup"
)

var (
	wakeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	anchorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type WakeupCmd struct {
	Day string `short:"D" help:"Day to plan for (defaults to today)."`
}

func (c *WakeupCmd) Run(ctx *cli.Context) error {
	now := ctx.Now()
	day, err := cli.ResolveDay(c.Day, now)
	if err != nil {
		return err
	}

	routines, err := ctx.Store.GetRoutinesForDay(ctx.UserID, day)
	if err != nil {
		return fmt.Errorf("failed to get routines: %w", err)
	}
	firstClass, err := ctx.Store.GetFirstClass(ctx.UserID, day)
	if err != nil {
		return fmt.Errorf("failed to get first class: %w", err)
	}

	calc := wakeup.NewWithClock(func() time.Time { return now })
	plan := calc.ComputePlan(routines, firstClass)
	if plan == nil {
		fmt.Printf("Nothing planned for %s, sleep in!\n", day)
		return nil
	}

	fmt.Printf("%s wake up at %s\n", day, wakeStyle.Render(plan.WakeTimeString))
	fmt.Printf("Prep time: %s (incl. %dm buffer)\n\n", cli.FormatMinutes(plan.TotalPrepMin), wakeup.BufferMinutes)

	for _, entry := range plan.Timeline {
		fmt.Printf("  %s  %s %s\n", entry.Time, cli.MoodIcon(entry.Mood), entry.Label)
	}

	if firstClass != nil && firstClass.StartTime != "" {
		line := fmt.Sprintf("\nFirst class: %s at %s", firstClass.CourseTitle, firstClass.StartTime)
		if firstClass.Location != "" {
			line += " @ " + firstClass.Location
		}
		fmt.Println(line)
	} else {
		fmt.Println(anchorStyle.Render(fmt.Sprintf("\nNo class anchor, planning towards %s", plan.Anchor.Format("15:04"))))
	}
	return nil
}
