package system

import (
	"fmt"

	"github.com/julianstephens/wakelit/internal/cli"
	"github.com/julianstephens/wakelit/internal/validation"
)

type ValidateCmd struct {
	Strict bool `help:"Exit with an error when conflicts are found."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	routines, err := ctx.Store.GetAllRoutines(ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to get routines: %w", err)
	}
	schedules, err := ctx.Store.GetAllSchedules(ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to get schedules: %w", err)
	}
	courses, err := ctx.Store.GetAllCourses()
	if err != nil {
		return fmt.Errorf("failed to get courses: %w", err)
	}
	assignments, err := ctx.Store.GetAllAssignments(ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to get assignments: %w", err)
	}

	v := validation.New()

	fmt.Println("Routines:")
	routineResult := v.ValidateRoutines(routines)
	fmt.Print(routineResult.FormatReport())

	fmt.Println("\nClass schedules:")
	scheduleResult := v.ValidateSchedules(schedules, courses)
	fmt.Print(scheduleResult.FormatReport())

	fmt.Println("\nAssignments:")
	assignmentResult := v.ValidateAssignments(assignments)
	fmt.Print(assignmentResult.FormatReport())

	total := len(routineResult.Conflicts) + len(scheduleResult.Conflicts) + len(assignmentResult.Conflicts)
	if c.Strict && total > 0 {
		return fmt.Errorf("%d conflict(s) found", total)
	}
	return nil
}
