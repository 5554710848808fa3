package routines

import (
	"fmt"

	"github.com/julianstephens/wakelit/internal/cli"
)

type RoutineDeleteCmd struct {
	ID string `arg:"" help:"Routine ID (a unique prefix is enough)."`
}

func (c *RoutineDeleteCmd) Run(ctx *cli.Context) error {
	routine, err := resolveRoutine(ctx, c.ID)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteRoutine(routine.ID); err != nil {
		return err
	}

	// Close the position gap the deletion left behind
	remaining, err := ctx.Store.GetRoutinesForDay(ctx.UserID, routine.DayOfWeek)
	if err != nil {
		return err
	}
	ids := make([]string, len(remaining))
	for i, r := range remaining {
		ids[i] = r.ID
	}
	if err := ctx.Store.ReorderRoutines(ctx.UserID, routine.DayOfWeek, ids); err != nil {
		return err
	}

	fmt.Printf("Deleted routine \"%s\" from %s\n", routine.Title, routine.DayOfWeek)
	return nil
}
