package routines

import (
	"fmt"
	"strings"

	"github.com/julianstephens/wakelit/internal/cli"
	"github.com/julianstephens/wakelit/internal/models"
)

type RoutineMoveCmd struct {
	ID string `arg:"" help:"Routine ID (a unique prefix is enough)."`
	To int    `arg:"" help:"New position (1-based)."`
}

func (c *RoutineMoveCmd) Validate() error {
	if c.To < 1 {
		return fmt.Errorf("position must be 1 or greater")
	}
	return nil
}

func (c *RoutineMoveCmd) Run(ctx *cli.Context) error {
	routine, err := resolveRoutine(ctx, c.ID)
	if err != nil {
		return err
	}

	day := routine.DayOfWeek
	routines, err := ctx.Store.GetRoutinesForDay(ctx.UserID, day)
	if err != nil {
		return err
	}

	target := c.To - 1
	if target >= len(routines) {
		target = len(routines) - 1
	}

	ordered := make([]string, 0, len(routines))
	for _, r := range routines {
		if r.ID != routine.ID {
			ordered = append(ordered, r.ID)
		}
	}
	ordered = append(ordered[:target], append([]string{routine.ID}, ordered[target:]...)...)

	if err := ctx.Store.ReorderRoutines(ctx.UserID, day, ordered); err != nil {
		return err
	}

	fmt.Printf("Moved \"%s\" to position %d on %s\n", routine.Title, target+1, day)
	return nil
}

// resolveRoutine finds the user's routine whose ID matches the given prefix.
// Ambiguous prefixes are an error rather than a guess.
func resolveRoutine(ctx *cli.Context, idPrefix string) (models.Routine, error) {
	routines, err := ctx.Store.GetAllRoutines(ctx.UserID)
	if err != nil {
		return models.Routine{}, err
	}

	var matches []models.Routine
	for _, r := range routines {
		if strings.HasPrefix(r.ID, idPrefix) {
			matches = append(matches, r)
		}
	}

	switch len(matches) {
	case 0:
		return models.Routine{}, fmt.Errorf("no routine found with ID %s", idPrefix)
	case 1:
		return matches[0], nil
	default:
		return models.Routine{}, fmt.Errorf("ID prefix %s matches %d routines, use a longer prefix", idPrefix, len(matches))
	}
}
