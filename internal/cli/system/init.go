package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/wakelit/internal/cli"
	"github.com/julianstephens/wakelit/internal/storage"
	"github.com/julianstephens/wakelit/internal/storage/postgres"
	"github.com/julianstephens/wakelit/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized wakelit storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	var sourceStore storage.Provider
	if strings.HasPrefix(sourcePath, "postgres://") || strings.HasPrefix(sourcePath, "postgresql://") {
		if valid, err := postgres.ValidateConnString(sourcePath); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
		sourceStore = postgres.New(sourcePath)
	} else {
		sourceStore = sqlite.NewStore(sourcePath)
	}

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	fmt.Println("  Migrating settings...")
	settings, err := sourceStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Migrating routines...")
	routines, err := sourceStore.GetAllRoutines(ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to get routines from source: %w", err)
	}
	for _, routine := range routines {
		if err := ctx.Store.AddRoutine(routine); err != nil {
			return fmt.Errorf("failed to add routine %s: %w", routine.ID, err)
		}
	}
	fmt.Printf("    Migrated %d routines\n", len(routines))

	fmt.Println("  Migrating courses...")
	courses, err := sourceStore.GetAllCourses()
	if err != nil {
		return fmt.Errorf("failed to get courses from source: %w", err)
	}
	for _, course := range courses {
		if err := ctx.Store.AddCourse(course); err != nil {
			return fmt.Errorf("failed to add course %s: %w", course.ID, err)
		}
	}
	fmt.Printf("    Migrated %d courses\n", len(courses))

	fmt.Println("  Migrating class schedules...")
	schedules, err := sourceStore.GetAllSchedules(ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to get schedules from source: %w", err)
	}
	for _, schedule := range schedules {
		if err := ctx.Store.AddSchedule(schedule); err != nil {
			return fmt.Errorf("failed to add schedule %s: %w", schedule.ID, err)
		}
	}
	fmt.Printf("    Migrated %d schedules\n", len(schedules))

	fmt.Println("  Migrating assignments...")
	assignments, err := sourceStore.GetAllAssignments(ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to get assignments from source: %w", err)
	}
	for _, assignment := range assignments {
		if err := ctx.Store.AddAssignment(assignment); err != nil {
			return fmt.Errorf("failed to add assignment %s: %w", assignment.ID, err)
		}
	}
	fmt.Printf("    Migrated %d assignments\n", len(assignments))

	return nil
}
