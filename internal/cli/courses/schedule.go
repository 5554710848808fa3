package courses

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/wakelit/internal/cli"
	"github.com/julianstephens/wakelit/internal/models"
	"github.com/julianstephens/wakelit/internal/utils"
)

type ScheduleAddCmd struct {
	Course   string `arg:"" help:"Course ID or code."`
	Day      string `short:"D" help:"Weekday of the class." required:""`
	Start    string `short:"s" help:"Class start time (HH:MM)." required:""`
	End      string `short:"e" help:"Class end time (HH:MM)." required:""`
	Location string `short:"l" help:"Class location."`
}

func (c *ScheduleAddCmd) Validate() error {
	if !utils.ValidateTimeFormat(c.Start) {
		return fmt.Errorf("invalid start time format (expected HH:MM): %s", c.Start)
	}
	if !utils.ValidateTimeFormat(c.End) {
		return fmt.Errorf("invalid end time format (expected HH:MM): %s", c.End)
	}
	startMin, _ := utils.ParseTimeToMinutes(c.Start)
	endMin, _ := utils.ParseTimeToMinutes(c.End)
	if endMin <= startMin {
		return fmt.Errorf("end time must be after start time")
	}
	return nil
}

func (c *ScheduleAddCmd) Run(ctx *cli.Context) error {
	course, err := resolveCourse(ctx, c.Course)
	if err != nil {
		return err
	}

	day, err := cli.ResolveDay(c.Day, ctx.Now())
	if err != nil {
		return err
	}

	schedule := models.CourseSchedule{
		ID:        uuid.New().String(),
		CourseID:  course.ID,
		UserID:    ctx.UserID,
		Day:       day,
		StartTime: c.Start,
		EndTime:   c.End,
		Location:  c.Location,
		CreatedAt: time.Now(),
	}

	if err := schedule.Validate(); err != nil {
		return fmt.Errorf("invalid schedule: %w", err)
	}

	if err := ctx.Store.AddSchedule(schedule); err != nil {
		return err
	}

	fmt.Printf("Scheduled %s on %s %s-%s\n", course.Code, day, c.Start, c.End)
	return nil
}

type ScheduleListCmd struct {
	Day string `short:"D" help:"Show a single weekday (defaults to all)."`
}

func (c *ScheduleListCmd) Run(ctx *cli.Context) error {
	var schedules []models.CourseSchedule
	var err error
	if c.Day != "" {
		day, rerr := cli.ResolveDay(c.Day, ctx.Now())
		if rerr != nil {
			return rerr
		}
		schedules, err = ctx.Store.GetSchedulesForDay(ctx.UserID, day)
	} else {
		schedules, err = ctx.Store.GetAllSchedules(ctx.UserID)
	}
	if err != nil {
		return err
	}
	if len(schedules) == 0 {
		fmt.Println("No classes scheduled.")
		return nil
	}

	titles := make(map[string]string)
	if courses, err := ctx.Store.GetAllCourses(); err == nil {
		for _, course := range courses {
			titles[course.ID] = course.Title
		}
	}

	lastDay := ""
	for _, s := range schedules {
		if s.Day != lastDay {
			fmt.Println(titleStyle.Render(s.Day))
			lastDay = s.Day
		}
		title := titles[s.CourseID]
		if title == "" {
			title = s.CourseID
		}
		line := fmt.Sprintf("  %s-%s  %s", s.StartTime, s.EndTime, title)
		if s.Location != "" {
			line += detailStyle.Render("  @ " + s.Location)
		}
		line += detailStyle.Render("  " + s.ID[:8])
		fmt.Println(line)
	}
	return nil
}

type ScheduleDeleteCmd struct {
	ID string `arg:"" help:"Schedule ID."`
}

func (c *ScheduleDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteSchedule(c.ID); err != nil {
		return err
	}
	fmt.Println("Deleted schedule.")
	return nil
}
