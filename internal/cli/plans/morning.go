package plans

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/julianstephens/wakelit/internal/cli"
	"github.com/julianstephens/wakelit/internal/morning"
	"github.com/julianstephens/wakelit/internal/notifier"
	"github.com/julianstephens/wakelit/internal/tui"
	"github.com/julianstephens/wakelit/internal/utils"
)

type MorningCmd struct {
	Watch   bool `short:"w" help:"Show a live view of pending and fired alerts."`
	Console bool `short:"c" help:"Print alerts to the terminal instead of the desktop tray."`
}

func (c *MorningCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	var sink notifier.Sink
	switch {
	case !settings.NotificationsEnabled:
		sink = notifier.Disabled{}
	case c.Console || c.Watch:
		// The watch TUI owns the terminal, so alerts render inside it;
		// the console sink would corrupt the screen.
		if c.Watch {
			sink = notifier.Disabled{}
		} else {
			sink = notifier.NewConsole()
		}
	default:
		sink = notifier.NewDesktop()
	}

	clock := func() time.Time {
		now, err := utils.NowInTimezone(settings.Timezone)
		if err != nil {
			return time.Now()
		}
		return now
	}

	if c.Watch {
		return tui.RunWatch(ctx.Store, sink, clock, ctx.UserID)
	}

	scheduler := morning.New(ctx.Store, sink, morning.WithClock(clock))
	if err := scheduler.Activate(ctx.UserID); err != nil {
		return err
	}
	defer scheduler.Deactivate()

	pending := scheduler.Pending()
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].FiresAt.Before(pending[j].FiresAt)
	})
	if len(pending) > 0 {
		fmt.Printf("\n%d reminders pending:\n", len(pending))
		for _, alert := range pending {
			fmt.Printf("  %s  %s\n", alert.FiresAt.Format("15:04"), alert.Message)
		}
		fmt.Println("\nWaiting for reminders to fire. Press Ctrl-C to stop.")
	}

	// Block until every alert has fired or the user interrupts
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for scheduler.PendingCount() > 0 {
		select {
		case <-sigs:
			fmt.Println("\nStopping, remaining reminders cancelled.")
			return nil
		case <-ticker.C:
		}
	}
	fmt.Println("All reminders delivered. Have a good morning!")
	return nil
}
