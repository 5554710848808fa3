package system

import (
	"fmt"

	"github.com/julianstephens/wakelit/internal/cli"
	"github.com/julianstephens/wakelit/internal/notifier"
)

type NotifyCmd struct {
	Message string `arg:"" help:"Notification text."`
	Console bool   `help:"Print to the terminal instead of the desktop tray."`
	DryRun  bool   `help:"Print the notification to stdout instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.NotificationsEnabled {
		fmt.Println("Notifications are disabled in settings.")
		return nil
	}

	if c.DryRun {
		fmt.Println("[DryRun] " + c.Message)
		return nil
	}

	var sink notifier.Sink
	if c.Console {
		sink = notifier.NewConsole()
	} else {
		sink = notifier.NewDesktop()
	}

	if sink.RequestPermission() == notifier.PermissionDenied {
		return fmt.Errorf("notification permission denied (is the tray app running?)")
	}
	return sink.Notify(c.Message)
}
