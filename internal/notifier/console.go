package notifier

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	consoleBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	consoleTimeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))
)

// Console prints notifications to a writer instead of the desktop. Used for
// headless sessions and dry runs; permission is always granted.
type Console struct {
	Out io.Writer
}

func NewConsole() *Console {
	return &Console{Out: os.Stdout}
}

func (c *Console) RequestPermission() Permission {
	return PermissionGranted
}

func (c *Console) Notify(message string) error {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	stamp := consoleTimeStyle.Render(time.Now().Format("15:04:05"))
	badge := consoleBadgeStyle.Render("⏰ wakelit")
	_, err := fmt.Fprintf(out, "%s %s %s\n", stamp, badge, message)
	return err
}

// Disabled swallows every notification. It backs the "notifications disabled
// in settings" path: scheduling still succeeds, nothing is shown.
type Disabled struct{}

func (Disabled) RequestPermission() Permission { return PermissionDenied }

func (Disabled) Notify(string) error { return nil }
