package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/wakelit/internal/morning"
	"github.com/julianstephens/wakelit/internal/notifier"
	"github.com/julianstephens/wakelit/internal/utils"
	"github.com/julianstephens/wakelit/internal/wakeup"
)

// RunWatch activates the morning scheduler and shows a live terminal view of
// pending and fired alerts until the user quits or every alert has fired.
func RunWatch(store morning.Store, sink notifier.Sink, clock func() time.Time, userID string) error {
	alerts := make(chan morning.Alert, 16)
	scheduler := morning.New(store, sink,
		morning.WithClock(clock),
		morning.WithAlertHook(func(a morning.Alert) {
			select {
			case alerts <- a:
			default:
				// never block the timer goroutine on a slow UI
			}
		}),
	)

	now := clock()
	day := utils.DayName(now)
	routines, err := store.GetRoutinesForDay(userID, day)
	if err != nil {
		return fmt.Errorf("fetch routines: %w", err)
	}
	firstClass, err := store.GetFirstClass(userID, day)
	if err != nil {
		return fmt.Errorf("fetch first class: %w", err)
	}
	plan := wakeup.NewWithClock(clock).ComputePlan(routines, firstClass)

	if err := scheduler.Activate(userID); err != nil {
		return err
	}
	defer scheduler.Deactivate()

	m := newWatchModel(scheduler, plan, alerts, clock, day)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type alertFiredMsg morning.Alert

type tickMsg time.Time

type watchModel struct {
	scheduler *morning.Scheduler
	plan      *wakeup.Plan
	alerts    <-chan morning.Alert
	clock     func() time.Time
	day       string

	spinner spinner.Model
	fired   []morning.Alert
	done    bool
}

func newWatchModel(scheduler *morning.Scheduler, plan *wakeup.Plan, alerts <-chan morning.Alert, clock func() time.Time, day string) watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return watchModel{
		scheduler: scheduler,
		plan:      plan,
		alerts:    alerts,
		clock:     clock,
		day:       day,
		spinner:   sp,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForAlert(), tick())
}

func (m watchModel) waitForAlert() tea.Cmd {
	return func() tea.Msg {
		return alertFiredMsg(<-m.alerts)
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case alertFiredMsg:
		m.fired = append(m.fired, morning.Alert(msg))
		return m, m.waitForAlert()

	case tickMsg:
		if m.scheduler.PendingCount() == 0 {
			m.done = true
		}
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("☀ %s morning", m.day)))
	b.WriteString("  " + m.clock().Format("15:04:05") + "\n\n")

	if m.plan == nil {
		b.WriteString("Nothing planned today, sleep in!\n")
	} else {
		b.WriteString("Wake up at " + wakeTimeStyle.Render(m.plan.WakeTimeString) + "\n\n")
		for _, entry := range m.plan.Timeline {
			b.WriteString(fmt.Sprintf("  %s  %s\n", entry.Time, entry.Label))
		}
		b.WriteString("\n")
	}

	pending := m.scheduler.Pending()
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].FiresAt.Before(pending[j].FiresAt)
	})

	if len(pending) > 0 {
		b.WriteString(m.spinner.View() + fmt.Sprintf("%d reminders pending\n", len(pending)))
		for _, alert := range pending {
			b.WriteString(pendingStyle.Render(fmt.Sprintf("  %s  %s", alert.FiresAt.Format("15:04"), alert.Message)) + "\n")
		}
	} else if m.done {
		b.WriteString("All reminders delivered. Have a good morning!\n")
	}

	if len(m.fired) > 0 {
		b.WriteString("\n")
		for _, alert := range m.fired {
			b.WriteString(alertStyle.Render("⏰ ") + firedStyle.Render(alert.Message) + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("q: quit"))
	return docStyle.Render(b.String())
}
