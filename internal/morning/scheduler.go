package morning

import (
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/wakelit/internal/logger"
	"github.com/julianstephens/wakelit/internal/models"
	"github.com/julianstephens/wakelit/internal/notifier"
	"github.com/julianstephens/wakelit/internal/utils"
	"github.com/julianstephens/wakelit/internal/wakeup"
)

// Store is the slice of the storage layer the scheduler consumes: today's
// ordered routines and the earliest class, nothing more.
type Store interface {
	GetRoutinesForDay(userID, day string) ([]models.Routine, error)
	GetFirstClass(userID, day string) (*models.ClassInfo, error)
}

// Alert is a fire-once reminder derived from a plan.
type Alert struct {
	Message string
	FiresAt time.Time
}

// timerHandle is the cancellable half of a deferred callback.
type timerHandle interface {
	Stop() bool
}

type pendingAlert struct {
	alert Alert
	timer timerHandle
}

// Scheduler converts a computed wake-up plan into deferred notifications and
// owns their lifecycle. The pending-alert set is private to the instance;
// re-activation always cancels the previous set before scheduling a new one,
// so alerts are never additive across activations.
//
// Late activation is common (the user opens the app after the wake time has
// passed). An alert whose fire time is already in the past is delivered
// immediately with a "(now!)" marker rather than dropped; the policy is
// applied uniformly to every alert.
type Scheduler struct {
	store Store
	sink  notifier.Sink
	calc  *wakeup.Calculator

	now       func() time.Time
	afterFunc func(d time.Duration, f func()) timerHandle

	// onFire, when set, observes every delivered alert (used by the watch TUI).
	onFire func(Alert)

	mu      sync.Mutex
	pending map[int]*pendingAlert
	nextID  int
	perm    notifier.Permission
}

// Option configures a Scheduler at construction time.
type Option func(*Scheduler)

// WithClock pins the scheduler's and its calculator's notion of "now".
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
		s.calc = wakeup.NewWithClock(now)
	}
}

// WithAlertHook registers an observer invoked after each alert is delivered.
// The hook runs on the timer goroutine and must not block.
func WithAlertHook(fn func(Alert)) Option {
	return func(s *Scheduler) { s.onFire = fn }
}

func New(store Store, sink notifier.Sink, opts ...Option) *Scheduler {
	s := &Scheduler{
		store: store,
		sink:  sink,
		calc:  wakeup.New(),
		now:   time.Now,
		afterFunc: func(d time.Duration, f func()) timerHandle {
			return time.AfterFunc(d, f)
		},
		pending: make(map[int]*pendingAlert),
		perm:    notifier.PermissionUndecided,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Activate computes today's plan for the user and schedules its reminders.
// It is idempotent: every previously pending alert is cancelled before any
// fetch or scheduling happens, so two activations leave exactly one plan's
// worth of alerts pending. A fetch failure after that point schedules
// nothing; no reminders beats stale reminders.
func (s *Scheduler) Activate(userID string) error {
	s.Deactivate()

	s.mu.Lock()
	if s.perm == notifier.PermissionUndecided {
		s.perm = s.sink.RequestPermission()
	}
	s.mu.Unlock()

	now := s.now()
	day := utils.DayName(now)

	routines, err := s.store.GetRoutinesForDay(userID, day)
	if err != nil {
		return fmt.Errorf("fetch routines: %w", err)
	}
	firstClass, err := s.store.GetFirstClass(userID, day)
	if err != nil {
		return fmt.Errorf("fetch first class: %w", err)
	}

	plan := s.calc.ComputePlan(routines, firstClass)
	if plan == nil {
		s.deliver(Alert{Message: "No classes today, sleep in!", FiresAt: now})
		logger.Info("Nothing scheduled today", "user", userID, "day", day)
		return nil
	}

	s.schedule(Alert{Message: "Good morning! Time to wake up", FiresAt: plan.WakeTime})

	// Timeline entries carry wall-clock times only, so they are anchored to
	// the activation day. A wake time pushed past midnight into yesterday
	// still fires (immediately, as past-due), while its entries stay on
	// today's date.
	for _, entry := range plan.Timeline {
		firesAt, err := utils.ParseClockOn(entry.Time, now)
		if err != nil {
			continue
		}
		s.schedule(Alert{Message: fmt.Sprintf("Start: %s", entry.Label), FiresAt: firesAt})
	}

	if firstClass != nil && firstClass.StartTime != "" {
		if classStart, err := utils.ParseClockOn(firstClass.StartTime, now); err == nil {
			s.schedule(Alert{Message: "Leave now for class!", FiresAt: classStart.Add(-10 * time.Minute)})
			s.schedule(Alert{Message: "Class in 5 minutes!", FiresAt: classStart.Add(-5 * time.Minute)})
		}
	}

	s.deliver(Alert{Message: "Morning alerts activated! All reminders scheduled.", FiresAt: now})
	logger.Info("Morning alerts scheduled",
		"user", userID, "day", day,
		"wake", plan.WakeTimeString, "pending", s.PendingCount())
	return nil
}

// Deactivate cancels every pending, not-yet-fired alert. Alerts that already
// fired are gone; there is nothing to repeat.
func (s *Scheduler) Deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.pending {
		p.timer.Stop()
		delete(s.pending, id)
	}
}

// PendingCount reports how many alerts are scheduled but not yet fired.
func (s *Scheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Pending returns a snapshot of the not-yet-fired alerts.
func (s *Scheduler) Pending() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	alerts := make([]Alert, 0, len(s.pending))
	for _, p := range s.pending {
		alerts = append(alerts, p.alert)
	}
	return alerts
}

func (s *Scheduler) schedule(alert Alert) {
	delay := alert.FiresAt.Sub(s.now())
	if delay <= 0 {
		alert.Message += " (now!)"
		s.deliver(alert)
		return
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	p := &pendingAlert{alert: alert}
	p.timer = s.afterFunc(delay, func() { s.fire(id) })
	s.pending[id] = p
	s.mu.Unlock()
}

func (s *Scheduler) fire(id int) {
	s.mu.Lock()
	p, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
	}
	s.mu.Unlock()
	if !ok {
		// cancelled between timer expiry and callback
		return
	}
	s.deliver(p.alert)
}

// deliver shows an alert through the sink. Denied permission is not an error:
// the notify call becomes a no-op and scheduling is still considered to have
// succeeded.
func (s *Scheduler) deliver(alert Alert) {
	s.mu.Lock()
	perm := s.perm
	s.mu.Unlock()

	if perm != notifier.PermissionDenied {
		if err := s.sink.Notify(alert.Message); err != nil {
			logger.Warn("Notification failed", "message", alert.Message, "error", err)
		}
	}
	if s.onFire != nil {
		s.onFire(alert)
	}
}
