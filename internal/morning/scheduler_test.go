package morning

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/wakelit/internal/models"
	"github.com/julianstephens/wakelit/internal/notifier"
)

type fakeStore struct {
	routines   []models.Routine
	firstClass *models.ClassInfo

	routinesErr   error
	firstClassErr error
}

func (f *fakeStore) GetRoutinesForDay(userID, day string) ([]models.Routine, error) {
	return f.routines, f.routinesErr
}

func (f *fakeStore) GetFirstClass(userID, day string) (*models.ClassInfo, error) {
	return f.firstClass, f.firstClassErr
}

type fakeSink struct {
	mu       sync.Mutex
	perm     notifier.Permission
	messages []string
}

func (f *fakeSink) RequestPermission() notifier.Permission { return f.perm }

func (f *fakeSink) Notify(message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeSink) delivered() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

// fakeTimer records cancellation instead of running a real countdown. Firing
// is driven manually by the test through the captured callback.
type fakeTimer struct {
	stopped bool
	fn      func()
}

func (t *fakeTimer) Stop() bool {
	was := t.stopped
	t.stopped = true
	return !was
}

type timerFactory struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (tf *timerFactory) afterFunc(d time.Duration, f func()) timerHandle {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	timer := &fakeTimer{fn: f}
	tf.timers = append(tf.timers, timer)
	return timer
}

func (tf *timerFactory) stoppedCount() int {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	n := 0
	for _, t := range tf.timers {
		if t.stopped {
			n++
		}
	}
	return n
}

func testClock() time.Time {
	return time.Date(2025, 3, 10, 6, 0, 0, 0, time.Local) // Monday 06:00
}

func newTestScheduler(store Store, sink notifier.Sink) (*Scheduler, *timerFactory) {
	tf := &timerFactory{}
	s := New(store, sink, WithClock(testClock))
	s.afterFunc = tf.afterFunc
	return s, tf
}

func mondayRoutines() []models.Routine {
	return []models.Routine{
		{ID: "r1", Title: "Shower", DayOfWeek: "Monday", Position: 0, DurationMin: 15, TravelMode: models.TravelWalk},
		{ID: "r2", Title: "Breakfast", DayOfWeek: "Monday", Position: 1, DurationMin: 10, TravelMode: models.TravelWalk},
	}
}

func TestActivateSchedulesFullAlertSet(t *testing.T) {
	store := &fakeStore{
		routines:   mondayRoutines(),
		firstClass: &models.ClassInfo{CourseTitle: "Algorithms", StartTime: "08:00"},
	}
	sink := &fakeSink{perm: notifier.PermissionGranted}
	s, _ := newTestScheduler(store, sink)

	if err := s.Activate("default"); err != nil {
		t.Fatal(err)
	}

	// wake + 2 timeline entries + leave-now + 5-minute warning
	if got := s.PendingCount(); got != 5 {
		t.Errorf("expected 5 pending alerts, got %d", got)
	}

	// Activation confirmation is delivered immediately, not scheduled
	delivered := sink.delivered()
	if len(delivered) != 1 || !strings.Contains(delivered[0], "activated") {
		t.Errorf("expected a single activation message, got %v", delivered)
	}
}

func TestActivateNothingToday(t *testing.T) {
	store := &fakeStore{}
	sink := &fakeSink{perm: notifier.PermissionGranted}
	s, _ := newTestScheduler(store, sink)

	if err := s.Activate("default"); err != nil {
		t.Fatal(err)
	}
	if got := s.PendingCount(); got != 0 {
		t.Errorf("expected no pending alerts, got %d", got)
	}

	delivered := sink.delivered()
	if len(delivered) != 1 || !strings.Contains(delivered[0], "sleep in") {
		t.Errorf("expected sleep-in message, got %v", delivered)
	}
}

func TestReactivationCancelsPreviousAlerts(t *testing.T) {
	store := &fakeStore{
		routines:   mondayRoutines(),
		firstClass: &models.ClassInfo{CourseTitle: "Algorithms", StartTime: "08:00"},
	}
	sink := &fakeSink{perm: notifier.PermissionGranted}
	s, tf := newTestScheduler(store, sink)

	if err := s.Activate("default"); err != nil {
		t.Fatal(err)
	}
	first := s.PendingCount()

	if err := s.Activate("default"); err != nil {
		t.Fatal(err)
	}

	if got := s.PendingCount(); got != first {
		t.Errorf("expected %d pending after re-activation, got %d", first, got)
	}
	if got := tf.stoppedCount(); got != first {
		t.Errorf("expected %d cancelled timers, got %d", first, got)
	}
}

func TestFetchFailureSchedulesNothing(t *testing.T) {
	boom := errors.New("db gone")

	tests := []struct {
		name  string
		store *fakeStore
	}{
		{"routines fail", &fakeStore{routinesErr: boom}},
		{"first class fails", &fakeStore{routines: mondayRoutines(), firstClassErr: boom}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &fakeSink{perm: notifier.PermissionGranted}
			s, _ := newTestScheduler(tt.store, sink)

			if err := s.Activate("default"); err == nil {
				t.Fatal("expected error")
			}
			if got := s.PendingCount(); got != 0 {
				t.Errorf("expected nothing scheduled after fetch failure, got %d", got)
			}
			if len(sink.delivered()) != 0 {
				t.Errorf("expected no notifications, got %v", sink.delivered())
			}
		})
	}
}

func TestFetchFailureAfterReactivationLeavesNoStaleAlerts(t *testing.T) {
	store := &fakeStore{
		routines:   mondayRoutines(),
		firstClass: &models.ClassInfo{CourseTitle: "Algorithms", StartTime: "08:00"},
	}
	sink := &fakeSink{perm: notifier.PermissionGranted}
	s, _ := newTestScheduler(store, sink)

	if err := s.Activate("default"); err != nil {
		t.Fatal(err)
	}

	store.routinesErr = errors.New("db gone")
	if err := s.Activate("default"); err == nil {
		t.Fatal("expected error")
	}

	// The old set was cancelled before the fetch, so nothing remains
	if got := s.PendingCount(); got != 0 {
		t.Errorf("expected no pending alerts, got %d", got)
	}
}

func TestPastDueAlertsFireImmediately(t *testing.T) {
	// Activation at 06:00 with a class at 05:30: every alert is already due
	store := &fakeStore{
		firstClass: &models.ClassInfo{CourseTitle: "Early lab", StartTime: "05:30"},
	}
	sink := &fakeSink{perm: notifier.PermissionGranted}
	s, tf := newTestScheduler(store, sink)

	if err := s.Activate("default"); err != nil {
		t.Fatal(err)
	}

	if got := s.PendingCount(); got != 0 {
		t.Errorf("expected no pending alerts, got %d", got)
	}
	if len(tf.timers) != 0 {
		t.Errorf("expected no timers, got %d", len(tf.timers))
	}

	var immediate []string
	for _, msg := range sink.delivered() {
		if strings.HasSuffix(msg, "(now!)") {
			immediate = append(immediate, msg)
		}
	}
	// wake + leave-now + 5-minute warning, all stamped late
	if len(immediate) != 3 {
		t.Errorf("expected 3 immediate alerts, got %v", immediate)
	}
}

func TestTimerFiringDeliversOnce(t *testing.T) {
	store := &fakeStore{
		routines: mondayRoutines()[:1],
	}
	sink := &fakeSink{perm: notifier.PermissionGranted}
	s, tf := newTestScheduler(store, sink)

	// Pin the routine start so alerts land in the future
	store.routines[0].StartTime = "07:00"
	store.routines[0].EndTime = "07:15"

	if err := s.Activate("default"); err != nil {
		t.Fatal(err)
	}
	before := len(sink.delivered())

	tf.timers[0].fn()
	tf.timers[0].fn() // double fire must not deliver twice

	after := len(sink.delivered())
	if after != before+1 {
		t.Errorf("expected exactly one delivery, got %d", after-before)
	}
	if got := s.PendingCount(); got != len(tf.timers)-1 {
		t.Errorf("expected %d pending after one fire, got %d", len(tf.timers)-1, got)
	}
}

func TestDeniedPermissionSuppressesNotifications(t *testing.T) {
	store := &fakeStore{
		routines:   mondayRoutines(),
		firstClass: &models.ClassInfo{CourseTitle: "Algorithms", StartTime: "08:00"},
	}
	sink := &fakeSink{perm: notifier.PermissionDenied}
	s, tf := newTestScheduler(store, sink)

	if err := s.Activate("default"); err != nil {
		t.Fatalf("denied permission must not fail activation: %v", err)
	}
	if got := s.PendingCount(); got == 0 {
		t.Error("expected alerts to be scheduled despite denied permission")
	}
	if len(sink.delivered()) != 0 {
		t.Errorf("expected no notifications when denied, got %v", sink.delivered())
	}

	// Firing still removes the alert, silently
	tf.timers[0].fn()
	if len(sink.delivered()) != 0 {
		t.Errorf("expected fired alert to stay silent, got %v", sink.delivered())
	}
}

func TestAlertHookObservesDeliveries(t *testing.T) {
	store := &fakeStore{
		firstClass: &models.ClassInfo{CourseTitle: "Algorithms", StartTime: "08:00"},
	}
	sink := &fakeSink{perm: notifier.PermissionDenied}

	var mu sync.Mutex
	var seen []Alert
	tf := &timerFactory{}
	s := New(store, sink,
		WithClock(testClock),
		WithAlertHook(func(a Alert) {
			mu.Lock()
			seen = append(seen, a)
			mu.Unlock()
		}),
	)
	s.afterFunc = tf.afterFunc

	if err := s.Activate("default"); err != nil {
		t.Fatal(err)
	}

	// The hook sees deliveries even when the sink is muted
	mu.Lock()
	hookCalls := len(seen)
	mu.Unlock()
	if hookCalls == 0 {
		t.Error("expected hook to observe the activation message")
	}

	tf.timers[0].fn()
	mu.Lock()
	defer mu.Unlock()
	if len(seen) != hookCalls+1 {
		t.Errorf("expected hook to observe the fired alert, got %d calls", len(seen))
	}
}

func TestDeactivateStopsEverything(t *testing.T) {
	store := &fakeStore{
		routines:   mondayRoutines(),
		firstClass: &models.ClassInfo{CourseTitle: "Algorithms", StartTime: "08:00"},
	}
	sink := &fakeSink{perm: notifier.PermissionGranted}
	s, tf := newTestScheduler(store, sink)

	if err := s.Activate("default"); err != nil {
		t.Fatal(err)
	}
	scheduled := s.PendingCount()

	s.Deactivate()
	if got := s.PendingCount(); got != 0 {
		t.Errorf("expected no pending alerts after deactivate, got %d", got)
	}
	if got := tf.stoppedCount(); got != scheduled {
		t.Errorf("expected %d stopped timers, got %d", scheduled, got)
	}
}
