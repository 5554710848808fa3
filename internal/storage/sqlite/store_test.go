package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/wakelit/internal/models"
	"github.com/julianstephens/wakelit/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "wakelit.db"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRoutine(title, day string, pos int) models.Routine {
	return models.Routine{
		ID:          uuid.New().String(),
		UserID:      "default",
		Title:       title,
		DayOfWeek:   day,
		Position:    pos,
		Priority:    models.PriorityNormal,
		DurationMin: 15,
		TravelMode:  models.TravelWalk,
		CreatedAt:   time.Now(),
	}
}

func TestInitSeedsDefaultSettings(t *testing.T) {
	store := newTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if settings.Timezone != "Local" {
		t.Errorf("expected Local timezone, got %s", settings.Timezone)
	}
	if !settings.NotificationsEnabled {
		t.Error("expected notifications enabled by default")
	}
	if settings.DefaultTravelMode != "Walk" {
		t.Errorf("expected Walk default travel mode, got %s", settings.DefaultTravelMode)
	}
}

func TestInitPersistsDefaultSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wakelit.db")

	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	// A second store only loads; the rows must already be there
	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	settings, err := reopened.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if !settings.NotificationsEnabled {
		t.Error("expected seeded notifications_enabled row to persist")
	}
	if settings.Timezone != "Local" {
		t.Errorf("expected seeded Local timezone, got %s", settings.Timezone)
	}
}

func TestInitDoesNotReseedExistingSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wakelit.db")

	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	disabled := models.Settings{
		Timezone:             "Europe/Berlin",
		NotificationsEnabled: false,
		DefaultTravelMode:    "Bike",
	}
	if err := store.SaveSettings(disabled); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	again := NewStore(path)
	if err := again.Init(); err != nil {
		t.Fatal(err)
	}
	defer again.Close()

	settings, err := again.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if settings != disabled {
		t.Errorf("re-init clobbered settings: %+v", settings)
	}
}

func TestLoadMissingDatabase(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("expected error loading a missing database")
	}
}

func TestSaveAndGetSettings(t *testing.T) {
	store := newTestStore(t)

	want := models.Settings{
		Timezone:             "Europe/Berlin",
		NotificationsEnabled: false,
		DefaultTravelMode:    "Bike",
	}
	if err := store.SaveSettings(want); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestRoutineCRUD(t *testing.T) {
	store := newTestStore(t)

	r := testRoutine("Shower", "Monday", 0)
	r.StartTime = "07:00"
	r.EndTime = "07:15"
	r.Notes = "cold"
	if err := store.AddRoutine(r); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetRoutine(r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Shower" || got.StartTime != "07:00" || got.Notes != "cold" {
		t.Errorf("round trip mismatch: %+v", got)
	}

	got.Title = "Long shower"
	got.DurationMin = 20
	if err := store.UpdateRoutine(got); err != nil {
		t.Fatal(err)
	}
	updated, err := store.GetRoutine(r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "Long shower" || updated.DurationMin != 20 {
		t.Errorf("update not persisted: %+v", updated)
	}

	if err := store.DeleteRoutine(r.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetRoutine(r.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := store.DeleteRoutine(r.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestGetRoutinesForDayOrdersByPosition(t *testing.T) {
	store := newTestStore(t)

	second := testRoutine("Breakfast", "Monday", 1)
	first := testRoutine("Shower", "Monday", 0)
	other := testRoutine("Laundry", "Tuesday", 0)
	for _, r := range []models.Routine{second, first, other} {
		if err := store.AddRoutine(r); err != nil {
			t.Fatal(err)
		}
	}

	routines, err := store.GetRoutinesForDay("default", "Monday")
	if err != nil {
		t.Fatal(err)
	}
	if len(routines) != 2 {
		t.Fatalf("expected 2 routines, got %d", len(routines))
	}
	if routines[0].Title != "Shower" || routines[1].Title != "Breakfast" {
		t.Errorf("wrong order: %s, %s", routines[0].Title, routines[1].Title)
	}
}

func TestReorderRoutines(t *testing.T) {
	store := newTestStore(t)

	a := testRoutine("A", "Monday", 0)
	b := testRoutine("B", "Monday", 1)
	c := testRoutine("C", "Monday", 2)
	for _, r := range []models.Routine{a, b, c} {
		if err := store.AddRoutine(r); err != nil {
			t.Fatal(err)
		}
	}

	if err := store.ReorderRoutines("default", "Monday", []string{c.ID, a.ID, b.ID}); err != nil {
		t.Fatal(err)
	}

	routines, err := store.GetRoutinesForDay("default", "Monday")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"C", "A", "B"}
	for i, title := range want {
		if routines[i].Title != title {
			t.Errorf("position %d: expected %s, got %s", i, title, routines[i].Title)
		}
	}
}

func TestCoursesAndFirstClass(t *testing.T) {
	store := newTestStore(t)

	algo := models.Course{ID: uuid.New().String(), Title: "Algorithms", Code: "CS201", CreatedAt: time.Now()}
	calc := models.Course{ID: uuid.New().String(), Title: "Calculus", Code: "MA101", CreatedAt: time.Now()}
	for _, c := range []models.Course{algo, calc} {
		if err := store.AddCourse(c); err != nil {
			t.Fatal(err)
		}
	}

	schedules := []models.CourseSchedule{
		{ID: uuid.New().String(), CourseID: calc.ID, UserID: "default", Day: "Monday", StartTime: "10:00", EndTime: "11:30", CreatedAt: time.Now()},
		{ID: uuid.New().String(), CourseID: algo.ID, UserID: "default", Day: "Monday", StartTime: "08:00", EndTime: "09:30", Location: "B12", CreatedAt: time.Now()},
	}
	for _, s := range schedules {
		if err := store.AddSchedule(s); err != nil {
			t.Fatal(err)
		}
	}

	first, err := store.GetFirstClass("default", "Monday")
	if err != nil {
		t.Fatal(err)
	}
	if first == nil {
		t.Fatal("expected a first class")
	}
	if first.CourseTitle != "Algorithms" || first.StartTime != "08:00" || first.Location != "B12" {
		t.Errorf("wrong first class: %+v", first)
	}

	// A day without classes yields nil, not an error
	none, err := store.GetFirstClass("default", "Sunday")
	if err != nil {
		t.Fatal(err)
	}
	if none != nil {
		t.Errorf("expected nil for empty day, got %+v", none)
	}
}

func TestDeleteCourseCascadesSchedules(t *testing.T) {
	store := newTestStore(t)

	course := models.Course{ID: uuid.New().String(), Title: "Algorithms", Code: "CS201", CreatedAt: time.Now()}
	if err := store.AddCourse(course); err != nil {
		t.Fatal(err)
	}
	schedule := models.CourseSchedule{
		ID: uuid.New().String(), CourseID: course.ID, UserID: "default",
		Day: "Monday", StartTime: "08:00", EndTime: "09:30", CreatedAt: time.Now(),
	}
	if err := store.AddSchedule(schedule); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteCourse(course.ID); err != nil {
		t.Fatal(err)
	}

	remaining, err := store.GetSchedulesForDay("default", "Monday")
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 0 {
		t.Errorf("expected schedules to cascade, got %d remaining", len(remaining))
	}
}

func TestAssignments(t *testing.T) {
	store := newTestStore(t)

	course := models.Course{ID: uuid.New().String(), Title: "Algorithms", Code: "CS201", CreatedAt: time.Now()}
	if err := store.AddCourse(course); err != nil {
		t.Fatal(err)
	}

	later := models.Assignment{
		ID: uuid.New().String(), CourseID: course.ID, UserID: "default",
		Title: "Essay", DueDate: time.Now().Add(72 * time.Hour),
		Status: models.StatusPending, CreatedAt: time.Now(),
	}
	soon := models.Assignment{
		ID: uuid.New().String(), CourseID: course.ID, UserID: "default",
		Title: "Problem set", DueDate: time.Now().Add(2 * time.Hour),
		Status: models.StatusPending, CreatedAt: time.Now(),
	}
	for _, a := range []models.Assignment{later, soon} {
		if err := store.AddAssignment(a); err != nil {
			t.Fatal(err)
		}
	}

	assignments, err := store.GetAllAssignments("default")
	if err != nil {
		t.Fatal(err)
	}
	if len(assignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(assignments))
	}
	// Ordered by due date
	if assignments[0].Title != "Problem set" {
		t.Errorf("expected due-date ordering, got %s first", assignments[0].Title)
	}

	if err := store.UpdateAssignmentStatus(soon.ID, models.StatusDone); err != nil {
		t.Fatal(err)
	}
	assignments, err = store.GetAllAssignments("default")
	if err != nil {
		t.Fatal(err)
	}
	if assignments[0].Status != models.StatusDone {
		t.Errorf("expected done status, got %s", assignments[0].Status)
	}

	if err := store.DeleteAssignment(soon.ID); err != nil {
		t.Fatal(err)
	}
	if err := store.UpdateAssignmentStatus(soon.ID, models.StatusPending); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
