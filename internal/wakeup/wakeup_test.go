package wakeup

import (
	"testing"
	"time"

	"github.com/julianstephens/wakelit/internal/models"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 10, 6, 0, 0, 0, time.Local) // a Monday
}

func testCalculator() *Calculator {
	return NewWithClock(fixedClock)
}

func routine(title string, pos, duration int, mode models.TravelMode) models.Routine {
	return models.Routine{
		ID:          title,
		UserID:      "default",
		Title:       title,
		DayOfWeek:   "Monday",
		Position:    pos,
		DurationMin: duration,
		TravelMode:  mode,
	}
}

func TestComputePlanWalkingScenario(t *testing.T) {
	routines := []models.Routine{
		routine("Shower", 0, 15, models.TravelWalk),
		routine("Breakfast", 1, 10, models.TravelWalk),
	}
	firstClass := &models.ClassInfo{CourseTitle: "Algorithms", StartTime: "08:00"}

	plan := testCalculator().ComputePlan(routines, firstClass)
	if plan == nil {
		t.Fatal("expected a plan")
	}

	if plan.TotalPrepMin != 30 {
		t.Errorf("expected 30 prep minutes, got %d", plan.TotalPrepMin)
	}
	if plan.WakeTimeString != "07:30" {
		t.Errorf("expected wake at 07:30, got %s", plan.WakeTimeString)
	}

	wantTimes := []string{"07:30", "07:45"}
	if len(plan.Timeline) != len(wantTimes) {
		t.Fatalf("expected %d timeline entries, got %d", len(wantTimes), len(plan.Timeline))
	}
	for i, want := range wantTimes {
		if plan.Timeline[i].Time != want {
			t.Errorf("entry %d: expected %s, got %s", i, want, plan.Timeline[i].Time)
		}
	}
	if plan.Timeline[0].Label != "Shower" || plan.Timeline[1].Label != "Breakfast" {
		t.Errorf("timeline order wrong: %+v", plan.Timeline)
	}
}

func TestComputePlanCarScenario(t *testing.T) {
	// Car halves both durations: 7.5 + 5 + 5 buffer = 17.5, rounded once to 18
	routines := []models.Routine{
		routine("Shower", 0, 15, models.TravelCar),
		routine("Breakfast", 1, 10, models.TravelCar),
	}
	firstClass := &models.ClassInfo{CourseTitle: "Algorithms", StartTime: "08:00"}

	plan := testCalculator().ComputePlan(routines, firstClass)
	if plan == nil {
		t.Fatal("expected a plan")
	}

	if plan.TotalPrepMin != 18 {
		t.Errorf("expected 18 prep minutes, got %d", plan.TotalPrepMin)
	}
	if plan.WakeTimeString != "07:42" {
		t.Errorf("expected wake at 07:42, got %s", plan.WakeTimeString)
	}

	// Per-item advance rounds 7.5 to 8
	if plan.Timeline[1].Time != "07:50" {
		t.Errorf("expected second entry at 07:50, got %s", plan.Timeline[1].Time)
	}
}

func TestComputePlanNoInputs(t *testing.T) {
	if plan := testCalculator().ComputePlan(nil, nil); plan != nil {
		t.Errorf("expected nil plan for empty inputs, got %+v", plan)
	}
}

func TestComputePlanClassOnlyNoRoutines(t *testing.T) {
	firstClass := &models.ClassInfo{CourseTitle: "Algorithms", StartTime: "09:00"}
	plan := testCalculator().ComputePlan(nil, firstClass)
	if plan == nil {
		t.Fatal("expected a plan when a class exists")
	}
	// Only the buffer remains
	if plan.TotalPrepMin != BufferMinutes {
		t.Errorf("expected %d prep minutes, got %d", BufferMinutes, plan.TotalPrepMin)
	}
	if plan.WakeTimeString != "08:55" {
		t.Errorf("expected wake at 08:55, got %s", plan.WakeTimeString)
	}
	if len(plan.Timeline) != 0 {
		t.Errorf("expected empty timeline, got %+v", plan.Timeline)
	}
}

func TestComputePlanFallbackAnchor(t *testing.T) {
	// No class, no pinned routine start: anchor is an hour from now
	routines := []models.Routine{routine("Stretch", 0, 10, models.TravelWalk)}
	plan := testCalculator().ComputePlan(routines, nil)
	if plan == nil {
		t.Fatal("expected a plan")
	}

	wantAnchor := fixedClock().Add(time.Hour)
	if !plan.Anchor.Equal(wantAnchor) {
		t.Errorf("expected anchor %v, got %v", wantAnchor, plan.Anchor)
	}
	if plan.WakeTimeString != "06:45" { // 07:00 anchor - 15 prep
		t.Errorf("expected wake at 06:45, got %s", plan.WakeTimeString)
	}
}

func TestComputePlanRoutineStartAnchor(t *testing.T) {
	r := routine("Gym", 0, 30, models.TravelWalk)
	r.StartTime = "07:00"
	r.EndTime = "07:30"

	plan := testCalculator().ComputePlan([]models.Routine{r}, nil)
	if plan == nil {
		t.Fatal("expected a plan")
	}
	// Anchor is the routine's pinned start; prep = 30 + 5 buffer
	if plan.WakeTimeString != "06:25" {
		t.Errorf("expected wake at 06:25, got %s", plan.WakeTimeString)
	}
}

func TestComputePlanClassAnchorBeatsRoutineStart(t *testing.T) {
	r := routine("Gym", 0, 30, models.TravelWalk)
	r.StartTime = "06:30"
	firstClass := &models.ClassInfo{CourseTitle: "Algorithms", StartTime: "10:00"}

	plan := testCalculator().ComputePlan([]models.Routine{r}, firstClass)
	if !plan.Anchor.Equal(time.Date(2025, 3, 10, 10, 0, 0, 0, time.Local)) {
		t.Errorf("expected class start anchor, got %v", plan.Anchor)
	}
}

func TestComputePlanUnparseableClassTimeFallsBack(t *testing.T) {
	r := routine("Gym", 0, 30, models.TravelWalk)
	r.StartTime = "07:00"
	firstClass := &models.ClassInfo{CourseTitle: "Algorithms", StartTime: "25:99"}

	plan := testCalculator().ComputePlan([]models.Routine{r}, firstClass)
	if !plan.Anchor.Equal(time.Date(2025, 3, 10, 7, 0, 0, 0, time.Local)) {
		t.Errorf("expected routine start anchor, got %v", plan.Anchor)
	}
}

func TestComputePlanSortsByPosition(t *testing.T) {
	routines := []models.Routine{
		routine("Second", 1, 10, models.TravelWalk),
		routine("First", 0, 10, models.TravelWalk),
	}
	plan := testCalculator().ComputePlan(routines, &models.ClassInfo{StartTime: "08:00"})
	if plan.Timeline[0].Label != "First" {
		t.Errorf("expected position sort, got %+v", plan.Timeline)
	}
	// Input slice must not be reordered
	if routines[0].Title != "Second" {
		t.Error("input slice was mutated")
	}
}

func TestComputePlanWindowOverridesDuration(t *testing.T) {
	r := routine("Commute", 0, 10, models.TravelWalk)
	r.StartTime = "07:00"
	r.EndTime = "07:20" // 20 min window beats the 10 min duration

	plan := testCalculator().ComputePlan([]models.Routine{r}, &models.ClassInfo{StartTime: "08:00"})
	if plan.TotalPrepMin != 25 {
		t.Errorf("expected 25 prep minutes (20 window + 5 buffer), got %d", plan.TotalPrepMin)
	}
}

func TestComputePlanMalformedWindowDegradesToDuration(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
	}{
		{"bad start", "7am", "07:20"},
		{"bad end", "07:00", "nope"},
		{"inverted", "07:20", "07:00"},
		{"zero width", "07:00", "07:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := routine("Commute", 0, 10, models.TravelWalk)
			r.StartTime = tt.start
			r.EndTime = tt.end
			plan := testCalculator().ComputePlan([]models.Routine{r}, &models.ClassInfo{StartTime: "08:00"})
			if plan.TotalPrepMin != 15 {
				t.Errorf("expected fallback to 10 min duration (+5 buffer), got %d", plan.TotalPrepMin)
			}
		})
	}
}

func TestComputePlanMissingDurationUsesDefault(t *testing.T) {
	r := routine("Mystery", 0, 0, models.TravelWalk)
	plan := testCalculator().ComputePlan([]models.Routine{r}, &models.ClassInfo{StartTime: "08:00"})
	if plan.TotalPrepMin != 15 { // 10 default + 5 buffer
		t.Errorf("expected default duration, got %d prep minutes", plan.TotalPrepMin)
	}
}

func TestComputePlanUnknownTravelModeIsNeutral(t *testing.T) {
	r := routine("Teleport", 0, 20, models.TravelMode("Rocket"))
	plan := testCalculator().ComputePlan([]models.Routine{r}, &models.ClassInfo{StartTime: "08:00"})
	if plan.TotalPrepMin != 25 {
		t.Errorf("expected unknown travel mode to scale by 1.0, got %d prep minutes", plan.TotalPrepMin)
	}
}

func TestComputePlanMoods(t *testing.T) {
	high := routine("Exam prep", 0, 10, models.TravelWalk)
	high.Priority = models.PriorityHigh
	low := routine("Coffee", 1, 10, models.TravelWalk)
	low.Priority = models.PriorityLow

	plan := testCalculator().ComputePlan([]models.Routine{high, low}, &models.ClassInfo{StartTime: "08:00"})
	if plan.Timeline[0].Mood != MoodWorried {
		t.Errorf("expected worried mood for high priority, got %s", plan.Timeline[0].Mood)
	}
	if plan.Timeline[1].Mood != MoodOnTime {
		t.Errorf("expected on-time mood for low priority, got %s", plan.Timeline[1].Mood)
	}
}

func TestComputePlanDeterministic(t *testing.T) {
	routines := []models.Routine{
		routine("Shower", 0, 15, models.TravelBike),
		routine("Breakfast", 1, 10, models.TravelWalk),
	}
	firstClass := &models.ClassInfo{StartTime: "08:30"}

	a := testCalculator().ComputePlan(routines, firstClass)
	b := testCalculator().ComputePlan(routines, firstClass)
	if a.WakeTimeString != b.WakeTimeString || a.TotalPrepMin != b.TotalPrepMin {
		t.Errorf("plans differ: %+v vs %+v", a, b)
	}
	for i := range a.Timeline {
		if a.Timeline[i] != b.Timeline[i] {
			t.Errorf("timeline entry %d differs: %+v vs %+v", i, a.Timeline[i], b.Timeline[i])
		}
	}
}
