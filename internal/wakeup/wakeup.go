package wakeup

import (
	"math"
	"sort"
	"time"

	"github.com/julianstephens/wakelit/internal/constants"
	"github.com/julianstephens/wakelit/internal/models"
	"github.com/julianstephens/wakelit/internal/utils"
)

// BufferMinutes is the fixed slack added on top of the summed routine durations.
const BufferMinutes = 5

// Mood annotates a timeline entry for display. It never affects timing.
type Mood string

const (
	MoodEarly       Mood = "sparkle_happy"
	MoodOnTime      Mood = "normal_smile"
	MoodLate        Mood = "worried_clock"
	MoodVeryLate    Mood = "cry_teary"
	MoodSnoozeHeavy Mood = "sleepy_pajamas"
	MoodWorried     Mood = "worried_face"
)

// travelMultiplier scales a routine's duration by its travel mode.
var travelMultiplier = map[models.TravelMode]float64{
	models.TravelWalk: 1.0,
	models.TravelBike: 0.6,
	models.TravelCar:  0.5,
}

// TimelineEntry is one scheduled activity start.
type TimelineEntry struct {
	Label string `json:"label"`
	Time  string `json:"time"` // HH:MM format
	Mood  Mood   `json:"mood"`
}

// Plan is the computed wake-up plan for one day.
type Plan struct {
	WakeTime       time.Time       `json:"wake_time"`
	WakeTimeString string          `json:"wake_time_string"` // HH:MM format
	TotalPrepMin   int             `json:"total_prep_min"`
	Timeline       []TimelineEntry `json:"timeline"`
	Anchor         time.Time       `json:"anchor"`
}

// Calculator computes wake-up plans. It performs no I/O and, apart from the
// injected clock used by the no-anchor fallback, depends only on its inputs:
// identical inputs always produce identical plans.
type Calculator struct {
	now func() time.Time
}

func New() *Calculator {
	return NewWithClock(time.Now)
}

// NewWithClock builds a Calculator on an explicit clock. Tests pin the clock
// to make the "now + 60 minutes" fallback deterministic.
func NewWithClock(now func() time.Time) *Calculator {
	return &Calculator{now: now}
}

// ComputePlan turns the ordered routine list and the optional earliest class
// into a wake-up plan. It returns nil when there are no routines and no first
// class: nothing to prepare for, nothing to compute.
//
// The wake time is the anchor minus total prep. Total prep accumulates each
// routine's travel-scaled duration in real minutes and is rounded once, at the
// end, so rounding error does not compound across long lists. The timeline
// walks the routines in ascending position, stamping each entry with the
// running clock before advancing it, so the first entry always coincides with
// the wake time.
func (c *Calculator) ComputePlan(routines []models.Routine, firstClass *models.ClassInfo) *Plan {
	if len(routines) == 0 && firstClass == nil {
		return nil
	}

	ordered := make([]models.Routine, len(routines))
	copy(ordered, routines)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	total := float64(BufferMinutes)
	for _, r := range ordered {
		total += scaledDuration(r)
	}
	totalPrep := int(math.Round(total))

	now := c.now()
	anchor := anchorTime(ordered, firstClass, now)
	wake := utils.AddMinutes(anchor, -totalPrep)

	timeline := make([]TimelineEntry, 0, len(ordered))
	current := wake
	for _, r := range ordered {
		timeline = append(timeline, TimelineEntry{
			Label: r.Title,
			Time:  utils.FormatClock(current),
			Mood:  moodFor(r.Priority),
		})
		current = utils.AddMinutes(current, int(math.Round(scaledDuration(r))))
	}

	return &Plan{
		WakeTime:       wake,
		WakeTimeString: utils.FormatClock(wake),
		TotalPrepMin:   totalPrep,
		Timeline:       timeline,
		Anchor:         anchor,
	}
}

// anchorTime picks the hard deadline to work backward from: the first class
// start, else the first routine's pinned start, else an hour from now so a
// plan still exists when nothing is fixed. Unparseable times fall through to
// the next choice rather than aborting.
func anchorTime(ordered []models.Routine, firstClass *models.ClassInfo, now time.Time) time.Time {
	if firstClass != nil && firstClass.StartTime != "" {
		if t, err := utils.ParseClockOn(firstClass.StartTime, now); err == nil {
			return t
		}
	}
	if len(ordered) > 0 && ordered[0].StartTime != "" {
		if t, err := utils.ParseClockOn(ordered[0].StartTime, now); err == nil {
			return t
		}
	}
	return now.Add(time.Hour)
}

// scaledDuration returns the routine's effective duration times its travel
// multiplier, in real (unrounded) minutes.
func scaledDuration(r models.Routine) float64 {
	mult, ok := travelMultiplier[r.TravelMode]
	if !ok {
		mult = 1.0
	}
	return effectiveDuration(r) * mult
}

// effectiveDuration prefers an explicit start/end window when both parse and
// the window is positive; a malformed or inverted window degrades the item to
// duration-only mode instead of failing the whole plan.
func effectiveDuration(r models.Routine) float64 {
	if r.StartTime != "" && r.EndTime != "" {
		start, startErr := utils.ParseTimeToMinutes(r.StartTime)
		end, endErr := utils.ParseTimeToMinutes(r.EndTime)
		if startErr == nil && endErr == nil && end > start {
			return float64(end - start)
		}
	}
	if r.DurationMin > 0 {
		return float64(r.DurationMin)
	}
	return constants.DefaultRoutineDurationMin
}

func moodFor(p models.Priority) Mood {
	if p == models.PriorityHigh {
		return MoodWorried
	}
	return MoodOnTime
}
