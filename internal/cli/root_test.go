package cli

import (
	"testing"
	"time"

	"github.com/julianstephens/wakelit/internal/models"
)

func TestResolveDay(t *testing.T) {
	// A Monday
	now := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"", "Monday", false},
		{"today", "Monday", false},
		{"Tomorrow", "Tuesday", false},
		{"friday", "Friday", false},
		{"WED", "Wednesday", false},
		{"0", "Sunday", false},
		{"someday", "", true},
	}
	for _, tt := range tests {
		got, err := ResolveDay(tt.input, now)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ResolveDay(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ResolveDay(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveDay(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseTravelMode(t *testing.T) {
	for input, want := range map[string]models.TravelMode{
		"walk": models.TravelWalk,
		"BIKE": models.TravelBike,
		"Car ": models.TravelCar,
	} {
		got, err := ParseTravelMode(input)
		if err != nil {
			t.Errorf("ParseTravelMode(%q): %v", input, err)
		}
		if got != want {
			t.Errorf("ParseTravelMode(%q) = %s, want %s", input, got, want)
		}
	}
	if _, err := ParseTravelMode("teleport"); err == nil {
		t.Error("expected error for unknown travel mode")
	}
}

func TestParsePriority(t *testing.T) {
	got, err := ParsePriority("")
	if err != nil || got != models.PriorityNormal {
		t.Errorf("empty priority should default to normal, got %s, %v", got, err)
	}
	if _, err := ParsePriority("urgent"); err == nil {
		t.Error("expected error for unknown priority")
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		min  int
		want string
	}{
		{45, "45m"},
		{60, "1h 00m"},
		{65, "1h 05m"},
		{125, "2h 05m"},
		{0, "0m"},
	}
	for _, tt := range tests {
		if got := FormatMinutes(tt.min); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %s, want %s", tt.min, got, tt.want)
		}
	}
}
