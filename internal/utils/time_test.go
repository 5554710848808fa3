package utils

import (
	"errors"
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
		hour    int
		minute  int
	}{
		{"07:30", false, 7, 30},
		{"00:00", false, 0, 0},
		{"23:59", false, 23, 59},
		{"7:30", false, 7, 30}, // single-digit hour is tolerated
		{"24:00", true, 0, 0},
		{"07:60", true, 0, 0},
		{"0730", true, 0, 0},
		{"", true, 0, 0},
		{"7am", true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				if !errors.Is(err, ErrInvalidTimeFormat) {
					t.Errorf("expected ErrInvalidTimeFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.Hour() != tt.hour || got.Minute() != tt.minute {
				t.Errorf("expected %02d:%02d, got %02d:%02d", tt.hour, tt.minute, got.Hour(), got.Minute())
			}
		})
	}
}

func TestParseClockOn(t *testing.T) {
	day := time.Date(2025, 3, 10, 18, 45, 12, 0, time.Local)
	got, err := ParseClockOn("07:30", day)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2025, 3, 10, 7, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if _, err := ParseClockOn("nope", day); err == nil {
		t.Error("expected error for invalid time")
	}
}

func TestParseTimeToMinutes(t *testing.T) {
	got, err := ParseTimeToMinutes("08:15")
	if err != nil {
		t.Fatal(err)
	}
	if got != 495 {
		t.Errorf("expected 495, got %d", got)
	}
}

func TestFormatClockRoundTrip(t *testing.T) {
	instant := time.Date(2025, 3, 10, 6, 5, 0, 0, time.Local)
	if got := FormatClock(instant); got != "06:05" {
		t.Errorf("expected 06:05, got %s", got)
	}
}

func TestAddMinutes(t *testing.T) {
	base := time.Date(2025, 3, 10, 7, 45, 0, 0, time.Local)
	if got := FormatClock(AddMinutes(base, 30)); got != "08:15" {
		t.Errorf("expected 08:15, got %s", got)
	}
	if got := FormatClock(AddMinutes(base, -50)); got != "06:55" {
		t.Errorf("expected 06:55, got %s", got)
	}
}

func TestDiffMinutes(t *testing.T) {
	a := time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)
	b := time.Date(2025, 3, 10, 7, 30, 0, 0, time.Local)
	if got := DiffMinutes(a, b); got != 30 {
		t.Errorf("expected 30, got %d", got)
	}
	if got := DiffMinutes(b, a); got != -30 {
		t.Errorf("expected -30, got %d", got)
	}
}

func TestNormalizeWeekday(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"Monday", "Monday", false},
		{"monday", "Monday", false},
		{"MON", "Monday", false},
		{"sun", "Sunday", false},
		{"0", "Sunday", false},
		{"6", "Saturday", false},
		{"7", "", true},
		{"Funday", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeWeekday(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("Local") {
		t.Error("Local must be valid")
	}
	if !ValidateTimezone("") {
		t.Error("empty timezone must be valid")
	}
	if !ValidateTimezone("Europe/Berlin") {
		t.Error("Europe/Berlin must be valid")
	}
	if ValidateTimezone("Mars/Olympus_Mons") {
		t.Error("unknown zone must be invalid")
	}
}
