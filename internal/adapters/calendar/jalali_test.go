package calendar_test

import (
	"testing"
	"time"

	"faal-poster/internal/adapters/calendar"
	"faal-poster/internal/domain"
)

func TestToLocalized(t *testing.T) {
	tehran, err := time.LoadLocation("Asia/Tehran")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	tests := []struct {
		name     string
		at       time.Time
		expected domain.LocalizedDate
		dayName  string
	}{
		{
			name:     "nowruz 1402 is a tuesday",
			at:       time.Date(2023, 3, 21, 12, 0, 0, 0, tehran),
			expected: domain.LocalizedDate{Year: 1402, Month: 1, Day: 1, Weekday: 3},
			dayName:  "سه‌شنبه",
		},
		{
			name:     "second of farvardin 1403 is a thursday",
			at:       time.Date(2024, 3, 21, 9, 0, 0, 0, tehran),
			expected: domain.LocalizedDate{Year: 1403, Month: 1, Day: 2, Weekday: 5},
			dayName:  "پنج‌شنبه",
		},
		{
			name:     "saturday maps to index zero",
			at:       time.Date(2023, 10, 7, 12, 0, 0, 0, tehran),
			expected: domain.LocalizedDate{Year: 1402, Month: 7, Day: 15, Weekday: 0},
			dayName:  "شنبه",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calendar.ToLocalized(tt.at)
			if got != tt.expected {
				t.Errorf("got %+v, want %+v", got, tt.expected)
			}
			name, err := domain.DayName(got.Weekday)
			if err != nil || name != tt.dayName {
				t.Errorf("DayName: got %q (%v), want %q", name, err, tt.dayName)
			}
		})
	}
}

func TestJalali_Today_UsesConfiguredZone(t *testing.T) {
	// Arrange: 21:00 UTC on 20 March 2024 is already 21 March in Tehran.
	instant := time.Date(2024, 3, 20, 21, 0, 0, 0, time.UTC)
	cal, err := calendar.NewJalali("Asia/Tehran", func() time.Time { return instant })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Act
	today := cal.Today()

	// Assert
	if today.Key() != "1403/01/02" || today.Weekday != 5 {
		t.Errorf("got %+v, want 1403/01/02 weekday 5", today)
	}

	utc, _ := calendar.NewJalali("UTC", func() time.Time { return instant })
	if got := utc.Today().Key(); got != "1403/01/01" {
		t.Errorf("UTC Today: got %s, want 1403/01/01", got)
	}
}

func TestNewJalali_UnknownZone_ReturnsError(t *testing.T) {
	if _, err := calendar.NewJalali("Mars/Olympus", nil); err == nil {
		t.Error("expected an error for an unknown zone")
	}
}
