package util

import (
	"testing"
	"time"
)

func TestPreviousMonth_SameYear(t *testing.T) {
	tests := []struct {
		year      int
		month     int
		wantYear  int
		wantMonth int
	}{
		{2026, 6, 2026, 5},   // June -> May
		{2026, 12, 2026, 11}, // Dec -> Nov
		{2026, 2, 2026, 1},   // Feb -> Jan
	}

	for _, tt := range tests {
		gotYear, gotMonth := PreviousMonth(tt.year, tt.month)
		if gotYear != tt.wantYear || gotMonth != tt.wantMonth {
			t.Errorf("PreviousMonth(%d, %d) = (%d, %d), want (%d, %d)",
				tt.year, tt.month, gotYear, gotMonth, tt.wantYear, tt.wantMonth)
		}
	}
}

func TestPreviousMonth_YearBoundary(t *testing.T) {
	// January -> December of previous year
	gotYear, gotMonth := PreviousMonth(2026, 1)
	if gotYear != 2025 || gotMonth != 12 {
		t.Errorf("PreviousMonth(2026, 1) = (%d, %d), want (2025, 12)", gotYear, gotMonth)
	}
}

func TestLastDayOfMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2023, time.January, 31},
		{2023, time.April, 30},
		{2023, time.February, 28},
		{2024, time.February, 29}, // leap year
		{2100, time.February, 28}, // century, not leap
		{2000, time.February, 29}, // divisible by 400, leap
	}

	for _, tt := range tests {
		got := LastDayOfMonth(tt.year, tt.month)
		if got != tt.want {
			t.Errorf("LastDayOfMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestCalculateActualDate_ClampsToMonthEnd(t *testing.T) {
	got := CalculateActualDate(2023, time.February, 31)
	want := time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CalculateActualDate(2023, Feb, 31) = %v, want %v", got, want)
	}

	got = CalculateActualDate(2024, time.February, 31)
	want = time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CalculateActualDate(2024, Feb, 31) = %v, want %v", got, want)
	}

	// Valid day passes through untouched
	got = CalculateActualDate(2023, time.March, 15)
	want = time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CalculateActualDate(2023, Mar, 15) = %v, want %v", got, want)
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "wednesday maps to monday",
			in:   time.Date(2024, time.March, 13, 15, 4, 5, 0, time.UTC),
			want: time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday is its own week start",
			in:   time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday belongs to the preceding monday",
			in:   time.Date(2024, time.March, 17, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStart(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("WeekStart(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestQuarterOf(t *testing.T) {
	tests := []struct {
		month time.Month
		want  int
	}{
		{time.January, 1},
		{time.March, 1},
		{time.April, 2},
		{time.September, 3},
		{time.December, 4},
	}

	for _, tt := range tests {
		if got := QuarterOf(tt.month); got != tt.want {
			t.Errorf("QuarterOf(%v) = %d, want %d", tt.month, got, tt.want)
		}
	}
}

func TestIsWeekend(t *testing.T) {
	if !IsWeekend(time.Saturday) || !IsWeekend(time.Sunday) {
		t.Error("Saturday and Sunday should be weekend days")
	}
	if IsWeekend(time.Monday) || IsWeekend(time.Friday) {
		t.Error("Monday and Friday should not be weekend days")
	}
}
