// utils/dates_test.go
package utils

import (
	"testing"
	"time"
)

func TestBeginningOfDay(t *testing.T) {
	in := time.Date(2026, 9, 1, 17, 42, 13, 500, time.UTC)
	got := BeginningOfDay(in)
	want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("BeginningOfDay = %v, want %v", got, want)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"same day", time.Date(2026, 9, 1, 1, 0, 0, 0, time.UTC), time.Date(2026, 9, 1, 23, 0, 0, 0, time.UTC), 0},
		{"next day", time.Date(2026, 9, 1, 23, 0, 0, 0, time.UTC), time.Date(2026, 9, 2, 1, 0, 0, 0, time.UTC), 1},
		{"one week", time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC), time.Date(2026, 9, 8, 12, 0, 0, 0, time.UTC), 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.start, tt.end); got != tt.want {
				t.Errorf("DaysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}
