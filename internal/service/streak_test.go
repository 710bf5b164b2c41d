package service

import (
	"context"
	"testing"
	"time"

	"github.com/mindfulme/internal/db"
)

func daysAgo(today time.Time, offsets ...int) map[string]struct{} {
	dates := make([]string, 0, len(offsets))
	for _, offset := range offsets {
		dates = append(dates, db.FormatDate(today.AddDate(0, 0, -offset)))
	}
	return dateSet(dates)
}

func TestCalculateStreak(t *testing.T) {
	today := time.Date(2024, 3, 2, 18, 45, 0, 0, time.Local)

	tests := []struct {
		name  string
		dates map[string]struct{}
		want  int
	}{
		{name: "no logs", dates: nil, want: 0},
		{name: "today and two prior days", dates: daysAgo(today, 0, 1, 2), want: 3},
		{name: "today missing", dates: daysAgo(today, 1, 2), want: 2},
		{name: "gap after today", dates: daysAgo(today, 0, 2), want: 1},
		{name: "only old logs", dates: daysAgo(today, 3, 4), want: 0},
		{name: "crosses month and leap day", dates: daysAgo(today, 0, 1, 2, 3), want: 4},
		{name: "duplicates ignored", dates: dateSet([]string{db.FormatDate(today), db.FormatDate(today)}), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateStreak(tt.dates, today)
			if got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestCalculateStreakLookbackBound(t *testing.T) {
	today := time.Date(2024, 5, 10, 0, 0, 0, 0, time.Local)

	offsets := make([]int, 0, 500)
	for i := 0; i < 500; i++ {
		offsets = append(offsets, i)
	}

	got := CalculateStreak(daysAgo(today, offsets...), today)
	if got != maxStreakLookbackDays+1 {
		t.Fatalf("expected streak to stop at the lookback bound %d, got %d", maxStreakLookbackDays+1, got)
	}
}

func TestActivityServiceStreak(t *testing.T) {
	gdb, activities, _ := newTestServices(t)

	seedActivity(t, gdb, "Piano Practice", 1)
	seedActivity(t, gdb, "Piano Practice", 2)
	seedActivity(t, gdb, "Piano Practice", 4)

	streak, err := activities.Streak(context.Background(), "piano practice")
	if err != nil {
		t.Fatalf("Streak returned error: %v", err)
	}
	if streak != 2 {
		t.Fatalf("expected streak 2, got %d", streak)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"1 hour of study":          "1 Hour Of Study",
		"  drink 8 glasses water ": "Drink 8 Glasses Water",
		"MEDITATE":                 "Meditate",
		"don't stop":               "Don't Stop",
		"x2y":                      "X2y",
		"":                         "",
	}
	for input, want := range tests {
		if got := NormalizeName(input); got != want {
			t.Fatalf("NormalizeName(%q): expected %q, got %q", input, want, got)
		}
	}
}
