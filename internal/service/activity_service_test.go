package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mindfulme/internal/db"
)

func TestActivityServiceLogDeduplicatesSameDay(t *testing.T) {
	gdb, activities, _ := newTestServices(t)
	ctx := context.Background()

	first, err := activities.Log(ctx, "morning run")
	if err != nil {
		t.Fatalf("Log returned error: %v", err)
	}
	if first.Duplicate {
		t.Fatal("first log should not be a duplicate")
	}
	if first.Activity.Name != "Morning Run" || first.Activity.Date != "2024-05-10" {
		t.Fatalf("unexpected activity: %+v", first.Activity)
	}
	if first.Activity.Category != "general" || first.Activity.Status != "completed" {
		t.Fatalf("unexpected defaults: %+v", first.Activity)
	}
	if first.Streak != 1 {
		t.Fatalf("expected streak 1, got %d", first.Streak)
	}

	second, err := activities.Log(ctx, "Morning Run")
	if err != nil {
		t.Fatalf("Log returned error: %v", err)
	}
	if !second.Duplicate {
		t.Fatal("second log on the same day should be reported as duplicate")
	}
	if second.Streak != 1 {
		t.Fatalf("expected duplicate to keep streak 1, got %d", second.Streak)
	}
	if second.Activity.ID != first.Activity.ID {
		t.Fatalf("expected existing record %d, got %d", first.Activity.ID, second.Activity.ID)
	}

	var count int64
	gdb.Model(&db.Activity{}).Where("name = ?", "Morning Run").Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one activity row, found %d", count)
	}
}

func TestActivityServiceLogConcurrent(t *testing.T) {
	gdb, activities, _ := newTestServices(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := activities.Log(ctx, "read"); err != nil {
				t.Errorf("Log returned error: %v", err)
			}
		}()
	}
	wg.Wait()

	var count int64
	gdb.Model(&db.Activity{}).Where("name = ?", "Read").Count(&count)
	if count != 1 {
		t.Fatalf("expected one row under concurrent logging, found %d", count)
	}
}

func TestActivityServiceLogReportsStreak(t *testing.T) {
	gdb, activities, _ := newTestServices(t)

	seedActivity(t, gdb, "Yoga", 1)
	seedActivity(t, gdb, "Yoga", 2)

	result, err := activities.Log(context.Background(), "yoga")
	if err != nil {
		t.Fatalf("Log returned error: %v", err)
	}
	if result.Streak != 3 {
		t.Fatalf("expected streak 3, got %d", result.Streak)
	}
}

func TestActivityServiceLogRequiresName(t *testing.T) {
	_, activities, _ := newTestServices(t)

	if _, err := activities.Log(context.Background(), "   "); err != ErrActivityNameRequired {
		t.Fatalf("expected ErrActivityNameRequired, got %v", err)
	}
}

func TestActivityServiceListAndExists(t *testing.T) {
	gdb, activities, _ := newTestServices(t)
	ctx := context.Background()

	seedActivity(t, gdb, "Walk", 2)
	seedActivity(t, gdb, "Walk", 0)
	seedActivity(t, gdb, "Swim", 1)

	all, err := activities.List(ctx, ActivityFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 activities, got %d", len(all))
	}
	if all[0].Date < all[1].Date || all[1].Date < all[2].Date {
		t.Fatalf("expected date descending order, got %s, %s, %s", all[0].Date, all[1].Date, all[2].Date)
	}

	walks, err := activities.List(ctx, ActivityFilter{Name: "walk", Limit: 1})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(walks) != 1 || walks[0].Date != db.FormatDate(fixedNow) {
		t.Fatalf("unexpected filtered list: %+v", walks)
	}

	exists, err := activities.Exists(ctx, "swim", fixedNow.AddDate(0, 0, -1))
	if err != nil || !exists {
		t.Fatalf("expected swim to exist yesterday, exists=%v err=%v", exists, err)
	}
	exists, err = activities.Exists(ctx, "swim", fixedNow)
	if err != nil || exists {
		t.Fatalf("expected swim to be missing today, exists=%v err=%v", exists, err)
	}
}

func TestActivityServiceTodayUsesClock(t *testing.T) {
	_, activities, _ := newTestServices(t)

	today := activities.Today()
	if today.Hour() != 0 || db.FormatDate(today) != "2024-05-10" {
		t.Fatalf("unexpected today: %v", today)
	}

	activities.SetClock(nil)
	if db.FormatDate(activities.Today()) != db.FormatDate(time.Now()) {
		t.Fatal("expected nil clock to fall back to time.Now")
	}
}
