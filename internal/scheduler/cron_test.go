package scheduler

import (
	"testing"
	"time"

	"github.com/shaiso/Conduit/internal/domain"
)

func TestValidateCronExpr(t *testing.T) {
	valid := []string{
		"* * * * *",
		"0 9 * * *",
		"*/15 * * * 1-5",
		"30 2 1 * *",
	}
	for _, expr := range valid {
		if err := ValidateCronExpr(expr); err != nil {
			t.Errorf("expected %q to be valid: %v", expr, err)
		}
	}

	invalid := []string{
		"",
		"not a cron",
		"61 * * * *",
		"* * * * * *", // 6 полей — секунды не поддерживаются
	}
	for _, expr := range invalid {
		if err := ValidateCronExpr(expr); err == nil {
			t.Errorf("expected %q to be invalid", expr)
		}
	}
}

func TestCalculateNextDue_Interval(t *testing.T) {
	sched := &domain.Schedule{IntervalSec: 300, Timezone: "UTC"}
	from := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	next, err := CalculateNextDue(sched, from)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := from.Add(5 * time.Minute)
	if !next.Equal(want) {
		t.Errorf("expected %v, got %v", want, next)
	}
	if next.Location() != time.UTC {
		t.Error("next due must be stored in UTC")
	}
}

func TestCalculateNextDue_Cron(t *testing.T) {
	// Каждый день в 09:00
	sched := &domain.Schedule{CronExpr: "0 9 * * *", Timezone: "UTC"}
	from := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	next, err := CalculateNextDue(sched, from)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("expected %v, got %v", want, next)
	}
}

func TestCalculateNextDue_CronRespectsTimezone(t *testing.T) {
	// 09:00 по Москве (UTC+3) — это 06:00 UTC
	sched := &domain.Schedule{CronExpr: "0 9 * * *", Timezone: "Europe/Moscow"}
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	next, err := CalculateNextDue(sched, from)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("expected %v, got %v", want, next)
	}
}

func TestCalculateNextDue_InvalidTimezoneFallsBackToUTC(t *testing.T) {
	sched := &domain.Schedule{IntervalSec: 60, Timezone: "Mars/Olympus"}
	from := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	next, err := CalculateNextDue(sched, from)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !next.Equal(from.Add(time.Minute)) {
		t.Errorf("unexpected next due: %v", next)
	}
}

func TestCalculateNextDue_CronTakesPrecedenceOverInterval(t *testing.T) {
	sched := &domain.Schedule{CronExpr: "0 12 * * *", IntervalSec: 10, Timezone: "UTC"}
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	next, err := CalculateNextDue(sched, from)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("cron must win over interval: got %v", next)
	}
}

func TestCalculateNextDue_NeitherCronNorInterval(t *testing.T) {
	sched := &domain.Schedule{Timezone: "UTC"}

	_, err := CalculateNextDue(sched, time.Now())
	if err == nil {
		t.Fatal("expected error for schedule without cron or interval")
	}
}

func TestSchedule_IsDue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	cases := []struct {
		name  string
		sched domain.Schedule
		want  bool
	}{
		{"due in past", domain.Schedule{Enabled: true, NextDueAt: &past}, true},
		{"due exactly now", domain.Schedule{Enabled: true, NextDueAt: &now}, true},
		{"due in future", domain.Schedule{Enabled: true, NextDueAt: &future}, false},
		{"disabled", domain.Schedule{Enabled: false, NextDueAt: &past}, false},
		{"no next due", domain.Schedule{Enabled: true}, false},
	}

	for _, tc := range cases {
		if got := tc.sched.IsDue(now); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
