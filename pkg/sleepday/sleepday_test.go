package sleepday

import (
	"testing"
	"time"
)

func at(hour int) time.Time {
	return time.Date(2026, 3, 10, hour, 30, 0, 0, time.Local)
}

func TestKeyBeforeCutoff(t *testing.T) {
	if got := Key(6, at(1)); got != "2026-03-09" {
		t.Fatalf("01:30 should map to previous day, got %s", got)
	}
	if got := Key(6, at(5)); got != "2026-03-09" {
		t.Fatalf("05:30 should map to previous day, got %s", got)
	}
}

func TestKeyAfterCutoff(t *testing.T) {
	if got := Key(6, at(6)); got != "2026-03-10" {
		t.Fatalf("06:30 should map to same day, got %s", got)
	}
	if got := Key(6, at(23)); got != "2026-03-10" {
		t.Fatalf("23:30 should map to same day, got %s", got)
	}
}

func TestKeyInvalidCutoffFallsBack(t *testing.T) {
	if got, want := Key(-1, at(5)), Key(DefaultCutoffHour, at(5)); got != want {
		t.Fatalf("invalid cutoff: got %s want %s", got, want)
	}
	if got, want := Key(24, at(5)), Key(DefaultCutoffHour, at(5)); got != want {
		t.Fatalf("invalid cutoff: got %s want %s", got, want)
	}
}

func TestLastN(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	week := LastN(now, 7, 0)
	if len(week) != 7 {
		t.Fatalf("expected 7 dates, got %d", len(week))
	}
	if week[0] != "2026-03-10" || week[6] != "2026-03-04" {
		t.Fatalf("unexpected window: %v", week)
	}
	prev := LastN(now, 7, 7)
	if prev[0] != "2026-03-03" || prev[6] != "2026-02-25" {
		t.Fatalf("unexpected offset window: %v", prev)
	}
}

func TestMonthDays(t *testing.T) {
	days := MonthDays(2026, time.February)
	if len(days) != 28 {
		t.Fatalf("feb 2026 has 28 days, got %d", len(days))
	}
	if days[0] != "2026-02-01" || days[27] != "2026-02-28" {
		t.Fatalf("unexpected bounds: %s .. %s", days[0], days[27])
	}
	leap := MonthDays(2024, time.February)
	if len(leap) != 29 {
		t.Fatalf("feb 2024 has 29 days, got %d", len(leap))
	}
}
