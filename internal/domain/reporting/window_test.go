package reporting

import (
	"testing"
	"time"
)

var kolkata = mustLoc("Asia/Kolkata")

func mustLoc(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func TestDaily_Boundaries(t *testing.T) {
	now := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)
	w := Daily(now, time.UTC)

	if !w.Contains(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Error("midnight should be inside the day")
	}
	if !w.Contains(time.Date(2025, 3, 15, 23, 59, 59, 999000000, time.UTC)) {
		t.Error("last millisecond should be inside the day")
	}
	if w.Contains(time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)) {
		t.Error("next midnight should be outside the day")
	}
	if w.Contains(time.Date(2025, 3, 14, 23, 59, 59, 0, time.UTC)) {
		t.Error("previous day should be outside")
	}
}

func TestDaily_UsesLocation(t *testing.T) {
	// 20:00 UTC on March 15 is already March 16 in Kolkata.
	now := time.Date(2025, 3, 15, 20, 0, 0, 0, time.UTC)
	w := Daily(now, kolkata)
	wantStart := time.Date(2025, 3, 16, 0, 0, 0, 0, kolkata)
	if !w.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", w.Start, wantStart)
	}
}

func TestMonthly_HalfOpen(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	w := Monthly(now, time.UTC)

	if !w.EndExclusive {
		t.Fatal("monthly window must be end exclusive")
	}
	if !w.Contains(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("first instant of the month should be inside")
	}
	if !w.Contains(time.Date(2025, 3, 31, 23, 59, 59, 999999999, time.UTC)) {
		t.Error("last nanosecond of the month should be inside")
	}
	if w.Contains(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("first instant of the next month should be outside")
	}
}

func TestMonthly_December(t *testing.T) {
	now := time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC)
	w := Monthly(now, time.UTC)
	wantEnd := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if !w.End.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", w.End, wantEnd)
	}
}

func TestRange_Inclusive(t *testing.T) {
	w, err := Range("2025-03-10", "2025-03-12", time.UTC)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if !w.Contains(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Error("start midnight should be inside")
	}
	if !w.Contains(time.Date(2025, 3, 12, 23, 59, 59, 0, time.UTC)) {
		t.Error("end of closing day should be inside")
	}
	if w.Contains(time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)) {
		t.Error("day after the range should be outside")
	}
}

func TestRange_SingleDay(t *testing.T) {
	w, err := Range("2025-03-10", "2025-03-10", time.UTC)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if !w.Contains(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)) {
		t.Error("noon of the single day should be inside")
	}
}

func TestRange_Errors(t *testing.T) {
	if _, err := Range("2025-03-12", "2025-03-10", time.UTC); err == nil {
		t.Error("expected error when end precedes start")
	}
	if _, err := Range("not-a-date", "2025-03-10", time.UTC); err == nil {
		t.Error("expected error for bad start date")
	}
	if _, err := Range("2025-03-10", "10/03/2025", time.UTC); err == nil {
		t.Error("expected error for bad end date")
	}
}
