package util

import (
	"testing"
	"time"
)

func TestFormatDay(t *testing.T) {
	ts := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	if got := FormatDay(ts); got != "2024-03-10" {
		t.Fatalf("unexpected day %s", got)
	}
}

func TestParseDay(t *testing.T) {
	got, ok := ParseDay("2024-02-04")
	if !ok {
		t.Fatalf("expected ok")
	}
	if FormatDay(got) != "2024-02-04" {
		t.Fatalf("round trip mismatch: %v", got)
	}
	if _, ok := ParseDay("04/02/2024"); ok {
		t.Fatalf("expected failure for non-ISO date")
	}
}

func TestDayWindow(t *testing.T) {
	end := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	start, stop := DayWindow(end, 35)
	if FormatDay(start) != "2024-02-04" {
		t.Fatalf("unexpected start %v", start)
	}
	if FormatDay(stop) != "2024-03-10" {
		t.Fatalf("unexpected end %v", stop)
	}
}
