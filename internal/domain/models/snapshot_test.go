package models

import (
	"testing"
	"time"
)

func TestFilterGroupsEmptyReturnsAll(t *testing.T) {
	s := Snapshot{
		FetchedAt: time.Now(),
		Rows: []Row{
			{Code: "EUR", Group: GroupG10},
			{Code: "SAR", Group: GroupGCC},
		},
	}
	got := s.FilterGroups(nil)
	if len(got.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got.Rows))
	}
}

func TestFilterGroupsSubset(t *testing.T) {
	s := Snapshot{
		Rows: []Row{
			{Code: "EUR", Group: GroupG10},
			{Code: "NOK", Group: GroupEurope},
			{Code: "SAR", Group: GroupGCC},
		},
		Degraded: true,
	}
	got := s.FilterGroups([]Group{GroupG10, GroupGCC})
	if len(got.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got.Rows))
	}
	if got.Rows[0].Code != "EUR" || got.Rows[1].Code != "SAR" {
		t.Fatalf("unexpected rows: %+v", got.Rows)
	}
	if !got.Degraded {
		t.Fatal("degraded flag lost in filtering")
	}
}

func TestParseGroups(t *testing.T) {
	req := SnapshotRequest{Groups: "G10, EM"}
	groups, err := req.ParseGroups()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 2 || groups[0] != GroupG10 || groups[1] != GroupEM {
		t.Fatalf("unexpected groups: %v", groups)
	}
}

func TestParseGroupsEmpty(t *testing.T) {
	groups, err := SnapshotRequest{}.ParseGroups()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if groups != nil {
		t.Fatalf("expected nil, got %v", groups)
	}
}

func TestParseGroupsUnknown(t *testing.T) {
	if _, err := (SnapshotRequest{Groups: "G10,LATAM"}).ParseGroups(); err == nil {
		t.Fatal("expected error for unknown group")
	}
}

func TestPeggedDefinition(t *testing.T) {
	pegged := CurrencyDefinition{Code: "SAR", Spread: 1.0}
	if !pegged.Pegged() {
		t.Fatal("currency without series should be pegged")
	}
	floating := CurrencyDefinition{Code: "EUR", Series: "ECBDFR"}
	if floating.Pegged() {
		t.Fatal("currency with series should not be pegged")
	}
}
