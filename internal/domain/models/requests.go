package models

import (
	"fmt"
	"strings"
)

// SnapshotRequest filters the snapshot view. Groups is a
// comma-separated list of group tags.
type SnapshotRequest struct {
	Groups string `query:"groups"`
}

// ParseGroups splits and validates the group filter.
func (r SnapshotRequest) ParseGroups() ([]Group, error) {
	if r.Groups == "" {
		return nil, nil
	}
	valid := map[Group]bool{
		GroupBase: true, GroupG10: true, GroupEurope: true, GroupEM: true, GroupGCC: true,
	}
	var out []Group
	for _, part := range strings.Split(r.Groups, ",") {
		g := Group(strings.TrimSpace(part))
		if g == "" {
			continue
		}
		if !valid[g] {
			return nil, fmt.Errorf("unknown group %q", g)
		}
		out = append(out, g)
	}
	return out, nil
}

// HistoryRequest asks for a currency's stored spot observations.
type HistoryRequest struct {
	Code string `param:"code" validate:"required,len=3,alpha"`
	Days int    `query:"days" default:"35" validate:"gt=0,lte=365"`
}

// NormalizedCode returns the currency code uppercased.
func (r HistoryRequest) NormalizedCode() string {
	return strings.ToUpper(r.Code)
}
