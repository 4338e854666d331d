package models

import "time"

// Row holds one currency's derived metrics for a single fetch cycle.
type Row struct {
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Group         Group    `json:"group"`
	Spot          float64  `json:"spot"`           // units of currency per 1 USD, 4 decimals
	PolicyRate    float64  `json:"policy_rate"`    // percent
	ReferenceRate float64  `json:"reference_rate"` // USD policy rate at fetch time, percent
	Carry         float64  `json:"carry"`          // policy - reference, 2 decimals
	Vol1M         *float64 `json:"vol_1m"`         // annualized, percent, 2 decimals
	RatioNow      *float64 `json:"ratio_now"`      // carry/vol, 3 decimals
	Hist1Y        *float64 `json:"hist_1y"`
	Hist3Y        *float64 `json:"hist_3y"`
	Hist5Y        *float64 `json:"hist_5y"`
	Hist10Y       *float64 `json:"hist_10y"`
}

// Fallback records one substituted field during assembly.
type Fallback struct {
	Code   string `json:"code"`
	Field  string `json:"field"` // "spot", "rate", "vol", "reference"
	Reason string `json:"reason"`
}

// Snapshot is the full row set produced by one fetch cycle.
type Snapshot struct {
	FetchedAt time.Time  `json:"fetched_at"`
	Rows      []Row      `json:"rows"`
	Fallbacks []Fallback `json:"fallbacks,omitempty"`
	Degraded  bool       `json:"degraded"`
}

// FilterGroups returns a copy containing only rows in the given groups.
// An empty filter returns the snapshot unchanged.
func (s Snapshot) FilterGroups(groups []Group) Snapshot {
	if len(groups) == 0 {
		return s
	}
	want := make(map[Group]bool, len(groups))
	for _, g := range groups {
		want[g] = true
	}
	out := s
	out.Rows = make([]Row, 0, len(s.Rows))
	for _, r := range s.Rows {
		if want[r.Group] {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// SpotObservation is one raw per-date spot rate for a currency.
type SpotObservation struct {
	Date time.Time `json:"date"`
	Code string    `json:"code"`
	Rate float64   `json:"rate"`
}
