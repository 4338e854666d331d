package service

import (
	"context"
	"time"
)

// PolicyRateProvider resolves the most recent observation of a named
// policy-rate series. A missing observation returns (0, false, nil).
type PolicyRateProvider interface {
	LatestRate(ctx context.Context, series string) (float64, bool, error)
}

// SpotRateProvider resolves current and historical spot rates against a
// USD base. Current returns a code->rate map for a batch of codes;
// History returns a date-ordered series for one code.
type SpotRateProvider interface {
	Current(ctx context.Context, codes []string) (map[string]float64, error)
	History(ctx context.Context, code string, from, to time.Time) ([]DatedRate, error)
}

// DatedRate is one point of a spot-rate history.
type DatedRate struct {
	Date time.Time
	Rate float64
}
