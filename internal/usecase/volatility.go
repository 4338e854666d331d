package usecase

import "math"

const (
	// tradingDaysPerYear annualizes daily return variance.
	tradingDaysPerYear = 252

	// minVolObservations is the minimum price count for a meaningful
	// volatility estimate.
	minVolObservations = 5
)

// RealizedVolatility computes annualized 1M realized volatility from a
// chronologically ordered positive price series, as a percentage
// rounded to 2 decimals.
//
// Fewer than 5 observations returns nil (insufficient data, not an
// error). An all-identical series returns 0.0, a valid "no volatility"
// answer. Non-positive prices are the caller's responsibility to
// filter.
func RealizedVolatility(prices []float64) *float64 {
	if len(prices) < minVolObservations {
		return nil
	}

	rets := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		rets = append(rets, math.Log(prices[i]/prices[i-1]))
	}

	mean := 0.0
	for _, r := range rets {
		mean += r
	}
	mean /= float64(len(rets))

	variance := 0.0
	for _, r := range rets {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(rets) - 1)

	vol := round2(math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear) * 100)
	return &vol
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
