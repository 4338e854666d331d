package refdata

// Fallback values substituted when a provider call fails. Spot values
// are units of currency per 1 USD, already normalized. Updated manually
// when markets move materially.

var spotFallbacks = map[string]float64{
	"EUR": 0.9200,
	"JPY": 149.5000,
	"GBP": 0.7900,
	"CHF": 0.8800,
	"AUD": 1.5200,
	"NZD": 1.6500,
	"CAD": 1.3600,
	"NOK": 10.6500,
	"DKK": 6.8700,
	"PLN": 3.9800,
	"MXN": 17.1000,
}

var rateFallbacks = map[string]float64{
	"EUR": 3.25,
	"JPY": 0.25,
	"GBP": 4.50,
	"CHF": 1.00,
	"AUD": 4.10,
	"NZD": 4.25,
	"CAD": 3.25,
	"NOK": 4.25,
	"DKK": 3.10,
	"PLN": 5.25,
	"MXN": 10.50,
}

var volFallbacks = map[string]float64{
	"EUR": 7.50,
	"JPY": 10.20,
	"GBP": 8.10,
	"CHF": 7.80,
	"AUD": 10.50,
	"NZD": 11.00,
	"CAD": 6.80,
	"NOK": 11.50,
	"DKK": 7.40,
	"PLN": 10.80,
	"MXN": 13.50,
}

// SpotFallback returns the fallback spot for a code.
func SpotFallback(code string) (float64, bool) {
	v, ok := spotFallbacks[code]
	return v, ok
}

// RateFallback returns the fallback policy rate for a code. Codes
// without an entry fall back to the reference rate instead.
func RateFallback(code string) (float64, bool) {
	v, ok := rateFallbacks[code]
	return v, ok
}

// VolFallback returns the fallback volatility for a code.
func VolFallback(code string) (float64, bool) {
	v, ok := volFallbacks[code]
	return v, ok
}
