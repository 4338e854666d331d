package refdata

// HistRatios are carry/vol ratios over 1/3/5/10-year lookbacks,
// estimated offline from rate and vol archives. Static reference data,
// never recomputed at runtime.
type HistRatios struct {
	Y1, Y3, Y5, Y10 float64
}

var histRatios = map[string]HistRatios{
	"EUR": {-0.33, -0.20, -0.14, -0.07},
	"JPY": {-0.43, -0.36, -0.26, -0.19},
	"GBP": {0.00, -0.06, 0.00, -0.03},
	"CHF": {-0.63, -0.40, -0.49, -0.33},
	"AUD": {-0.05, -0.03, -0.02, 0.13},
	"NZD": {-0.03, 0.05, 0.06, 0.16},
	"CAD": {-0.06, 0.00, -0.03, 0.01},
	"NOK": {-0.05, -0.03, -0.08, 0.00},
	"DKK": {-0.86, -0.53, -0.43, -0.25},
	"PLN": {0.08, 0.26, 0.19, 0.11},
	"MXN": {0.41, 0.41, 0.38, 0.39},
	"SAR": {0.72, 0.52, 0.38, 0.25},
	"AED": {-0.08, -0.05, -0.04, -0.02},
	"OMR": {0.40, 0.32, 0.27, 0.18},
	"KWD": {0.05, 0.08, 0.12, 0.20},
	"QAR": {0.52, 0.40, 0.30, 0.20},
	"BHD": {0.72, 0.55, 0.42, 0.28},
}

// HistRatiosFor returns the historical ratios for a code. Missing codes
// return ok=false and all four values are treated as null.
func HistRatiosFor(code string) (HistRatios, bool) {
	r, ok := histRatios[code]
	return r, ok
}
