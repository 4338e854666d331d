// Package refdata holds static reference data for tracked currencies:
// definitions, pegged spreads and spots, historical carry/vol ratios,
// and per-currency fallback values used when providers fail.
package refdata

import "FXLens/internal/domain/models"

// ReferenceSeries is the USD policy-rate series used as the carry base.
const ReferenceSeries = "FEDFUNDS"

// ReferenceRateFallback substitutes for the reference rate when the
// provider is unavailable.
const ReferenceRateFallback = 3.75

// PeggedVolatility is the structural near-zero volatility assigned to
// pegged currencies. Never computed from history.
const PeggedVolatility = 0.8

// Currencies lists every tracked currency. GCC currencies have no
// policy-rate series; their rate is the reference rate plus Spread and
// their spot is a fixed constant.
var Currencies = []models.CurrencyDefinition{
	{Code: "EUR", Name: "Euro", Group: models.GroupG10, Series: "ECBDFR", Quote: models.QuoteUSDPerUnit},
	{Code: "JPY", Name: "Japanese Yen", Group: models.GroupG10, Series: "IRSTCI01JPM156N", Quote: models.QuotePerUSD},
	{Code: "GBP", Name: "British Pound", Group: models.GroupG10, Series: "BOEBR", Quote: models.QuoteUSDPerUnit},
	{Code: "CHF", Name: "Swiss Franc", Group: models.GroupG10, Series: "SNBPOLFCIR", Quote: models.QuoteUSDPerUnit},
	{Code: "AUD", Name: "Australian Dollar", Group: models.GroupG10, Series: "RBATCTR", Quote: models.QuoteUSDPerUnit},
	{Code: "NZD", Name: "New Zealand Dollar", Group: models.GroupG10, Series: "RBNZOCR", Quote: models.QuoteUSDPerUnit},
	{Code: "CAD", Name: "Canadian Dollar", Group: models.GroupG10, Series: "CAPCBEPCBREPO", Quote: models.QuotePerUSD},
	{Code: "NOK", Name: "Norwegian Krone", Group: models.GroupEurope, Series: "IRSTCI01NOM156N", Quote: models.QuotePerUSD},
	{Code: "DKK", Name: "Danish Krone", Group: models.GroupEurope, Series: "IRSTCI01DKM156N", Quote: models.QuotePerUSD},
	{Code: "PLN", Name: "Polish Zloty", Group: models.GroupEurope, Series: "IRSTCI01PLM156N", Quote: models.QuotePerUSD},
	{Code: "MXN", Name: "Mexican Peso", Group: models.GroupEM, Series: "IRSTCI01MXM156N", Quote: models.QuotePerUSD},
	{Code: "SAR", Name: "Saudi Riyal", Group: models.GroupGCC, Quote: models.QuotePerUSD, Spread: 1.00, Spot: 3.7500},
	{Code: "AED", Name: "UAE Dirham", Group: models.GroupGCC, Quote: models.QuotePerUSD, Spread: -0.10, Spot: 3.6725},
	{Code: "OMR", Name: "Omani Rial", Group: models.GroupGCC, Quote: models.QuotePerUSD, Spread: 0.50, Spot: 0.3850},
	{Code: "KWD", Name: "Kuwaiti Dinar", Group: models.GroupGCC, Quote: models.QuotePerUSD, Spread: 0.00, Spot: 0.3075},
	{Code: "QAR", Name: "Qatari Riyal", Group: models.GroupGCC, Quote: models.QuotePerUSD, Spread: 0.60, Spot: 3.6400},
	{Code: "BHD", Name: "Bahraini Dinar", Group: models.GroupGCC, Quote: models.QuotePerUSD, Spread: 1.00, Spot: 0.3770},
}

// ByCode returns the definition for a code, if tracked.
func ByCode(code string) (models.CurrencyDefinition, bool) {
	for _, c := range Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return models.CurrencyDefinition{}, false
}

// FloatingCodes returns codes of all currencies with a live policy
// series, in definition order.
func FloatingCodes() []string {
	codes := make([]string, 0, len(Currencies))
	for _, c := range Currencies {
		if !c.Pegged() {
			codes = append(codes, c.Code)
		}
	}
	return codes
}
