package models

// Group classifies a currency bucket.
type Group string

const (
	GroupBase   Group = "Base"
	GroupG10    Group = "G10"
	GroupEurope Group = "Europe"
	GroupEM     Group = "EM"
	GroupGCC    Group = "GCC"
)

// Quote is the provider quoting convention for a currency pair.
type Quote string

const (
	// QuotePerUSD means the provider returns units of currency per 1 USD.
	QuotePerUSD Quote = "per_usd"
	// QuoteUSDPerUnit means the provider returns USD per 1 unit; the
	// value must be inverted before storage.
	QuoteUSDPerUnit Quote = "usd_per_unit"
)

// CurrencyDefinition is immutable reference data for one tracked currency.
type CurrencyDefinition struct {
	Code   string // 3-letter identifier, unique
	Name   string
	Group  Group
	Series string // policy-rate series identifier; empty = USD-pegged
	Quote  Quote
	Spread float64 // fixed spread over reference rate, pegged only
	Spot   float64 // fixed spot constant, pegged only
}

// Pegged reports whether the currency tracks the reference rate with a
// fixed spread instead of a live policy-rate series.
func (c CurrencyDefinition) Pegged() bool {
	return c.Series == ""
}
