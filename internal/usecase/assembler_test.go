package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FXLens/internal/domain/models"
	dservice "FXLens/internal/domain/service"
	"FXLens/internal/refdata"
	"FXLens/pkg/logger"
)

type fakePolicy struct {
	rates   map[string]float64
	missing map[string]bool
	errs    map[string]error
	calls   []string
}

func (f *fakePolicy) LatestRate(_ context.Context, series string) (float64, bool, error) {
	f.calls = append(f.calls, series)
	if err, ok := f.errs[series]; ok {
		return 0, false, err
	}
	if f.missing[series] {
		return 0, false, nil
	}
	rate, ok := f.rates[series]
	return rate, ok, nil
}

type fakeSpot struct {
	current    map[string]float64
	currentErr error
	histories  map[string][]dservice.DatedRate
	histErrs   map[string]error
}

func (f *fakeSpot) Current(_ context.Context, _ []string) (map[string]float64, error) {
	if f.currentErr != nil {
		return nil, f.currentErr
	}
	return f.current, nil
}

func (f *fakeSpot) History(_ context.Context, code string, _, _ time.Time) ([]dservice.DatedRate, error) {
	if err, ok := f.histErrs[code]; ok {
		return nil, err
	}
	return f.histories[code], nil
}

type noopMetrics struct{}

func (noopMetrics) RecordFetchCycle(string)            {}
func (noopMetrics) RecordProviderError(string)         {}
func (noopMetrics) RecordFallback(string)              {}
func (noopMetrics) RecordCarry(string, float64)        {}
func (noopMetrics) RecordVolatility(string, float64)   {}
func (noopMetrics) RecordCycleDuration(string, float64) {}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return log
}

func datedSeries(prices ...float64) []dservice.DatedRate {
	base := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	out := make([]dservice.DatedRate, 0, len(prices))
	for i, p := range prices {
		out = append(out, dservice.DatedRate{Date: base.AddDate(0, 0, i), Rate: p})
	}
	return out
}

// happyProviders returns fakes where every floating currency resolves
// cleanly: FEDFUNDS at 3.75, each policy series at 2.15, a live spot
// and a 6-point history per code.
func happyProviders() (*fakePolicy, *fakeSpot) {
	policy := &fakePolicy{rates: map[string]float64{refdata.ReferenceSeries: 3.75}}
	spot := &fakeSpot{
		current:   make(map[string]float64),
		histories: make(map[string][]dservice.DatedRate),
	}
	for _, def := range refdata.Currencies {
		if def.Pegged() {
			continue
		}
		policy.rates[def.Series] = 2.15
		spot.current[def.Code] = 1.5
		spot.histories[def.Code] = datedSeries(1.00, 1.01, 1.02, 1.01, 1.00, 1.02)
	}
	return policy, spot
}

func newTestAssembler(t *testing.T, policy *fakePolicy, spot *fakeSpot) *Assembler {
	t.Helper()
	return NewAssembler(policy, spot, noopMetrics{}, testLogger(t), AssemblerConfig{})
}

func TestAssembleProducesOneRowPerCurrency(t *testing.T) {
	policy, spot := happyProviders()
	snap, _ := newTestAssembler(t, policy, spot).Assemble(context.Background())

	require.Len(t, snap.Rows, len(refdata.Currencies))
	assert.False(t, snap.Degraded)
	assert.Empty(t, snap.Fallbacks)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestAssemblePeggedNeverQueriesPolicyProvider(t *testing.T) {
	policy, spot := happyProviders()
	snap, _ := newTestAssembler(t, policy, spot).Assemble(context.Background())

	for _, series := range policy.calls {
		assert.NotEmpty(t, series, "policy provider queried with empty series")
	}
	// one reference call plus one per floating currency
	assert.Len(t, policy.calls, 1+len(refdata.FloatingCodes()))

	for _, row := range snap.Rows {
		def, ok := refdata.ByCode(row.Code)
		require.True(t, ok)
		if !def.Pegged() {
			continue
		}
		assert.Equal(t, 3.75+def.Spread, row.PolicyRate, row.Code)
		assert.Equal(t, def.Spot, row.Spot, row.Code)
		require.NotNil(t, row.Vol1M, row.Code)
		assert.Equal(t, refdata.PeggedVolatility, *row.Vol1M, row.Code)
	}
}

func TestAssembleCarry(t *testing.T) {
	policy, spot := happyProviders()
	snap, _ := newTestAssembler(t, policy, spot).Assemble(context.Background())

	for _, row := range snap.Rows {
		def, _ := refdata.ByCode(row.Code)
		if def.Pegged() {
			continue
		}
		// policy 2.15 vs reference 3.75
		assert.Equal(t, -1.60, row.Carry, row.Code)
	}
}

func TestAssembleRatio(t *testing.T) {
	policy, spot := happyProviders()
	snap, _ := newTestAssembler(t, policy, spot).Assemble(context.Background())

	for _, row := range snap.Rows {
		require.NotNil(t, row.Vol1M, row.Code)
		require.NotNil(t, row.RatioNow, row.Code)
		want := round3(row.Carry / *row.Vol1M)
		assert.Equal(t, want, *row.RatioNow, row.Code)
	}
}

func TestAssembleRatioNilWhenVolZero(t *testing.T) {
	policy, spot := happyProviders()
	spot.histories["JPY"] = datedSeries(150, 150, 150, 150, 150, 150)
	snap, _ := newTestAssembler(t, policy, spot).Assemble(context.Background())

	for _, row := range snap.Rows {
		if row.Code != "JPY" {
			continue
		}
		require.NotNil(t, row.Vol1M)
		assert.Equal(t, 0.0, *row.Vol1M)
		assert.Nil(t, row.RatioNow)
	}
	assert.False(t, snap.Degraded, "flat history is not a fallback")
}

func TestAssembleRatioNilWhenHistoryShort(t *testing.T) {
	policy, spot := happyProviders()
	spot.histories["JPY"] = datedSeries(150, 151, 152)
	snap, _ := newTestAssembler(t, policy, spot).Assemble(context.Background())

	for _, row := range snap.Rows {
		if row.Code != "JPY" {
			continue
		}
		assert.Nil(t, row.Vol1M)
		assert.Nil(t, row.RatioNow)
	}
	assert.False(t, snap.Degraded, "insufficient history is not a fallback")
}

func TestAssembleVolatilityFromHistory(t *testing.T) {
	policy, spot := happyProviders()
	snap, _ := newTestAssembler(t, policy, spot).Assemble(context.Background())

	for _, row := range snap.Rows {
		switch row.Code {
		case "JPY":
			// per-USD quote, history used as-is
			require.NotNil(t, row.Vol1M)
			assert.InDelta(t, 21.09, *row.Vol1M, 1e-9)
		case "EUR":
			// USD-per-unit quote, history inverted before the estimator
			require.NotNil(t, row.Vol1M)
			assert.InDelta(t, 21.08, *row.Vol1M, 1e-9)
		}
	}
}

func TestAssembleSpotInversion(t *testing.T) {
	policy, spot := happyProviders()
	spot.current["EUR"] = 1.0870 // quoted USD-per-unit, must invert
	spot.current["JPY"] = 149.5  // quoted per-USD, kept as-is
	snap, _ := newTestAssembler(t, policy, spot).Assemble(context.Background())

	for _, row := range snap.Rows {
		switch row.Code {
		case "EUR":
			assert.InDelta(t, 0.9200, row.Spot, 0.0001)
		case "JPY":
			assert.Equal(t, 149.5, row.Spot)
		}
	}
}

func TestAssembleReferenceFallback(t *testing.T) {
	policy, spot := happyProviders()
	policy.errs = map[string]error{refdata.ReferenceSeries: errors.New("timeout")}
	snap, _ := newTestAssembler(t, policy, spot).Assemble(context.Background())

	assert.True(t, snap.Degraded)
	require.NotEmpty(t, snap.Fallbacks)
	assert.Equal(t, models.Fallback{Code: "USD", Field: "reference", Reason: "timeout"}, snap.Fallbacks[0])

	for _, row := range snap.Rows {
		assert.Equal(t, refdata.ReferenceRateFallback, row.ReferenceRate, row.Code)
		def, _ := refdata.ByCode(row.Code)
		if def.Pegged() {
			assert.Equal(t, refdata.ReferenceRateFallback+def.Spread, row.PolicyRate, row.Code)
		}
	}
}

func TestAssembleSingleHistoryFailureIsolated(t *testing.T) {
	policy, spot := happyProviders()
	spot.histErrs = map[string]error{"EUR": errors.New("connection refused")}
	snap, _ := newTestAssembler(t, policy, spot).Assemble(context.Background())

	require.Len(t, snap.Rows, len(refdata.Currencies))
	assert.True(t, snap.Degraded)

	fallbackVol, _ := refdata.VolFallback("EUR")
	for _, row := range snap.Rows {
		def, _ := refdata.ByCode(row.Code)
		if def.Pegged() {
			continue
		}
		require.NotNil(t, row.Vol1M, row.Code)
		if row.Code == "EUR" {
			assert.Equal(t, fallbackVol, *row.Vol1M)
		} else {
			assert.Greater(t, *row.Vol1M, 0.0, row.Code)
		}
	}

	require.Len(t, snap.Fallbacks, 1)
	assert.Equal(t, "EUR", snap.Fallbacks[0].Code)
	assert.Equal(t, "vol", snap.Fallbacks[0].Field)
}

func TestAssembleSpotBatchFailureFallsBackPerCurrency(t *testing.T) {
	policy, spot := happyProviders()
	spot.currentErr = errors.New("503")
	snap, _ := newTestAssembler(t, policy, spot).Assemble(context.Background())

	assert.True(t, snap.Degraded)
	for _, row := range snap.Rows {
		def, _ := refdata.ByCode(row.Code)
		if def.Pegged() {
			assert.Equal(t, def.Spot, row.Spot, row.Code)
			continue
		}
		fb, ok := refdata.SpotFallback(row.Code)
		require.True(t, ok, row.Code)
		assert.Equal(t, fb, row.Spot, row.Code)
	}
}

func TestAssembleMissingRateUsesFallbackLiteral(t *testing.T) {
	policy, spot := happyProviders()
	eur, _ := refdata.ByCode("EUR")
	policy.missing = map[string]bool{eur.Series: true}
	snap, _ := newTestAssembler(t, policy, spot).Assemble(context.Background())

	fb, _ := refdata.RateFallback("EUR")
	for _, row := range snap.Rows {
		if row.Code == "EUR" {
			assert.Equal(t, fb, row.PolicyRate)
		}
	}
	assert.True(t, snap.Degraded)
}

func TestAssembleCollectsSpotObservations(t *testing.T) {
	policy, spot := happyProviders()
	snap, obs := newTestAssembler(t, policy, spot).Assemble(context.Background())

	require.NotNil(t, snap)
	// 6 history points per floating currency, raw provider rates
	assert.Len(t, obs, 6*len(refdata.FloatingCodes()))
	for _, o := range obs {
		assert.NotEmpty(t, o.Code)
		assert.Greater(t, o.Rate, 0.0)
	}
}

func TestAssembleAttachesHistRatios(t *testing.T) {
	policy, spot := happyProviders()
	snap, _ := newTestAssembler(t, policy, spot).Assemble(context.Background())

	for _, row := range snap.Rows {
		hist, ok := refdata.HistRatiosFor(row.Code)
		require.True(t, ok, row.Code)
		require.NotNil(t, row.Hist1Y, row.Code)
		assert.Equal(t, hist.Y1, *row.Hist1Y)
		assert.Equal(t, hist.Y3, *row.Hist3Y)
		assert.Equal(t, hist.Y5, *row.Hist5Y)
		assert.Equal(t, hist.Y10, *row.Hist10Y)
	}
}
