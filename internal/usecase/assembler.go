package usecase

import (
	"context"
	"time"

	"FXLens/internal/domain/models"
	drepo "FXLens/internal/domain/repository"
	dservice "FXLens/internal/domain/service"
	"FXLens/internal/refdata"
	"FXLens/pkg/logger"
	"FXLens/pkg/util"
)

// AssemblerConfig holds tunables for snapshot assembly.
type AssemblerConfig struct {
	ReferenceSeries string
	HistoryDays     int
}

// Assembler produces one Row per tracked currency per fetch cycle.
// Every provider failure degrades to a fallback value; assembly itself
// never fails.
type Assembler struct {
	policy     dservice.PolicyRateProvider
	spot       dservice.SpotRateProvider
	metrics    drepo.Metrics
	log        *logger.Logger
	currencies []models.CurrencyDefinition
	cfg        AssemblerConfig
}

// NewAssembler creates a snapshot assembler over the tracked currency set.
func NewAssembler(
	policy dservice.PolicyRateProvider,
	spot dservice.SpotRateProvider,
	metrics drepo.Metrics,
	log *logger.Logger,
	cfg AssemblerConfig,
) *Assembler {
	if cfg.ReferenceSeries == "" {
		cfg.ReferenceSeries = refdata.ReferenceSeries
	}
	if cfg.HistoryDays <= 0 {
		cfg.HistoryDays = 35
	}
	return &Assembler{
		policy:     policy,
		spot:       spot,
		metrics:    metrics,
		log:        log,
		currencies: refdata.Currencies,
		cfg:        cfg,
	}
}

// Assemble runs one full fetch cycle. It returns the snapshot and the
// raw spot observations collected along the way for persistence.
func (a *Assembler) Assemble(ctx context.Context) (*models.Snapshot, []models.SpotObservation) {
	snap := &models.Snapshot{
		FetchedAt: time.Now().UTC(),
		Rows:      make([]models.Row, 0, len(a.currencies)),
	}
	var observations []models.SpotObservation

	reference := a.resolveReference(ctx, snap)
	spotRates := a.fetchSpotBatch(ctx)

	for _, def := range a.currencies {
		row := models.Row{
			Code:          def.Code,
			Name:          def.Name,
			Group:         def.Group,
			ReferenceRate: reference,
		}

		if def.Pegged() {
			row.Spot = def.Spot
			row.PolicyRate = reference + def.Spread
			vol := refdata.PeggedVolatility
			row.Vol1M = &vol
		} else {
			row.Spot = a.resolveSpot(def, spotRates, snap)
			row.PolicyRate = a.resolveRate(ctx, def, reference, snap)
			vol, obs := a.resolveVolatility(ctx, def, snap)
			row.Vol1M = vol
			observations = append(observations, obs...)
		}

		row.Carry = round2(row.PolicyRate - reference)
		if row.Vol1M != nil && *row.Vol1M > 0 {
			ratio := round3(row.Carry / *row.Vol1M)
			row.RatioNow = &ratio
		}

		if hist, ok := refdata.HistRatiosFor(def.Code); ok {
			y1, y3, y5, y10 := hist.Y1, hist.Y3, hist.Y5, hist.Y10
			row.Hist1Y, row.Hist3Y, row.Hist5Y, row.Hist10Y = &y1, &y3, &y5, &y10
		}

		a.metrics.RecordCarry(def.Code, row.Carry)
		if row.Vol1M != nil {
			a.metrics.RecordVolatility(def.Code, *row.Vol1M)
		}
		snap.Rows = append(snap.Rows, row)
	}

	snap.Degraded = len(snap.Fallbacks) > 0
	return snap, observations
}

func (a *Assembler) resolveReference(ctx context.Context, snap *models.Snapshot) float64 {
	rate, ok, err := a.policy.LatestRate(ctx, a.cfg.ReferenceSeries)
	if err != nil || !ok {
		a.markFallback(snap, "USD", "reference", err)
		return refdata.ReferenceRateFallback
	}
	return rate
}

// fetchSpotBatch pulls spot rates for all floating currencies in one
// call. A batch failure is absorbed here; each currency then records
// its own spot fallback.
func (a *Assembler) fetchSpotBatch(ctx context.Context) map[string]float64 {
	rates, err := a.spot.Current(ctx, refdata.FloatingCodes())
	if err != nil {
		a.metrics.RecordProviderError("spot")
		a.log.Warn("spot batch fetch failed", logger.Error(err))
		return map[string]float64{}
	}
	return rates
}

func (a *Assembler) resolveSpot(def models.CurrencyDefinition, rates map[string]float64, snap *models.Snapshot) float64 {
	raw, ok := rates[def.Code]
	if !ok || raw <= 0 {
		a.markFallback(snap, def.Code, "spot", nil)
		fb, _ := refdata.SpotFallback(def.Code)
		return fb
	}
	return normalizeSpot(def, raw)
}

// normalizeSpot converts a provider rate to units of currency per
// 1 USD. Pairs conventionally quoted as USD-per-unit are inverted.
func normalizeSpot(def models.CurrencyDefinition, raw float64) float64 {
	if def.Quote == models.QuoteUSDPerUnit {
		return round4(1 / raw)
	}
	return raw
}

func (a *Assembler) resolveRate(ctx context.Context, def models.CurrencyDefinition, reference float64, snap *models.Snapshot) float64 {
	rate, ok, err := a.policy.LatestRate(ctx, def.Series)
	if err == nil && ok {
		return rate
	}
	if err != nil {
		a.metrics.RecordProviderError("policy")
	}
	a.markFallback(snap, def.Code, "rate", err)
	if fb, ok := refdata.RateFallback(def.Code); ok {
		return fb
	}
	return reference
}

// resolveVolatility fetches the trailing price history, normalizes it
// the same way as spot, and runs the estimator. A provider failure
// yields the per-currency fallback; a short-but-successful history
// yields nil (insufficient data, not degraded).
func (a *Assembler) resolveVolatility(ctx context.Context, def models.CurrencyDefinition, snap *models.Snapshot) (*float64, []models.SpotObservation) {
	start, end := util.DayWindow(time.Now(), a.cfg.HistoryDays)

	history, err := a.spot.History(ctx, def.Code, start, end)
	if err != nil {
		a.metrics.RecordProviderError("spot")
		a.markFallback(snap, def.Code, "vol", err)
		if fb, ok := refdata.VolFallback(def.Code); ok {
			return &fb, nil
		}
		return nil, nil
	}

	obs := make([]models.SpotObservation, 0, len(history))
	prices := make([]float64, 0, len(history))
	for _, point := range history {
		if point.Rate <= 0 {
			continue
		}
		obs = append(obs, models.SpotObservation{Date: point.Date, Code: def.Code, Rate: point.Rate})
		prices = append(prices, normalizeSpot(def, point.Rate))
	}

	return RealizedVolatility(prices), obs
}

func (a *Assembler) markFallback(snap *models.Snapshot, code, field string, err error) {
	reason := "no value"
	if err != nil {
		reason = err.Error()
	}
	snap.Fallbacks = append(snap.Fallbacks, models.Fallback{Code: code, Field: field, Reason: reason})
	a.metrics.RecordFallback(field)
	a.log.Warn("fallback substituted",
		logger.String("code", code),
		logger.String("field", field),
		logger.String("reason", reason),
	)
}
