package repository

import (
	"context"
	"time"

	"FXLens/internal/domain/models"
)

// SnapshotStore persists assembled row sets and raw spot observations.
// Schema creation happens at connection time, not through the store.
type SnapshotStore interface {
	Append(ctx context.Context, snap *models.Snapshot) error
	Latest(ctx context.Context) (*models.Snapshot, error)
	LatestFetchTime(ctx context.Context) (time.Time, error)
	AppendSpotHistory(ctx context.Context, obs []models.SpotObservation) error
	SpotHistory(ctx context.Context, code string, from, to time.Time) ([]models.SpotObservation, error)
	Health(ctx context.Context) error
	Close() error
}

// Metrics records operational counters for the fetch pipeline.
type Metrics interface {
	RecordFetchCycle(result string)
	RecordProviderError(provider string)
	RecordFallback(field string)
	RecordCarry(code string, carry float64)
	RecordVolatility(code string, vol float64)
	RecordCycleDuration(trigger string, seconds float64)
}
