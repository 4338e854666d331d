//go:build integration

package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FXLens/internal/domain/models"
	"FXLens/pkg/clickhouse"
)

// Needs a reachable ClickHouse (CLICKHOUSE_HOST, default localhost:9000).
// Run with: go test -tags integration ./internal/repository/...

func newIntegrationStore(t *testing.T) (*clickhouse.Client, string) {
	t.Helper()

	host := os.Getenv("CLICKHOUSE_HOST")
	if host == "" {
		host = "localhost"
	}

	client, err := clickhouse.NewClient(
		clickhouse.WithHost(host),
		clickhouse.WithPort(9000),
		clickhouse.WithDatabase("default"),
		clickhouse.WithCredentials("default", ""),
	)
	if err != nil {
		t.Skipf("clickhouse unavailable: %v", err)
	}

	database := fmt.Sprintf("fxlens_test_%d", time.Now().UnixNano())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, client.InitSchema(ctx, SchemaStatements(database)))

	t.Cleanup(func() {
		_, _ = client.DB().ExecContext(context.Background(), "DROP DATABASE IF EXISTS "+database)
		_ = client.Close()
	})
	return client, database
}

func cycleSnapshot(fetchedAt time.Time, carry float64) *models.Snapshot {
	vol := 9.5
	ratio := carry / vol
	return &models.Snapshot{
		FetchedAt: fetchedAt,
		Rows: []models.Row{
			{Code: "EUR", Name: "Euro", Group: models.GroupG10, Spot: 0.92,
				PolicyRate: 2.15, ReferenceRate: 3.75, Carry: carry, Vol1M: &vol, RatioNow: &ratio},
			{Code: "JPY", Name: "Japanese Yen", Group: models.GroupG10, Spot: 149.5,
				PolicyRate: 0.25, ReferenceRate: 3.75, Carry: carry - 1, Vol1M: nil, RatioNow: nil},
		},
	}
}

func TestLatestReturnsMaxFetchTimeRowPerCode(t *testing.T) {
	client, database := newIntegrationStore(t)
	store := NewClickHouseSnapshotStore(client.DB(), database)
	ctx := context.Background()

	t1 := time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)
	t2 := t1.Add(6 * time.Hour)

	require.NoError(t, store.Append(ctx, cycleSnapshot(t1, -1.60)))
	require.NoError(t, store.Append(ctx, cycleSnapshot(t2, -1.35)))

	snap, err := store.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)

	// One row per code, each from the second cycle only.
	require.Len(t, snap.Rows, 2)
	seen := map[string]models.Row{}
	for _, r := range snap.Rows {
		_, dup := seen[r.Code]
		require.False(t, dup, "code %s returned twice", r.Code)
		seen[r.Code] = r
	}
	assert.InDelta(t, -1.35, seen["EUR"].Carry, 1e-9)
	assert.InDelta(t, -2.35, seen["JPY"].Carry, 1e-9)
	assert.True(t, snap.FetchedAt.Equal(t2), "expected %v, got %v", t2, snap.FetchedAt)

	// Nullable columns survive the round trip.
	require.NotNil(t, seen["EUR"].Vol1M)
	assert.InDelta(t, 9.5, *seen["EUR"].Vol1M, 1e-9)
	assert.Nil(t, seen["JPY"].Vol1M)

	ts, err := store.LatestFetchTime(ctx)
	require.NoError(t, err)
	assert.True(t, ts.Equal(t2))
}

func TestSpotHistoryDeduplicatesByDateAndCode(t *testing.T) {
	client, database := newIntegrationStore(t)
	store := NewClickHouseSnapshotStore(client.DB(), database)
	ctx := context.Background()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.AppendSpotHistory(ctx, []models.SpotObservation{
		{Date: day, Code: "EUR", Rate: 1.0870},
	}))
	require.NoError(t, store.AppendSpotHistory(ctx, []models.SpotObservation{
		{Date: day, Code: "EUR", Rate: 1.0902},
	}))

	obs, err := store.SpotHistory(ctx, "EUR", day.AddDate(0, 0, -1), day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, obs, 1, "duplicate (date, code) insert must collapse")
}
