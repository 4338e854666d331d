package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FXLens/internal/domain/models"
	drepo "FXLens/internal/domain/repository"
	"FXLens/pkg/cache"
)

type fakeStore struct {
	snapshots []*models.Snapshot
	obs       []models.SpotObservation
}

func (f *fakeStore) Append(_ context.Context, snap *models.Snapshot) error {
	f.snapshots = append(f.snapshots, snap)
	return nil
}

func (f *fakeStore) Latest(context.Context) (*models.Snapshot, error) {
	if len(f.snapshots) == 0 {
		return nil, nil
	}
	return f.snapshots[len(f.snapshots)-1], nil
}

func (f *fakeStore) LatestFetchTime(context.Context) (time.Time, error) {
	if len(f.snapshots) == 0 {
		return time.Time{}, nil
	}
	return f.snapshots[len(f.snapshots)-1].FetchedAt, nil
}

func (f *fakeStore) AppendSpotHistory(_ context.Context, obs []models.SpotObservation) error {
	f.obs = append(f.obs, obs...)
	return nil
}

func (f *fakeStore) SpotHistory(context.Context, string, time.Time, time.Time) ([]models.SpotObservation, error) {
	return nil, nil
}

func (f *fakeStore) Health(context.Context) error { return nil }
func (f *fakeStore) Close() error                 { return nil }

func newTestRefresher(t *testing.T, store *fakeStore) (*Refresher, *fakePolicy) {
	t.Helper()
	policy, spot := happyProviders()
	asm := newTestAssembler(t, policy, spot)
	r := NewRefresher(asm, storeOrNil(store), cache.NewMemoryCache(), nil, nil, noopMetrics{}, testLogger(t), RefresherConfig{
		Interval: time.Hour,
		CacheTTL: time.Hour,
	})
	return r, policy
}

// storeOrNil avoids handing a typed nil to the interface field.
func storeOrNil(s *fakeStore) drepo.SnapshotStore {
	if s == nil {
		return nil
	}
	return s
}

func TestSnapshotNoDataYet(t *testing.T) {
	r, _ := newTestRefresher(t, nil)
	_, err := r.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRunCyclePopulatesCacheAndStore(t *testing.T) {
	store := &fakeStore{}
	r, _ := newTestRefresher(t, store)

	r.runCycle(context.Background(), "test")

	require.Len(t, store.snapshots, 1)
	assert.NotEmpty(t, store.obs)

	snap, err := r.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Rows, len(store.snapshots[0].Rows))
}

func TestSnapshotFallsThroughToStore(t *testing.T) {
	store := &fakeStore{}
	r, _ := newTestRefresher(t, store)

	r.runCycle(context.Background(), "test")
	r.Invalidate(context.Background())

	snap, err := r.Snapshot(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, snap.Rows)
}

func TestInvalidateWithoutStoreForcesNoData(t *testing.T) {
	r, _ := newTestRefresher(t, nil)

	r.runCycle(context.Background(), "test")
	_, err := r.Snapshot(context.Background())
	require.NoError(t, err)

	r.Invalidate(context.Background())
	_, err = r.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRunCycleSkipsWhileBusy(t *testing.T) {
	r, policy := newTestRefresher(t, nil)

	r.busy.Store(true)
	r.runCycle(context.Background(), "test")
	assert.Empty(t, policy.calls, "cycle ran while another was in flight")

	r.busy.Store(false)
	r.runCycle(context.Background(), "test")
	assert.NotEmpty(t, policy.calls)
}

func TestMemoryBackendCacheOutlivesInterval(t *testing.T) {
	policy, spot := happyProviders()
	asm := newTestAssembler(t, policy, spot)
	r := NewRefresher(asm, nil, cache.NewMemoryCache(), nil, nil, noopMetrics{}, testLogger(t), RefresherConfig{
		Interval: time.Hour,
		CacheTTL: 50 * time.Millisecond,
	})

	// Without a store, a TTL shorter than the interval would leave the
	// read path empty between cycles.
	require.GreaterOrEqual(t, r.cfg.CacheTTL, r.cfg.Interval)

	r.runCycle(context.Background(), "test")
	time.Sleep(100 * time.Millisecond)

	snap, err := r.Snapshot(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, snap.Rows)
}

func TestTriggerWhileBusyIsNoOp(t *testing.T) {
	r, _ := newTestRefresher(t, nil)

	r.busy.Store(true)
	r.Trigger()
	assert.Empty(t, r.trigger, "trigger queued during an in-flight cycle")

	r.busy.Store(false)
	r.Trigger()
	assert.Len(t, r.trigger, 1)
}

func TestTriggerDoesNotBlock(t *testing.T) {
	r, _ := newTestRefresher(t, nil)

	done := make(chan struct{})
	go func() {
		r.Trigger()
		r.Trigger()
		r.Trigger()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Trigger blocked")
	}
}
