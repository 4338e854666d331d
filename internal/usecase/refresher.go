package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"FXLens/internal/domain/models"
	drepo "FXLens/internal/domain/repository"
	"FXLens/pkg/cache"
	"FXLens/pkg/logger"
)

// ErrNoData signals that no snapshot has been assembled yet.
var ErrNoData = errors.New("no snapshot data yet")

var snapshotCacheKey = cache.GenerateKey("snapshot", "latest")

// SnapshotPublisher pushes completed snapshots to downstream consumers.
type SnapshotPublisher interface {
	PublishSnapshot(ctx context.Context, snap *models.Snapshot) error
}

// Broadcaster pushes snapshots to connected dashboard clients.
type Broadcaster interface {
	Broadcast(snap *models.Snapshot)
}

// RefresherConfig holds scheduling tunables.
type RefresherConfig struct {
	Interval time.Duration
	CacheTTL time.Duration
}

// Refresher runs fetch cycles on a schedule and serves the latest
// snapshot from cache or store. Cycles never overlap; a trigger during
// an in-flight cycle is dropped.
type Refresher struct {
	assembler   *Assembler
	store       drepo.SnapshotStore // nil for the memory backend
	cache       cache.Service
	publisher   SnapshotPublisher // optional
	broadcaster Broadcaster       // optional
	metrics     drepo.Metrics
	log         *logger.Logger
	cfg         RefresherConfig

	trigger chan string
	busy    atomic.Bool
}

// NewRefresher creates a snapshot refresher. store, publisher and
// broadcaster may be nil.
func NewRefresher(
	assembler *Assembler,
	store drepo.SnapshotStore,
	cacheSvc cache.Service,
	publisher SnapshotPublisher,
	broadcaster Broadcaster,
	metrics drepo.Metrics,
	log *logger.Logger,
	cfg RefresherConfig,
) *Refresher {
	if cfg.Interval <= 0 {
		cfg.Interval = 6 * time.Hour
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	if store == nil && cfg.CacheTTL < cfg.Interval {
		// Without a store the cache holds the only copy of the row-set;
		// it must not expire before the next scheduled cycle.
		cfg.CacheTTL = 2 * cfg.Interval
	}
	return &Refresher{
		assembler:   assembler,
		store:       store,
		cache:       cacheSvc,
		publisher:   publisher,
		broadcaster: broadcaster,
		metrics:     metrics,
		log:         log,
		cfg:         cfg,
		trigger:     make(chan string, 1),
	}
}

// Run executes an immediate cycle, then refreshes on the configured
// interval until the context is canceled.
func (r *Refresher) Run(ctx context.Context) {
	r.runCycle(ctx, "startup")

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.runCycle(ctx, "scheduled")
		case reason := <-r.trigger:
			r.runCycle(ctx, reason)
		}
		// A trigger enqueued while that cycle ran is already satisfied
		// by it; drop it instead of running a back-to-back cycle.
		select {
		case <-r.trigger:
		default:
		}
	}
}

// Trigger requests a manual refresh. A no-op while a cycle is in
// flight or another trigger is pending.
func (r *Refresher) Trigger() {
	if r.busy.Load() {
		return
	}
	select {
	case r.trigger <- "manual":
	default:
	}
}

// Invalidate removes all cached snapshot keys so the next read falls
// through to the store.
func (r *Refresher) Invalidate(ctx context.Context) {
	if err := r.cache.DeleteByPattern(ctx, cache.BuildPattern("snapshot:")); err != nil {
		r.log.Warn("cache invalidate failed", logger.Error(err))
	}
}

// Snapshot returns the latest snapshot from cache, falling back to the
// store's latest view. Returns ErrNoData when nothing has been
// assembled yet.
func (r *Refresher) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	var cached models.Snapshot
	if err := r.cache.Get(ctx, snapshotCacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		r.log.Warn("cache read failed", logger.Error(err))
	}

	if r.store == nil {
		return nil, ErrNoData
	}

	snap, err := r.store.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if snap == nil || len(snap.Rows) == 0 {
		return nil, ErrNoData
	}

	if err := r.cache.Set(ctx, snapshotCacheKey, snap, r.cfg.CacheTTL); err != nil {
		r.log.Warn("cache write failed", logger.Error(err))
	}
	return snap, nil
}

func (r *Refresher) runCycle(ctx context.Context, trigger string) {
	if !r.busy.CompareAndSwap(false, true) {
		r.log.Debug("cycle already in flight, skipping", logger.String("trigger", trigger))
		return
	}
	defer r.busy.Store(false)

	start := time.Now()
	r.log.Info("fetch cycle starting", logger.String("trigger", trigger))

	snap, observations := r.assembler.Assemble(ctx)

	result := "ok"
	if snap.Degraded {
		result = "degraded"
	}

	if r.store != nil {
		if err := r.store.Append(ctx, snap); err != nil {
			r.log.Error("snapshot append failed", logger.Error(err))
			result = "store_error"
		}
		if len(observations) > 0 {
			if err := r.store.AppendSpotHistory(ctx, observations); err != nil {
				r.log.Error("spot history append failed", logger.Error(err))
			}
		}
	}

	if err := r.cache.Set(ctx, snapshotCacheKey, snap, r.cfg.CacheTTL); err != nil {
		r.log.Warn("cache write failed", logger.Error(err))
	}

	if r.publisher != nil {
		if err := r.publisher.PublishSnapshot(ctx, snap); err != nil {
			r.log.Warn("snapshot publish failed", logger.Error(err))
		}
	}
	if r.broadcaster != nil {
		r.broadcaster.Broadcast(snap)
	}

	elapsed := time.Since(start)
	r.metrics.RecordFetchCycle(result)
	r.metrics.RecordCycleDuration(trigger, elapsed.Seconds())
	r.log.Info("fetch cycle finished",
		logger.String("trigger", trigger),
		logger.String("result", result),
		logger.Int("rows", len(snap.Rows)),
		logger.Int("fallbacks", len(snap.Fallbacks)),
		logger.Duration("took", elapsed),
	)
}
