package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"FXLens/internal/domain/models"
	drepo "FXLens/internal/domain/repository"
)

// ClickHouseSnapshotStore implements SnapshotStore on ClickHouse.
// Snapshots are append-only; spot observations dedup via
// ReplacingMergeTree keyed on (date, code).
type ClickHouseSnapshotStore struct {
	db       *sql.DB
	database string
}

// NewClickHouseSnapshotStore creates a ClickHouse-backed snapshot store.
func NewClickHouseSnapshotStore(db *sql.DB, database string) drepo.SnapshotStore {
	return &ClickHouseSnapshotStore{db: db, database: database}
}

// SchemaStatements returns idempotent DDL for the snapshot tables.
func SchemaStatements(database string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.fx_snapshots (
			fetched_at     DateTime64(3, 'UTC'),
			code           LowCardinality(String),
			name           String,
			grp            LowCardinality(String),
			spot           Float64,
			policy_rate    Float64,
			reference_rate Float64,
			carry          Float64,
			vol_1m         Nullable(Float64),
			ratio_now      Nullable(Float64),
			hist_1y        Nullable(Float64),
			hist_3y        Nullable(Float64),
			hist_5y        Nullable(Float64),
			hist_10y       Nullable(Float64),
			degraded       UInt8
		) ENGINE = MergeTree ORDER BY (fetched_at, code)`, database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.spot_history (
			date Date,
			code LowCardinality(String),
			spot Float64
		) ENGINE = ReplacingMergeTree ORDER BY (date, code)`, database),
	}
}

// Append writes the full row set in one multi-row insert so readers
// never observe a partially written cycle.
func (s *ClickHouseSnapshotStore) Append(ctx context.Context, snap *models.Snapshot) error {
	if len(snap.Rows) == 0 {
		return nil
	}

	degraded := uint8(0)
	if snap.Degraded {
		degraded = 1
	}

	values := make([]string, 0, len(snap.Rows))
	args := make([]interface{}, 0, len(snap.Rows)*15)
	for _, r := range snap.Rows {
		values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			snap.FetchedAt,
			r.Code,
			r.Name,
			string(r.Group),
			r.Spot,
			r.PolicyRate,
			r.ReferenceRate,
			r.Carry,
			nullable(r.Vol1M),
			nullable(r.RatioNow),
			nullable(r.Hist1Y),
			nullable(r.Hist3Y),
			nullable(r.Hist5Y),
			nullable(r.Hist10Y),
			degraded,
		)
	}

	q := fmt.Sprintf(`INSERT INTO %s.fx_snapshots
		(fetched_at, code, name, grp, spot, policy_rate, reference_rate, carry,
		 vol_1m, ratio_now, hist_1y, hist_3y, hist_5y, hist_10y, degraded)
		VALUES %s`, s.database, strings.Join(values, ","))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("append snapshot: %w", err)
	}
	return nil
}

// Latest returns one row per code, the one with the maximum fetch
// timestamp, as a reconstructed Snapshot.
func (s *ClickHouseSnapshotStore) Latest(ctx context.Context) (*models.Snapshot, error) {
	q := fmt.Sprintf(`SELECT
			s.fetched_at, s.code, s.name, s.grp, s.spot, s.policy_rate,
			s.reference_rate, s.carry, s.vol_1m, s.ratio_now,
			s.hist_1y, s.hist_3y, s.hist_5y, s.hist_10y, s.degraded
		FROM %s.fx_snapshots s
		INNER JOIN (
			SELECT code, MAX(fetched_at) AS latest
			FROM %s.fx_snapshots
			GROUP BY code
		) m ON s.code = m.code AND s.fetched_at = m.latest
		ORDER BY s.grp, s.carry DESC`, s.database, s.database)

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}
	defer rows.Close()

	snap := &models.Snapshot{}
	for rows.Next() {
		var (
			r        models.Row
			grp      string
			vol      sql.NullFloat64
			ratio    sql.NullFloat64
			h1       sql.NullFloat64
			h3       sql.NullFloat64
			h5       sql.NullFloat64
			h10      sql.NullFloat64
			degraded uint8
			fetched  time.Time
		)
		if err := rows.Scan(&fetched, &r.Code, &r.Name, &grp, &r.Spot, &r.PolicyRate,
			&r.ReferenceRate, &r.Carry, &vol, &ratio, &h1, &h3, &h5, &h10, &degraded); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		r.Group = models.Group(grp)
		r.Vol1M = fromNull(vol)
		r.RatioNow = fromNull(ratio)
		r.Hist1Y = fromNull(h1)
		r.Hist3Y = fromNull(h3)
		r.Hist5Y = fromNull(h5)
		r.Hist10Y = fromNull(h10)

		if fetched.After(snap.FetchedAt) {
			snap.FetchedAt = fetched
		}
		if degraded == 1 {
			snap.Degraded = true
		}
		snap.Rows = append(snap.Rows, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(snap.Rows) == 0 {
		return nil, nil
	}
	return snap, nil
}

func (s *ClickHouseSnapshotStore) LatestFetchTime(ctx context.Context) (time.Time, error) {
	q := fmt.Sprintf("SELECT MAX(fetched_at) FROM %s.fx_snapshots", s.database)
	var ts time.Time
	if err := s.db.QueryRowContext(ctx, q).Scan(&ts); err != nil {
		return time.Time{}, fmt.Errorf("latest fetch time: %w", err)
	}
	return ts, nil
}

// AppendSpotHistory inserts raw observations. Re-inserts of an already
// seen (date, code) pair are absorbed by the ReplacingMergeTree.
func (s *ClickHouseSnapshotStore) AppendSpotHistory(ctx context.Context, obs []models.SpotObservation) error {
	if len(obs) == 0 {
		return nil
	}

	values := make([]string, 0, len(obs))
	args := make([]interface{}, 0, len(obs)*3)
	for _, o := range obs {
		if o.Code == "" || o.Rate <= 0 {
			continue
		}
		values = append(values, "(?, ?, ?)")
		args = append(args, o.Date, o.Code, o.Rate)
	}
	if len(values) == 0 {
		return nil
	}

	q := fmt.Sprintf("INSERT INTO %s.spot_history (date, code, spot) VALUES %s",
		s.database, strings.Join(values, ","))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("append spot history: %w", err)
	}
	return nil
}

func (s *ClickHouseSnapshotStore) SpotHistory(ctx context.Context, code string, from, to time.Time) ([]models.SpotObservation, error) {
	q := fmt.Sprintf(`SELECT date, spot FROM %s.spot_history FINAL
		WHERE code = ? AND date >= ? AND date <= ?
		ORDER BY date`, s.database)

	rows, err := s.db.QueryContext(ctx, q, code, from, to)
	if err != nil {
		return nil, fmt.Errorf("spot history %s: %w", code, err)
	}
	defer rows.Close()

	var out []models.SpotObservation
	for rows.Next() {
		o := models.SpotObservation{Code: code}
		if err := rows.Scan(&o.Date, &o.Rate); err != nil {
			return nil, fmt.Errorf("scan spot history: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *ClickHouseSnapshotStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseSnapshotStore) Close() error {
	return nil // Managed by pkg
}

func nullable(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func fromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
