package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zapponejosh/lunisolar/ephemeris"
	"github.com/zapponejosh/lunisolar/jd"
)

// Crossing returns a stored crossing. Returns ErrNotFound if it was never
// solved.
func (db *DB) Crossing(ctx context.Context, key ephemeris.CacheKey) (jd.JulianDay, error) {
	query := `
		SELECT julian_day FROM crossings
		WHERE kind = ? AND target = ? AND approx_day = ?
	`

	var v float64
	err := db.QueryRowContext(ctx, query, int(key.Kind), key.Target, key.ApproxDay).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get crossing: %w", err)
	}

	return jd.JulianDay(v), nil
}

// SaveCrossing stores a solved crossing, replacing any previous value.
func (db *DB) SaveCrossing(ctx context.Context, key ephemeris.CacheKey, value jd.JulianDay) error {
	query := `
		INSERT INTO crossings (kind, target, approx_day, julian_day)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(kind, target, approx_day) DO UPDATE SET
			julian_day = excluded.julian_day
	`

	_, err := db.ExecContext(ctx, query, int(key.Kind), key.Target, key.ApproxDay, float64(value))
	if err != nil {
		return fmt.Errorf("save crossing: %w", err)
	}

	return nil
}

// CrossingCount returns the number of stored crossings of each kind.
func (db *DB) CrossingCount(ctx context.Context) (map[ephemeris.Kind]int, error) {
	rows, err := db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM crossings GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("count crossings: %w", err)
	}
	defer rows.Close()

	counts := make(map[ephemeris.Kind]int)
	for rows.Next() {
		var kind, n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan crossing count: %w", err)
		}
		counts[ephemeris.Kind(kind)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate crossing counts: %w", err)
	}

	return counts, nil
}

// DeleteCrossings removes every stored crossing of one kind and returns how
// many were removed.
func (db *DB) DeleteCrossings(ctx context.Context, kind ephemeris.Kind) (int64, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM crossings WHERE kind = ?`, int(kind))
	if err != nil {
		return 0, fmt.Errorf("delete crossings: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}

	return n, nil
}

// Cache adapts the crossings table to ephemeris.Cache. Database failures are
// logged and treated as misses, so a broken cache only costs speed.
type Cache struct {
	db      *DB
	timeout time.Duration
}

// Cache returns an ephemeris.Cache backed by db.
func (db *DB) Cache() *Cache {
	return &Cache{db: db, timeout: 2 * time.Second}
}

func (c *Cache) Lookup(key ephemeris.CacheKey) (jd.JulianDay, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	v, err := c.db.Crossing(ctx, key)
	if err != nil {
		if !IsNotFound(err) {
			c.db.logger.Warn("crossing lookup failed",
				slog.String("kind", key.Kind.String()),
				slog.Float64("target", key.Target),
				slog.Any("error", err),
			)
		}
		return 0, false
	}
	return v, true
}

func (c *Cache) Store(key ephemeris.CacheKey, value jd.JulianDay) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.db.SaveCrossing(ctx, key, value); err != nil {
		c.db.logger.Warn("crossing store failed",
			slog.String("kind", key.Kind.String()),
			slog.Float64("target", key.Target),
			slog.Any("error", err),
		)
	}
}
