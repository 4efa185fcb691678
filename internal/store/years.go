package store

import (
	"context"
	"database/sql"
	"fmt"
)

// UpsertLunarYear inserts or updates a lunar year summary inside tx.
func (tx *Tx) UpsertLunarYear(ctx context.Context, y *LunarYear) error {
	query := `
		INSERT INTO lunar_years (
			year, new_year, month_count, leap_month, day_count, cycle, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(year) DO UPDATE SET
			new_year = excluded.new_year,
			month_count = excluded.month_count,
			leap_month = excluded.leap_month,
			day_count = excluded.day_count,
			cycle = excluded.cycle,
			updated_at = datetime('now')
	`

	_, err := tx.ExecContext(ctx, query,
		y.Year,
		y.NewYear,
		y.MonthCount,
		y.LeapMonth,
		y.DayCount,
		y.Cycle,
	)
	if err != nil {
		return fmt.Errorf("upsert lunar year %d: %w", y.Year, err)
	}

	return nil
}

// ListLunarYears returns the stored years in from..to, in order.
func (db *DB) ListLunarYears(ctx context.Context, from, to int) ([]LunarYear, error) {
	query := `
		SELECT year, new_year, month_count, leap_month, day_count, cycle,
			created_at, updated_at
		FROM lunar_years
		WHERE year BETWEEN ? AND ?
		ORDER BY year
	`

	rows, err := db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list lunar years: %w", err)
	}
	defer rows.Close()

	var years []LunarYear
	for rows.Next() {
		y, err := scanLunarYear(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lunar year: %w", err)
		}
		years = append(years, *y)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lunar years: %w", err)
	}

	return years, nil
}

func scanLunarYear(s *sql.Rows) (*LunarYear, error) {
	var y LunarYear
	var createdAt, updatedAt sql.NullString
	err := s.Scan(
		&y.Year,
		&y.NewYear,
		&y.MonthCount,
		&y.LeapMonth,
		&y.DayCount,
		&y.Cycle,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	y.CreatedAt = parseTimestamp(createdAt)
	y.UpdatedAt = parseTimestamp(updatedAt)
	return &y, nil
}
