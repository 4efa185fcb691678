package store

import (
	"database/sql"
	"time"
)

// LunarYear is a stored lunar year summary.
type LunarYear struct {
	Year       int        `json:"year" yaml:"year"`
	NewYear    string     `json:"new_year" yaml:"new_year"` // YYYY-MM-DD
	MonthCount int        `json:"month_count" yaml:"month_count"`
	LeapMonth  int        `json:"leap_month" yaml:"leap_month"` // 0 when the year has none
	DayCount   int        `json:"day_count" yaml:"day_count"`
	Cycle      string     `json:"cycle" yaml:"cycle"`
	CreatedAt  *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// HasLeapMonth reports whether the year has 13 months with a leap.
func (y LunarYear) HasLeapMonth() bool { return y.LeapMonth > 0 }

// parseTimestamp converts SQLite's datetime('now') text to a time.
func parseTimestamp(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02 15:04:05", ns.String)
	if err != nil {
		return nil
	}
	return &t
}
