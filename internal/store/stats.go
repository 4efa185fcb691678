package store

import (
	"context"
	"fmt"
)

// Stats summarizes what the database holds.
type Stats struct {
	Path       string         `json:"path" yaml:"path"`
	Version    int            `json:"schema_version" yaml:"schema_version"`
	Crossings  map[string]int `json:"crossings" yaml:"crossings"` // by ephemeris.Kind name
	LunarYears int            `json:"lunar_years" yaml:"lunar_years"`
}

// Stats reports the schema version and row counts.
func (db *DB) Stats(ctx context.Context) (*Stats, error) {
	version, err := db.Version(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := db.CrossingCount(ctx)
	if err != nil {
		return nil, err
	}
	s := &Stats{Path: db.path, Version: version, Crossings: make(map[string]int, len(counts))}
	for kind, n := range counts {
		s.Crossings[kind.String()] = n
	}

	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM lunar_years").Scan(&s.LunarYears); err != nil {
		return nil, fmt.Errorf("count lunar years: %w", err)
	}
	return s, nil
}
