package store

// migration is one forward-only schema change.
type migration struct {
	version int
	name    string
	sql     string
}

// migrations are applied in slice order; versions must increase.
var migrations = []migration{
	{1, "crossings", migrationV1Crossings},
	{2, "lunar_years", migrationV2LunarYears},
}

// migrationV1Crossings stores solved ephemeris crossings, keyed the way the
// solver looks them up: angle kind, normalised target angle and the civil day
// number of the starting estimate.
const migrationV1Crossings = `
CREATE TABLE IF NOT EXISTS crossings (
    kind INTEGER NOT NULL CHECK (kind IN (0, 1)), -- 0 sun longitude, 1 moon elongation
    target REAL NOT NULL CHECK (target >= 0 AND target < 360),
    approx_day INTEGER NOT NULL,

    -- civil (UTC+8) Julian Day of the crossing
    julian_day REAL NOT NULL,

    created_at TEXT NOT NULL DEFAULT (datetime('now')),

    PRIMARY KEY (kind, target, approx_day)
);
`

// migrationV2LunarYears holds generated lunar year summaries.
const migrationV2LunarYears = `
CREATE TABLE IF NOT EXISTS lunar_years (
    year INTEGER PRIMARY KEY CHECK (year BETWEEN 1 AND 9999),

    -- solar date of the 1st day of the 1st month, YYYY-MM-DD
    new_year TEXT NOT NULL,

    month_count INTEGER NOT NULL CHECK (month_count BETWEEN 11 AND 13),
    leap_month INTEGER NOT NULL DEFAULT 0 CHECK (leap_month BETWEEN 0 AND 12),
    day_count INTEGER NOT NULL,

    -- sexagenary name of the year, e.g. jiachen
    cycle TEXT NOT NULL,

    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_lunar_years_leap
    ON lunar_years(leap_month)
    WHERE leap_month > 0;
`
