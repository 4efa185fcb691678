package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zapponejosh/lunisolar/ephemeris"
	"github.com/zapponejosh/lunisolar/internal/store"
	"github.com/zapponejosh/lunisolar/jd"
)

// execute runs the root command with a clean environment and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stdout, _, err := executeLogged(t, "error", args...)
	return stdout, err
}

// executeLogged is execute with a log level, also returning stderr.
func executeLogged(t *testing.T, level string, args ...string) (string, string, error) {
	t.Helper()

	t.Setenv("ENV", "development")
	t.Setenv("CACHE_PATH", "")
	t.Setenv("CACHE_MEMORY", "true")
	t.Setenv("DEFAULT_YEAR", "2024")
	t.Setenv("MAX_ITERATIONS", "")
	t.Setenv("LOG_LEVEL", level)
	t.Setenv("LOG_FORMAT", "text")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestTerms_JSON(t *testing.T) {
	out, err := execute(t, "terms", "--year", "2024", "-o", "json")
	require.NoError(t, err)

	var v termsView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, 2024, v.Year)
	require.Len(t, v.Terms, 24)

	assert.Equal(t, "dongzhi", v.Terms[0].Name)
	assert.True(t, strings.HasPrefix(v.Terms[0].Time, "2023-12-22"), v.Terms[0].Time)
	assert.Equal(t, "lichun", v.Terms[3].Name)
	assert.Equal(t, "jie", v.Terms[3].Kind)
	assert.Equal(t, 315.0, v.Terms[3].Longitude)
	assert.True(t, strings.HasPrefix(v.Terms[3].Time, "2024-02-04 16:2"), v.Terms[3].Time)
}

func TestTerms_DefaultYear(t *testing.T) {
	out, err := execute(t, "terms")
	require.NoError(t, err)

	assert.Contains(t, out, "Solar terms of 2024")
	assert.Contains(t, out, "lichun")
	assert.Contains(t, out, "2024-02-04")
}

func TestLunar_Table(t *testing.T) {
	out, err := execute(t, "lunar", "--year", "2023")
	require.NoError(t, err)

	assert.Contains(t, out, "Lunar year 2023 (guimao): 13 months, leap month 2, 384 days")
	assert.Contains(t, out, "L02")
	assert.Contains(t, out, "2023-01-22")
	assert.Contains(t, out, "2023-03-22")
}

func TestDay_JSON(t *testing.T) {
	out, err := execute(t, "day", "2024-02-10", "-o", "json")
	require.NoError(t, err)

	var v dayView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "2024-02-10", v.Date)
	assert.Equal(t, "Saturday", v.Weekday)
	assert.Equal(t, "2024-01-01", v.Lunar)
	assert.Equal(t, "jiachen", v.Year)
	assert.Equal(t, "lichun", v.Term)
	assert.Equal(t, 6, v.TermDay)
	assert.Equal(t, "new moon", v.Phase)
	assert.True(t, strings.HasPrefix(v.PhaseAt, "2024-02-10"), v.PhaseAt)
	assert.Empty(t, v.DogDay)
	assert.Empty(t, v.PlumRain)
}

func TestDay_YAML(t *testing.T) {
	out, err := execute(t, "day", "2024-07-25", "-o", "yaml")
	require.NoError(t, err)

	var v dayView
	require.NoError(t, yaml.Unmarshal([]byte(out), &v))
	assert.Equal(t, "Thursday", v.Weekday)
	assert.Equal(t, "2024-06-20", v.Lunar)
	assert.Equal(t, "zhongfu day 1", v.DogDay)
	assert.Empty(t, v.NineDay)
	assert.Empty(t, v.PlumRain)
}

func TestDay_Table(t *testing.T) {
	out, err := execute(t, "day", "2024-01-01")
	require.NoError(t, err)

	assert.Contains(t, out, "2024-01-01")
	assert.Contains(t, out, "nine 2 day 2")
	assert.Contains(t, out, "plum rain")
}

func TestPillars(t *testing.T) {
	out, err := execute(t, "pillars", "2024-06-01 23:30:00", "-o", "json")
	require.NoError(t, err)

	var v pillarsView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, pillarsView{
		Time:  "2024-06-01 23:30:00",
		Lunar: "2024-04-25",
		Year:  "jiachen",
		Month: "jisi",
		Day:   "bingshen",
		Hour:  "gengzi",
	}, v)
}

func TestFind(t *testing.T) {
	out, err := execute(t, "find", "jiachen", "jisi", "bingshen", "--from", "2024", "--to", "2024", "-o", "json")
	require.NoError(t, err)

	var v findView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, []string{"2024-06-01"}, v.Days)
	assert.Equal(t, "jiachen jisi bingshen", v.Pillars)
}

func TestYears_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "almanac.db")

	out, err := execute(t, "years", "--from", "2020", "--to", "2025", "--save", "--cache", path, "-o", "json")
	require.NoError(t, err)

	var v yearsView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	require.Len(t, v.Years, 6)
	assert.True(t, v.Saved)

	y2023 := v.Years[3]
	assert.Equal(t, 2023, y2023.Year)
	assert.Equal(t, "2023-01-22", y2023.NewYear)
	assert.Equal(t, 13, y2023.MonthCount)
	assert.Equal(t, 2, y2023.LeapMonth)
	assert.Equal(t, "guimao", y2023.Cycle)
	assert.Equal(t, "2024-02-10", v.Years[4].NewYear)

	db, err := store.Open(store.DefaultConfig(path), nil)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	stored, err := db.ListLunarYears(ctx, 2020, 2025)
	require.NoError(t, err)
	assert.Len(t, stored, 6)

	counts, err := db.CrossingCount(ctx)
	require.NoError(t, err)
	assert.Positive(t, counts[ephemeris.SunLongitude])
	assert.Positive(t, counts[ephemeris.MoonElongation])
}

func TestYears_ReadsStored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "almanac.db")

	db, err := store.Open(store.DefaultConfig(path), nil)
	require.NoError(t, err)
	ctx := context.Background()
	_, err = db.Migrate(ctx)
	require.NoError(t, err)
	// A summary no assembly would produce shows the row was read back.
	err = db.WithTx(ctx, func(tx *store.Tx) error {
		return tx.UpsertLunarYear(ctx, &store.LunarYear{
			Year: 2023, NewYear: "2023-01-21", MonthCount: 13, LeapMonth: 2, DayCount: 384, Cycle: "guimao",
		})
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out, stderr, err := executeLogged(t, "info", "years", "--from", "2022", "--to", "2024", "--save", "--cache", path, "-o", "json")
	require.NoError(t, err)
	var v yearsView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	require.Len(t, v.Years, 3)
	assert.Equal(t, 1, v.Stored)
	assert.Equal(t, "2023-01-21", v.Years[1].NewYear)
	assert.Equal(t, "2022-02-01", v.Years[0].NewYear)
	assert.Contains(t, stderr, "count=2")

	out, stderr, err = executeLogged(t, "info", "years", "--from", "2022", "--to", "2024", "--save", "--cache", path, "-o", "json")
	require.NoError(t, err)
	v = yearsView{}
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, 3, v.Stored)
	assert.Equal(t, "2024-02-10", v.Years[2].NewYear)
	assert.NotContains(t, stderr, "lunar years saved")
}

func TestYears_SaveNeedsCache(t *testing.T) {
	_, err := execute(t, "years", "--from", "2020", "--to", "2021", "--save")
	require.Error(t, err)
	assert.ErrorIs(t, err, errNoCache)
}

func TestCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "almanac.db")

	_, err := execute(t, "lunar", "--year", "2024", "--cache", path)
	require.NoError(t, err)

	out, err := execute(t, "cache", "--cache", path, "-o", "json")
	require.NoError(t, err)
	var v cacheView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, 2, v.Version)
	assert.Positive(t, v.Crossings["sun"])
	assert.Positive(t, v.Crossings["moon"])
	assert.Nil(t, v.Removed)

	out, err = execute(t, "cache", "clear", "--kind", "moon", "--cache", path, "-o", "yaml")
	require.NoError(t, err)
	v = cacheView{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &v))
	require.NotNil(t, v.Removed)
	assert.Positive(t, *v.Removed)
	assert.Zero(t, v.Crossings["moon"])
	assert.Positive(t, v.Crossings["sun"])

	_, err = execute(t, "cache", "clear", "--kind", "stars", "--cache", path)
	assert.Error(t, err)

	_, err = execute(t, "cache")
	assert.ErrorIs(t, err, errNoCache)
}

func TestLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "almanac.db")

	_, stderr, err := executeLogged(t, "info", "years", "--from", "2024", "--to", "2024", "--save", "--cache", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "database connected")
	assert.Contains(t, stderr, "msg=\"lunar years saved\"")

	_, stderr, err = executeLogged(t, "debug", "terms", "--year", "2024", "--cache", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "ephemeris cache hit")

	_, stderr, err = executeLogged(t, "debug", "terms", "--year", "2024", "--cache", path, "--quiet")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "almanac.env")
	require.NoError(t, os.WriteFile(path, []byte("DEFAULT_YEAR=2023\n"), 0o600))
	t.Setenv("ENV", "development")
	t.Setenv("CACHE_PATH", "")
	t.Setenv("LOG_LEVEL", "error")
	// godotenv never overrides a variable that is set, even to "".
	t.Setenv("DEFAULT_YEAR", "")
	os.Unsetenv("DEFAULT_YEAR")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"lunar", "--env-file", path}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Lunar year 2023")

	_, err := execute(t, "terms", "--env-file", filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"terms", "-o", "xml"}},
		{"bad date", []string{"day", "2024-13-01"}},
		{"date in reform gap", []string{"day", "1582-10-10"}},
		{"bad time", []string{"pillars", "2024-06-01"}},
		{"unknown cycle", []string{"find", "jiachen", "jiachou", "bingshen"}},
		{"reversed range", []string{"years", "--from", "2025", "--to", "2020"}},
		{"missing range", []string{"years"}},
		{"year out of range", []string{"lunar", "--year", "10000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestTieredCache(t *testing.T) {
	fast, slow := ephemeris.NewMemoryCache(), ephemeris.NewMemoryCache()
	c := tiered{fast, slow}
	key := ephemeris.CacheKey{Kind: ephemeris.SunLongitude, Target: 315, ApproxDay: 2460345}

	_, ok := c.Lookup(key)
	assert.False(t, ok)

	slow.Store(key, jd.JulianDay(2460345.2))
	v, ok := c.Lookup(key)
	assert.True(t, ok)
	assert.Equal(t, jd.JulianDay(2460345.2), v)
	assert.Equal(t, 1, fast.Len())

	c.Store(ephemeris.CacheKey{Kind: ephemeris.MoonElongation, ApproxDay: 1}, 1)
	assert.Equal(t, 2, fast.Len())
	assert.Equal(t, 2, slow.Len())

	assert.Nil(t, tiered{}.cache())
	assert.Equal(t, fast, tiered{fast}.cache())
}

func TestParseFormat(t *testing.T) {
	f, err := parseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, formatYAML, f)

	_, err = parseFormat("csv")
	assert.Error(t, err)
}
