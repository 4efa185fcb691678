package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/lunisolar/ephemeris"
	"github.com/zapponejosh/lunisolar/internal/store"
)

var errNoCache = errors.New("no cache database configured (set CACHE_PATH or --cache)")

type cacheView struct {
	store.Stats `yaml:",inline"`
	Removed     *int64 `json:"removed,omitempty" yaml:"removed,omitempty"`
}

func (v cacheView) title() string {
	s := fmt.Sprintf("Cache %s (schema v%d)", v.Path, v.Version)
	if v.Removed != nil {
		s += fmt.Sprintf(": removed %d crossings", *v.Removed)
	}
	return s
}

func (v cacheView) headers() []string { return []string{"table", "rows"} }

func (v cacheView) rows() [][]string {
	kinds := make([]string, 0, len(v.Crossings))
	for k := range v.Crossings {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	rows := make([][]string, 0, len(kinds)+1)
	for _, k := range kinds {
		rows = append(rows, []string{"crossings (" + k + ")", strconv.Itoa(v.Crossings[k])})
	}
	return append(rows, []string{"lunar_years", strconv.Itoa(v.LunarYears)})
}

func cacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the SQLite cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.db == nil {
				return errNoCache
			}
			stats, err := a.db.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), cacheView{Stats: *stats})
		},
	}

	cmd.AddCommand(cacheClearCmd(a))
	return cmd
}

func cacheClearCmd(a *app) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete stored crossings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.db == nil {
				return errNoCache
			}

			var kinds []ephemeris.Kind
			switch kind {
			case "all":
				kinds = []ephemeris.Kind{ephemeris.SunLongitude, ephemeris.MoonElongation}
			case ephemeris.SunLongitude.String():
				kinds = []ephemeris.Kind{ephemeris.SunLongitude}
			case ephemeris.MoonElongation.String():
				kinds = []ephemeris.Kind{ephemeris.MoonElongation}
			default:
				return fmt.Errorf("unknown crossing kind %q (want sun, moon or all)", kind)
			}

			ctx := cmd.Context()
			var removed int64
			for _, k := range kinds {
				n, err := a.db.DeleteCrossings(ctx, k)
				if err != nil {
					return err
				}
				removed += n
			}
			a.log.Info("crossings cleared", "kind", kind, "removed", removed)

			stats, err := a.db.Stats(ctx)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), cacheView{Stats: *stats, Removed: &removed})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "all", "crossings to delete: sun, moon or all")
	return cmd
}
