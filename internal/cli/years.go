package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zapponejosh/lunisolar/internal/store"
	"github.com/zapponejosh/lunisolar/lunar"
)

type yearsView struct {
	From   int               `json:"from" yaml:"from"`
	To     int               `json:"to" yaml:"to"`
	Saved  bool              `json:"saved" yaml:"saved"`
	Stored int               `json:"stored" yaml:"stored"` // served from the cache database
	Years  []store.LunarYear `json:"years" yaml:"years"`
}

func (v yearsView) title() string {
	s := fmt.Sprintf("Lunar years %d..%d", v.From, v.To)
	if v.Stored > 0 {
		s += fmt.Sprintf(", %d from cache", v.Stored)
	}
	if v.Saved {
		s += " (saved)"
	}
	return s
}

func (v yearsView) headers() []string {
	return []string{"year", "cycle", "new year", "months", "leap", "days"}
}

func (v yearsView) rows() [][]string {
	rows := make([][]string, 0, len(v.Years))
	for _, y := range v.Years {
		leap := "-"
		if y.HasLeapMonth() {
			leap = strconv.Itoa(y.LeapMonth)
		}
		rows = append(rows, []string{
			strconv.Itoa(y.Year),
			y.Cycle,
			y.NewYear,
			strconv.Itoa(y.MonthCount),
			leap,
			strconv.Itoa(y.DayCount),
		})
	}
	return rows
}

func summarize(y lunar.Year) (store.LunarYear, error) {
	v, err := newLunarView(y)
	if err != nil {
		return store.LunarYear{}, err
	}
	return store.LunarYear{
		Year:       y.Year,
		NewYear:    v.Months[0].FirstDay,
		MonthCount: y.MonthCount(),
		LeapMonth:  y.LeapMonth,
		DayCount:   y.DayCount(),
		Cycle:      v.Cycle,
	}, nil
}

func yearsCmd(a *app) *cobra.Command {
	var (
		from, to int
		workers  int
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "years",
		Short: "Summarize a range of lunar years",
		Long: "Summarize a range of lunar years: new year's day, month count, leap month\n" +
			"and length. Summaries already in the cache database are read back instead of\n" +
			"assembled; with --save the new ones are written to it.",
		Example: "  almanac years --from 2020 --to 2030\n  almanac years --from 1900 --to 2100 --save --cache almanac.db",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if from > to {
				return fmt.Errorf("--from %d is after --to %d", from, to)
			}
			if save && a.db == nil {
				return fmt.Errorf("--save: %w", errNoCache)
			}

			ctx := cmd.Context()
			years := make([]store.LunarYear, to-from+1)
			done := make([]bool, len(years))
			stored := 0
			if a.db != nil {
				cached, err := a.db.ListLunarYears(ctx, from, to)
				if err != nil {
					return err
				}
				for _, y := range cached {
					years[y.Year-from], done[y.Year-from] = y, true
				}
				stored = len(cached)
			}

			g, _ := errgroup.WithContext(ctx)
			g.SetLimit(workers)
			for i := range years {
				if done[i] {
					continue
				}
				g.Go(func() error {
					y, err := a.engine.LunarYear(from + i)
					if err != nil {
						return err
					}
					years[i], err = summarize(y)
					return err
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if save && stored < len(years) {
				err := a.db.WithTx(ctx, func(tx *store.Tx) error {
					for i := range years {
						if done[i] {
							continue
						}
						if err := tx.UpsertLunarYear(ctx, &years[i]); err != nil {
							return err
						}
					}
					return nil
				})
				if err != nil {
					return err
				}
				a.log.Info("lunar years saved", "from", from, "to", to, "count", len(years)-stored)
			}

			return a.print(cmd.OutOrStdout(), yearsView{From: from, To: to, Saved: save, Stored: stored, Years: years})
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, "first lunar year")
	cmd.Flags().IntVar(&to, "to", 0, "last lunar year")
	cmd.Flags().IntVar(&workers, "workers", 4, "years assembled in parallel")
	cmd.Flags().BoolVar(&save, "save", false, "store the summaries in the cache database")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
