package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/lunisolar/ganzhi"
	"github.com/zapponejosh/lunisolar/lunar"
)

type monthRow struct {
	Month    string `json:"month" yaml:"month"`
	Leap     bool   `json:"leap" yaml:"leap"`
	FirstDay string `json:"first_day" yaml:"first_day"`
	Days     int    `json:"days" yaml:"days"`
}

type lunarView struct {
	Year      int        `json:"year" yaml:"year"`
	Cycle     string     `json:"cycle" yaml:"cycle"`
	LeapMonth int        `json:"leap_month" yaml:"leap_month"`
	Days      int        `json:"days" yaml:"days"`
	Months    []monthRow `json:"months" yaml:"months"`
}

func (v lunarView) title() string {
	leap := "no leap month"
	if v.LeapMonth != 0 {
		leap = fmt.Sprintf("leap month %d", v.LeapMonth)
	}
	return fmt.Sprintf("Lunar year %d (%s): %d months, %s, %d days",
		v.Year, v.Cycle, len(v.Months), leap, v.Days)
}

func (v lunarView) headers() []string { return []string{"month", "first day", "days"} }

func (v lunarView) rows() [][]string {
	rows := make([][]string, 0, len(v.Months))
	for _, m := range v.Months {
		rows = append(rows, []string{m.Month, m.FirstDay, strconv.Itoa(m.Days)})
	}
	return rows
}

func monthLabel(m lunar.Month) string {
	if m.Leap {
		return fmt.Sprintf("L%02d", m.Month)
	}
	return fmt.Sprintf("%02d", m.Month)
}

func newLunarView(y lunar.Year) (lunarView, error) {
	v := lunarView{
		Year:      y.Year,
		Cycle:     ganzhi.YearCycle(y.Year).String(),
		LeapMonth: y.LeapMonth,
		Days:      y.DayCount(),
	}
	for _, m := range y.Months {
		first, err := m.FirstDay()
		if err != nil {
			return lunarView{}, err
		}
		v.Months = append(v.Months, monthRow{
			Month:    monthLabel(m),
			Leap:     m.Leap,
			FirstDay: first.String(),
			Days:     m.DayCount,
		})
	}
	return v, nil
}

func lunarCmd(a *app) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "lunar",
		Short: "Show the months of a lunar year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if year == 0 {
				year = a.cfg.Year(time.Now())
			}
			y, err := a.engine.LunarYear(year)
			if err != nil {
				return err
			}
			v, err := newLunarView(y)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), v)
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "lunar year (default DEFAULT_YEAR or the current year)")
	return cmd
}
