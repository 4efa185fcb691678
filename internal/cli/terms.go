package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/lunisolar/solar"
	"github.com/zapponejosh/lunisolar/solarterm"
)

type termRow struct {
	Index     int     `json:"index" yaml:"index"`
	Name      string  `json:"name" yaml:"name"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Kind      string  `json:"kind" yaml:"kind"`
	Time      string  `json:"time" yaml:"time"`
}

type termsView struct {
	Year  int       `json:"year" yaml:"year"`
	Terms []termRow `json:"terms" yaml:"terms"`
}

func (v termsView) title() string { return fmt.Sprintf("Solar terms of %d", v.Year) }

func (v termsView) headers() []string {
	return []string{"#", "name", "longitude", "kind", "time (UTC+8)"}
}

func (v termsView) rows() [][]string {
	rows := make([][]string, 0, len(v.Terms))
	for _, t := range v.Terms {
		rows = append(rows, []string{
			strconv.Itoa(t.Index),
			t.Name,
			strconv.FormatFloat(t.Longitude, 'f', 0, 64),
			t.Kind,
			t.Time,
		})
	}
	return rows
}

func termKind(t solarterm.Term) string {
	if t.IsJie() {
		return "jie"
	}
	return "qi"
}

func termsCmd(a *app) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "terms",
		Short: "List the 24 solar terms of a year",
		Long: "List the 24 solar terms of a term year. The first entry is the December\n" +
			"solstice of the previous Gregorian year.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if year == 0 {
				year = a.cfg.Year(time.Now())
			}
			terms, err := a.engine.SolarTerms(year)
			if err != nil {
				return err
			}

			v := termsView{Year: year}
			for _, t := range terms {
				at, err := solar.TimeFromJulianDay(t.JulianDay)
				if err != nil {
					return err
				}
				v.Terms = append(v.Terms, termRow{
					Index:     t.Index,
					Name:      t.Name(),
					Longitude: t.Longitude(),
					Kind:      termKind(t),
					Time:      at.String(),
				})
			}
			return a.print(cmd.OutOrStdout(), v)
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "term year (default DEFAULT_YEAR or the current year)")
	return cmd
}
