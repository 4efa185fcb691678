package cli

import (
	"github.com/spf13/cobra"

	"github.com/zapponejosh/lunisolar/solar"
)

type pillarsView struct {
	Time  string `json:"time" yaml:"time"`
	Lunar string `json:"lunar" yaml:"lunar"`
	Year  string `json:"year" yaml:"year"`
	Month string `json:"month" yaml:"month"`
	Day   string `json:"day" yaml:"day"`
	Hour  string `json:"hour" yaml:"hour"`
}

func (v pillarsView) title() string { return v.Time + " (lunar " + v.Lunar + ")" }

func (v pillarsView) headers() []string { return []string{"year", "month", "day", "hour"} }

func (v pillarsView) rows() [][]string {
	return [][]string{{v.Year, v.Month, v.Day, v.Hour}}
}

func pillarsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   `pillars "YYYY-MM-DD HH:MM:SS"`,
		Short: "Show the four sexagenary pillars of a moment (UTC+8)",
		Long: "Show the four sexagenary pillars of a moment in UTC+8 civil time. The year\n" +
			"pillar changes at the Start of Spring instant and the month pillar at each\n" +
			"sectional term.",
		Example: `  almanac pillars "2024-02-04 16:30:00"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := solar.ParseTime(args[0])
			if err != nil {
				return err
			}
			p, err := a.engine.Pillars(t)
			if err != nil {
				return err
			}
			l, err := a.engine.LunarDay(t.Date())
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), pillarsView{
				Time:  t.String(),
				Lunar: l.String(),
				Year:  p.Year.String(),
				Month: p.Month.String(),
				Day:   p.Day.String(),
				Hour:  p.Hour.String(),
			})
		},
	}
}
