package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/lunisolar/ganzhi"
)

type findView struct {
	Pillars string   `json:"pillars" yaml:"pillars"`
	From    int      `json:"from" yaml:"from"`
	To      int      `json:"to" yaml:"to"`
	Days    []string `json:"days" yaml:"days"`
}

func (v findView) title() string {
	return fmt.Sprintf("Days with pillars %s in %d..%d: %d found", v.Pillars, v.From, v.To, len(v.Days))
}

func (v findView) headers() []string { return []string{"date"} }

func (v findView) rows() [][]string {
	rows := make([][]string, 0, len(v.Days))
	for _, d := range v.Days {
		rows = append(rows, []string{d})
	}
	return rows
}

func findCmd(a *app) *cobra.Command {
	var from, to int

	cmd := &cobra.Command{
		Use:     "find YEAR MONTH DAY",
		Short:   "Find the dates whose year, month and day pillars match",
		Example: "  almanac find jiachen jisi bingshen --from 1900 --to 2100",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cycles [3]ganzhi.Cycle
			for i, name := range args {
				c, err := ganzhi.ParseCycle(name)
				if err != nil {
					return err
				}
				cycles[i] = c
			}
			p := ganzhi.ThreePillars{Year: cycles[0], Month: cycles[1], Day: cycles[2]}

			days, err := a.engine.FindDays(p, from, to)
			if err != nil {
				return err
			}

			v := findView{
				Pillars: fmt.Sprintf("%s %s %s", p.Year, p.Month, p.Day),
				From:    from,
				To:      to,
				Days:    make([]string, 0, len(days)),
			}
			for _, d := range days {
				v.Days = append(v.Days, d.String())
			}
			return a.print(cmd.OutOrStdout(), v)
		},
	}

	cmd.Flags().IntVar(&from, "from", 1900, "first sexagenary year to search")
	cmd.Flags().IntVar(&to, "to", 2100, "last sexagenary year to search")
	return cmd
}
