package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/lunisolar/solar"
)

type dayView struct {
	Date     string `json:"date" yaml:"date"`
	Weekday  string `json:"weekday" yaml:"weekday"`
	Lunar    string `json:"lunar" yaml:"lunar"`
	Year     string `json:"year_pillar" yaml:"year_pillar"`
	Month    string `json:"month_pillar" yaml:"month_pillar"`
	Day      string `json:"day_pillar" yaml:"day_pillar"`
	Term     string `json:"term" yaml:"term"`
	TermDay  int    `json:"term_day" yaml:"term_day"`
	Phase    string `json:"moon_phase" yaml:"moon_phase"`
	PhaseAt  string `json:"moon_phase_at" yaml:"moon_phase_at"`
	DogDay   string `json:"dog_day,omitempty" yaml:"dog_day,omitempty"`
	NineDay  string `json:"nine_day,omitempty" yaml:"nine_day,omitempty"`
	PlumRain string `json:"plum_rain,omitempty" yaml:"plum_rain,omitempty"`
}

func (v dayView) title() string { return v.Date }

func (v dayView) headers() []string { return []string{"field", "value"} }

func (v dayView) rows() [][]string {
	return [][]string{
		{"weekday", v.Weekday},
		{"lunar date", v.Lunar},
		{"pillars", fmt.Sprintf("%s %s %s", v.Year, v.Month, v.Day)},
		{"solar term", fmt.Sprintf("%s, day %d", v.Term, v.TermDay+1)},
		{"moon phase", fmt.Sprintf("%s at %s", v.Phase, v.PhaseAt)},
		{"dog days", orNone(v.DogDay)},
		{"nine nines", orNone(v.NineDay)},
		{"plum rain", orNone(v.PlumRain)},
	}
}

func dayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "day YYYY-MM-DD",
		Short:   "Describe a civil day: lunar date, pillars, solar term and seasonal counts",
		Example: "  almanac day 2024-02-10\n  almanac day 2024-07-25 -o json",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := solar.ParseDay(args[0])
			if err != nil {
				return err
			}
			v, err := a.describeDay(d)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), v)
		},
	}
}

func (a *app) describeDay(d solar.Day) (dayView, error) {
	e := a.engine
	v := dayView{Date: d.String(), Weekday: d.Weekday().String()}

	l, err := e.LunarDay(d)
	if err != nil {
		return dayView{}, err
	}
	v.Lunar = l.String()

	p, err := e.DayPillars(d)
	if err != nil {
		return dayView{}, err
	}
	v.Year, v.Month, v.Day = p.Year.String(), p.Month.String(), p.Day.String()

	term, since, err := e.SolarTermOfDay(d)
	if err != nil {
		return dayView{}, err
	}
	v.Term, v.TermDay = term.Name(), since

	// Phase in effect at the end of the day.
	end, err := d.At(23, 59, 59)
	if err != nil {
		return dayView{}, err
	}
	phase, err := e.MoonPhase(end)
	if err != nil {
		return dayView{}, err
	}
	at, err := solar.TimeFromJulianDay(phase.JulianDay)
	if err != nil {
		return dayView{}, err
	}
	v.Phase, v.PhaseAt = phase.Phase.String(), at.String()

	dog, ok, err := e.DogDay(d)
	if err != nil {
		return dayView{}, err
	}
	if ok {
		v.DogDay = dog.String()
	}

	nine, ok, err := e.NineDay(d)
	if err != nil {
		return dayView{}, err
	}
	if ok {
		v.NineDay = nine.String()
	}

	plum, ok, err := e.PlumRain(d)
	if err != nil {
		return dayView{}, err
	}
	if ok {
		v.PlumRain = plum.String()
	}
	return v, nil
}
