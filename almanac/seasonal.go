package almanac

import (
	"fmt"

	"github.com/zapponejosh/lunisolar/ganzhi"
	"github.com/zapponejosh/lunisolar/solar"
)

// Term indices used by the seasonal counts.
const (
	grainInEar     = 11
	summerSolstice = 12
	minorHeat      = 13
	startOfAutumn  = 15
)

// Stems and branches the seasonal counts key on.
const (
	bingStem  ganzhi.Stem   = 2
	gengStem  ganzhi.Stem   = 6
	weiBranch ganzhi.Branch = 7
)

// DogPeriod is one of the three periods of the dog days (sanfu).
type DogPeriod int

const (
	InitialDog DogPeriod = iota // chufu
	MiddleDog                   // zhongfu
	FinalDog                    // mofu
)

func (p DogPeriod) String() string {
	switch p {
	case InitialDog:
		return "chufu"
	case MiddleDog:
		return "zhongfu"
	case FinalDog:
		return "mofu"
	default:
		return "unknown"
	}
}

// DogDay is a day inside the dog days. Day is zero-based within Period.
type DogDay struct {
	Period DogPeriod
	Day    int
}

func (d DogDay) String() string { return fmt.Sprintf("%s day %d", d.Period, d.Day+1) }

// DogDay reports whether d falls in the dog days of its year and where.
//
// The initial period opens on the third geng day after the summer solstice
// and lasts 10 days. The middle period lasts 10 days, or 20 when the Start of
// Autumn falls after the fifth geng day. The final period lasts 10 days.
//
// Examples:
//   - 2024-07-15: chufu day 1
//   - 2024-08-04: zhongfu day 11
//   - 2024-08-14: mofu day 1
func (e *Engine) DogDay(d solar.Day) (DogDay, bool, error) {
	solstice, err := e.terms.Term(d.Year(), summerSolstice)
	if err != nil {
		return DogDay{}, false, e.check("DogDay", err)
	}
	first := solstice.DayNumber()
	start := first + ganzhi.DayCycle(first).Stem().StepsTo(gengStem) + 20

	n := d.DayNumber()
	days := n - start
	if days < 0 {
		return DogDay{}, false, nil
	}
	if days < 10 {
		return DogDay{Period: InitialDog, Day: days}, true, nil
	}
	start += 10
	if days = n - start; days < 10 {
		return DogDay{Period: MiddleDog, Day: days}, true, nil
	}
	start += 10
	days = n - start

	autumn, err := e.terms.Term(d.Year(), startOfAutumn)
	if err != nil {
		return DogDay{}, false, e.check("DogDay", err)
	}
	if autumn.DayNumber() > start {
		if days < 10 {
			return DogDay{Period: MiddleDog, Day: days + 10}, true, nil
		}
		start += 10
		days = n - start
	}
	if days >= 10 {
		return DogDay{}, false, nil
	}
	return DogDay{Period: FinalDog, Day: days}, true, nil
}

// NineDay is a day of the nine nine-day periods counted from the winter
// solstice (shujiu). Both fields are zero-based.
type NineDay struct {
	Period int // 0..8
	Day    int // 0..8
}

func (d NineDay) String() string { return fmt.Sprintf("nine %d day %d", d.Period+1, d.Day+1) }

// NineDay reports whether d falls in the 81 days starting on a winter
// solstice day.
func (e *Engine) NineDay(d solar.Day) (NineDay, bool, error) {
	n := d.DayNumber()

	// The December solstice of this year opens term year year+1.
	j, err := e.terms.Instant(d.Year()+1, 0)
	if err != nil {
		return NineDay{}, false, e.check("NineDay", err)
	}
	start := j.DayNumber()
	if n < start {
		if j, err = e.terms.Instant(d.Year(), 0); err != nil {
			return NineDay{}, false, e.check("NineDay", err)
		}
		start = j.DayNumber()
	}
	if n < start || n >= start+81 {
		return NineDay{}, false, nil
	}
	days := n - start
	return NineDay{Period: days / 9, Day: days % 9}, true, nil
}

// PlumRainDay is a day of the plum rain season (meiyu). Exit is set only on
// the closing day; otherwise Day counts from the opening day, zero-based.
type PlumRainDay struct {
	Exit bool
	Day  int
}

func (d PlumRainDay) String() string {
	if d.Exit {
		return "plum rain ends"
	}
	return fmt.Sprintf("plum rain day %d", d.Day+1)
}

// PlumRain reports whether d falls in the plum rain season. The season opens
// on the first bing day on or after Grain in Ear and closes on the first wei
// day on or after Minor Heat.
func (e *Engine) PlumRain(d solar.Day) (PlumRainDay, bool, error) {
	open, err := e.terms.Term(d.Year(), grainInEar)
	if err != nil {
		return PlumRainDay{}, false, e.check("PlumRain", err)
	}
	closing, err := e.terms.Term(d.Year(), minorHeat)
	if err != nil {
		return PlumRainDay{}, false, e.check("PlumRain", err)
	}

	start := open.DayNumber()
	start += ganzhi.DayCycle(start).Stem().StepsTo(bingStem)
	end := closing.DayNumber()
	end += ganzhi.DayCycle(end).Branch().StepsTo(weiBranch)

	n := d.DayNumber()
	switch {
	case n < start || n > end:
		return PlumRainDay{}, false, nil
	case n == end:
		return PlumRainDay{Exit: true}, true, nil
	default:
		return PlumRainDay{Day: n - start}, true, nil
	}
}
