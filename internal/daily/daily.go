// Package daily derives the context of a single day: weekday, season, moon
// phase, week number and position in the year.
//
// Seasons use fixed astronomical approximations and the moon phase is a mean
// synodic cycle counted from a reference new moon. Neither is ephemeris
// accurate; both are meant for display.
package daily

import (
	"math"
	"time"

	"github.com/tartampluch/go-lifespan/internal/calendar"
	"github.com/tartampluch/go-lifespan/internal/config"
)

// Season names.
type Season string

const (
	Spring Season = "Spring"
	Summer Season = "Summer"
	Autumn Season = "Autumn"
	Winter Season = "Winter"
)

// Hemisphere selects which seasons the boundaries open.
type Hemisphere string

const (
	North Hemisphere = config.HemisphereNorth
	South Hemisphere = config.HemisphereSouth
)

// Season boundaries as month*100+day; each one opens the named northern season.
const (
	springStart = 320
	summerStart = 621
	autumnStart = 923
	winterStart = 1221
)

// Moon phase names in cycle order.
const (
	NewMoon        = "New Moon"
	WaxingCrescent = "Waxing Crescent"
	FirstQuarter   = "First Quarter"
	WaxingGibbous  = "Waxing Gibbous"
	FullMoon       = "Full Moon"
	WaningGibbous  = "Waning Gibbous"
	LastQuarter    = "Last Quarter"
	WaningCrescent = "Waning Crescent"
)

// DefaultSynodicMonth is the mean length of a lunation in days.
const DefaultSynodicMonth = 29.53059

const secondsPerDay = 86400

var phaseNames = [...]string{
	NewMoon, WaxingCrescent, FirstQuarter, WaxingGibbous,
	FullMoon, WaningGibbous, LastQuarter, WaningCrescent,
}

// referenceNewMoon is the new moon of 2000-01-06 18:14 UTC.
var referenceNewMoon = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

// Options carries the regional conventions used by Derive.
type Options struct {
	Weekend      calendar.Weekend
	Hemisphere   Hemisphere
	SynodicMonth float64
}

// DefaultOptions uses the Friday/Saturday weekend, the northern hemisphere
// and the mean synodic month.
func DefaultOptions() Options {
	return Options{
		Weekend:      calendar.DefaultWeekend(),
		Hemisphere:   North,
		SynodicMonth: DefaultSynodicMonth,
	}
}

// Moon is the approximate lunar state of a day.
type Moon struct {
	Name string `json:"name"`
	// Phase is the fraction of the cycle elapsed, in [0, 1).
	Phase float64 `json:"phase"`
	// AgeDays is the number of days since the last mean new moon.
	AgeDays float64 `json:"age_days"`
	// Illumination is the lit fraction of the disc, in [0, 1].
	Illumination float64 `json:"illumination"`
}

// Context bundles everything known about one day.
type Context struct {
	Date       calendar.Point `json:"date"`
	DayOfWeek  int            `json:"day_of_week"`
	Weekday    string         `json:"weekday"`
	Season     Season         `json:"season"`
	Moon       Moon           `json:"moon"`
	WeekNumber int            `json:"week_number"`
	ISOYear    int            `json:"iso_year"`
	ISOWeek    int            `json:"iso_week"`
	DayOfYear  int            `json:"day_of_year"`
	DaysInYear int            `json:"days_in_year"`
	LeapYear   bool           `json:"leap_year"`
	IsWeekend  bool           `json:"is_weekend"`
}

// Derive computes the full context of p.
func Derive(p calendar.Point, opts Options) Context {
	isoYear, isoWeek := p.Time().ISOWeek()
	daysInYear := 365
	if calendar.IsLeapYear(p.Year()) {
		daysInYear = 366
	}
	return Context{
		Date:       p,
		DayOfWeek:  DayOfWeek(p),
		Weekday:    p.Weekday().String(),
		Season:     SeasonOf(p, opts.Hemisphere),
		Moon:       MoonPhase(p, opts.SynodicMonth),
		WeekNumber: WeekNumber(p),
		ISOYear:    isoYear,
		ISOWeek:    isoWeek,
		DayOfYear:  DayOfYear(p),
		DaysInYear: daysInYear,
		LeapYear:   daysInYear == 366,
		IsWeekend:  IsWeekend(p, opts.Weekend),
	}
}

// DayOfWeek returns 0 for Sunday through 6 for Saturday.
func DayOfWeek(p calendar.Point) int {
	return int(p.Weekday())
}

// DayOfYear returns 1 for January 1st.
func DayOfYear(p calendar.Point) int {
	return p.YearDay()
}

// WeekNumber counts Sunday-started weeks, week 1 holding January 1st:
// ceil((daysElapsed + jan1Weekday + 1) / 7). Near year boundaries it can
// disagree with ISO-8601; Context.ISOWeek carries the strict value.
func WeekNumber(p calendar.Point) int {
	jan1 := calendar.MustDate(p.Year(), time.January, 1)
	elapsed := p.YearDay() - 1
	return (elapsed + int(jan1.Weekday()) + 1 + 6) / 7
}

// IsWeekend delegates to the single weekend predicate used by span counting.
func IsWeekend(p calendar.Point, w calendar.Weekend) bool {
	return calendar.IsWeekend(p, w)
}

// SeasonOf classifies p with the fixed boundaries Mar 20, Jun 21, Sep 23 and Dec 21.
func SeasonOf(p calendar.Point, h Hemisphere) Season {
	md := int(p.Month())*100 + p.Day()

	var s Season
	switch {
	case md >= winterStart || md < springStart:
		s = Winter
	case md < summerStart:
		s = Spring
	case md < autumnStart:
		s = Summer
	default:
		s = Autumn
	}

	if h == South {
		return opposite[s]
	}
	return s
}

var opposite = map[Season]Season{
	Spring: Autumn,
	Summer: Winter,
	Autumn: Spring,
	Winter: Summer,
}

// MoonPhase approximates the lunar phase of p from the mean synodic month.
// A non-positive synodicMonth falls back to DefaultSynodicMonth.
func MoonPhase(p calendar.Point, synodicMonth float64) Moon {
	if synodicMonth <= 0 {
		synodicMonth = DefaultSynodicMonth
	}

	days := float64(p.Time().Unix()-referenceNewMoon.Unix()) / secondsPerDay
	age := math.Mod(days, synodicMonth)
	if age < 0 {
		age += synodicMonth
	}
	phase := age / synodicMonth

	return Moon{
		Name:         PhaseName(phase),
		Phase:        phase,
		AgeDays:      age,
		Illumination: (1 - math.Cos(2*math.Pi*phase)) / 2,
	}
}

// PhaseName buckets a cycle fraction into one of eight names at 0.125 steps.
// It is total: inputs outside [0, 1) wrap into it first.
func PhaseName(phase float64) string {
	phase -= math.Floor(phase)
	i := int(phase * float64(len(phaseNames)))
	if i < 0 {
		i = 0
	}
	if i >= len(phaseNames) {
		i = len(phaseNames) - 1
	}
	return phaseNames[i]
}

// PhaseNames lists the eight phase names in cycle order.
func PhaseNames() []string {
	out := make([]string, len(phaseNames))
	copy(out, phaseNames[:])
	return out
}
