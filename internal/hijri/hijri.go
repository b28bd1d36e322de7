package hijri

import (
	"fmt"
	"math"

	"github.com/tartampluch/go-lifespan/internal/calendar"
	"github.com/tartampluch/go-lifespan/internal/config"
)

// Tabular algorithm constants.
const (
	epochJDN      = 1948440 // 1 Muharram 1 AH, Julian Day Number
	cycleOffset   = 10632
	cycleDays     = 10631 // 30 Hijri years
	cycleYears    = 30
	yearOffset    = 354
	monthsPerYear = 12
	maxMonthDays  = 30
)

// Approximations used by the Hijri age aggregates.
const (
	AverageYearDays  = 354.36667
	SynodicMonthDays = 29.53
)

var monthNames = [monthsPerYear]string{
	"Muharram",
	"Safar",
	"Rabi al-Awwal",
	"Rabi al-Thani",
	"Jumada al-Ula",
	"Jumada al-Akhirah",
	"Rajab",
	"Sha'ban",
	"Ramadan",
	"Shawwal",
	"Dhu al-Qadah",
	"Dhu al-Hijjah",
}

// Date is a tabular Hijri calendar date.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// FromGregorian converts a Gregorian point to its tabular Hijri date.
// The conversion is one-way; there is no inverse.
func FromGregorian(p calendar.Point) (Date, error) {
	if p.Year() < config.MinGregorianYear {
		return Date{}, fmt.Errorf("%w: %s is before year %d", calendar.ErrInvalidDate, p, config.MinGregorianYear)
	}
	jd := p.JulianDayNumber()
	if jd < epochJDN {
		return Date{}, fmt.Errorf("%w: %s is before the Hijri epoch", calendar.ErrInvalidDate, p)
	}

	l := jd - epochJDN + cycleOffset
	n := (l - 1) / cycleDays
	l = l - cycleDays*n + yearOffset
	j := ((10985-l)/5316)*((50*l)/17719) + (l/5670)*((43*l)/15238)
	l = l - ((30-j)/15)*((17719*j)/50) - (j/16)*((15238*j)/43) + 29
	month := (24 * l) / 709
	day := l - (709*month)/24
	year := cycleYears*n + j - cycleYears

	return Date{Year: year, Month: month, Day: day}, nil
}

// Validate checks the field ranges of a Hijri date.
func (d Date) Validate() error {
	if d.Year < 1 || d.Month < 1 || d.Month > monthsPerYear || d.Day < 1 || d.Day > maxMonthDays {
		return fmt.Errorf("%w: hijri %s", calendar.ErrInvalidDate, d)
	}
	return nil
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// MonthName returns the transliterated month name, or "" for an invalid month.
func (d Date) MonthName() string {
	if d.Month < 1 || d.Month > monthsPerYear {
		return ""
	}
	return monthNames[d.Month-1]
}

func (d Date) String() string {
	return fmt.Sprintf(config.FormatHijriDate, d.Year, d.Month, d.Day)
}

// Options tunes the Hijri age approximation.
type Options struct {
	// MonthBorrowDays is the month length borrowed when the day remainder is negative.
	MonthBorrowDays int
}

// DefaultOptions borrows 30 days per month.
func DefaultOptions() Options {
	return Options{MonthBorrowDays: config.DefaultHijriBorrowDays}
}

// Age is an approximate elapsed time in Hijri units.
type Age struct {
	Years       int   `json:"years"`
	Months      int   `json:"months"`
	Days        int   `json:"days"`
	TotalMonths int   `json:"total_months"`
	TotalDays   int64 `json:"total_days"`
}

// AgeBetween subtracts two Hijri dates field by field.
// Month lengths are not tracked, so a negative day remainder borrows the fixed
// opts.MonthBorrowDays and TotalDays is derived from average year and month lengths.
func AgeBetween(birth, today Date, opts Options) (Age, error) {
	if err := birth.Validate(); err != nil {
		return Age{}, err
	}
	if err := today.Validate(); err != nil {
		return Age{}, err
	}
	if today.Before(birth) {
		return Age{}, fmt.Errorf("%w: hijri %s > %s", calendar.ErrInvalidRange, birth, today)
	}

	borrowDays := opts.MonthBorrowDays
	if borrowDays <= 0 {
		borrowDays = config.DefaultHijriBorrowDays
	}

	a := Age{
		Years:  today.Year - birth.Year,
		Months: today.Month - birth.Month,
		Days:   today.Day - birth.Day,
	}
	if a.Days < 0 {
		a.Days += borrowDays
		a.Months--
	}
	if a.Months < 0 {
		a.Months += monthsPerYear
		a.Years--
	}

	a.TotalMonths = a.Years*monthsPerYear + a.Months
	a.TotalDays = int64(math.Floor(float64(a.Years)*AverageYearDays + float64(a.Months)*SynodicMonthDays + float64(a.Days)))
	return a, nil
}
