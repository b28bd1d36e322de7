package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/tartampluch/go-lifespan/internal/config"
)

const (
	minYear = 1
	maxYear = 9999

	secondsPerMinute = 60
	minutesPerHour   = 60
	hoursPerDay      = 24
	secondsPerHour   = secondsPerMinute * minutesPerHour
	secondsPerDay    = secondsPerHour * hoursPerDay
	daysPerWeek      = 7
	monthsPerYear    = 12

	// julianDayUnixEpoch is the Julian Day Number of 1970-01-01.
	julianDayUnixEpoch = 2440588

	pointLayout = "2006-01-02T15:04:05"
)

// Point is an immutable wall-clock instant with second precision.
//
// The wall-clock fields are stored on a UTC time.Time so that every difference
// is computed on the civil calendar, free of DST or zone offsets.
type Point struct {
	t time.Time
}

// NewPoint validates each field and builds a Point.
// Unlike time.Date it never normalizes: Feb 30 is an error, not Mar 1.
func NewPoint(year int, month time.Month, day, hour, minute, second int) (Point, error) {
	switch {
	case year < minYear || year > maxYear:
		return Point{}, fmt.Errorf("%w: year %d", ErrInvalidDate, year)
	case month < time.January || month > time.December:
		return Point{}, fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	case day < 1 || day > DaysIn(year, month):
		return Point{}, fmt.Errorf("%w: day %d of %04d-%02d", ErrInvalidDate, day, year, month)
	case hour < 0 || hour >= hoursPerDay:
		return Point{}, fmt.Errorf("%w: hour %d", ErrInvalidDate, hour)
	case minute < 0 || minute >= minutesPerHour:
		return Point{}, fmt.Errorf("%w: minute %d", ErrInvalidDate, minute)
	case second < 0 || second >= secondsPerMinute:
		return Point{}, fmt.Errorf("%w: second %d", ErrInvalidDate, second)
	}
	return Point{t: time.Date(year, month, day, hour, minute, second, 0, time.UTC)}, nil
}

// NewDate builds a Point at midnight.
func NewDate(year int, month time.Month, day int) (Point, error) {
	return NewPoint(year, month, day, 0, 0, 0)
}

// MustDate is NewDate for static inputs known to be valid. It panics otherwise.
func MustDate(year int, month time.Month, day int) Point {
	p, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return p
}

// FromTime keeps the wall-clock fields of t as seen in its own location.
func FromTime(t time.Time) Point {
	y, m, d := t.Date()
	return Point{t: time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)}
}

// ParsePoint reads an ISO-8601-like date or date-time.
// Fixed layouts are tried first; free-form input falls back to dateparse
// with day-first disambiguation.
func ParsePoint(value string) (Point, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Point{}, fmt.Errorf("%w: empty input", ErrInvalidDate)
	}

	layouts := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatFullT,
		config.DateFormatFullTZ,
		config.DateFormatSpaced,
		config.DateFormatRFC3339,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return checkedFromTime(t, value)
		}
	}

	t, err := dateparse.ParseIn(value, time.UTC, dateparse.PreferMonthFirst(false))
	if err != nil {
		return Point{}, fmt.Errorf("%w: %q: %v", ErrInvalidDate, value, err)
	}
	return checkedFromTime(t, value)
}

func checkedFromTime(t time.Time, raw string) (Point, error) {
	if t.Year() < minYear || t.Year() > maxYear {
		return Point{}, fmt.Errorf("%w: %q: year %d", ErrInvalidDate, raw, t.Year())
	}
	return FromTime(t), nil
}

// Time returns the wall-clock fields on a UTC time.Time.
func (p Point) Time() time.Time { return p.t }

func (p Point) Year() int { return p.t.Year() }
func (p Point) Month() time.Month { return p.t.Month() }
func (p Point) Day() int { return p.t.Day() }
func (p Point) Hour() int { return p.t.Hour() }
func (p Point) Minute() int { return p.t.Minute() }
func (p Point) Second() int { return p.t.Second() }
func (p Point) Weekday() time.Weekday { return p.t.Weekday() }
func (p Point) YearDay() int { return p.t.YearDay() }
func (p Point) IsZero() bool { return p.t.IsZero() }
func (p Point) Before(other Point) bool { return p.t.Before(other.t) }
func (p Point) After(other Point) bool { return p.t.After(other.t) }
func (p Point) Equal(other Point) bool { return p.t.Equal(other.t) }

// DateOnly drops the time of day.
func (p Point) DateOnly() Point {
	y, m, d := p.t.Date()
	return Point{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// AddDays moves the point by whole calendar days.
func (p Point) AddDays(n int) Point {
	return Point{t: p.t.AddDate(0, 0, n)}
}

// JulianDayNumber returns the chronological Julian Day Number of the point's date.
func (p Point) JulianDayNumber() int {
	return int(floorDiv(p.DateOnly().t.Unix(), secondsPerDay)) + julianDayUnixEpoch
}

// String renders the point as 2006-01-02T15:04:05.
func (p Point) String() string {
	return p.t.Format(pointLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (p Point) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Point) UnmarshalText(b []byte) error {
	parsed, err := ParsePoint(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// IsLeapYear applies the Gregorian leap rule.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysIn returns the number of days of month in year.
func DaysIn(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// DaysBetween counts calendar days from a to b, ignoring the time of day.
// The result is negative when b is before a.
func DaysBetween(a, b Point) int {
	return int((b.DateOnly().t.Unix() - a.DateOnly().t.Unix()) / secondsPerDay)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
