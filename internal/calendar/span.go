package calendar

import (
	"fmt"
	"time"
)

// Difference is the detailed, borrow-adjusted distance between two points.
type Difference struct {
	Years   int `json:"years"`
	Months  int `json:"months"`
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// IsZero reports whether every field is zero.
func (d Difference) IsZero() bool {
	return d == Difference{}
}

// ApplyTo adds the difference to start. Years and months are added first,
// clamping the day to the end of a shorter target month, then days, then the
// clock fields. For every start <= end, Diff(start, end).ApplyTo(start) == end.
func (d Difference) ApplyTo(start Point) Point {
	y, m, day := start.t.Date()
	total := y*monthsPerYear + int(m-1) + d.Years*monthsPerYear + d.Months
	ty, tm := total/monthsPerYear, time.Month(total%monthsPerYear+1)
	day = min(day, DaysIn(ty, tm))

	t := time.Date(ty, tm, day, start.Hour(), start.Minute(), start.Second(), 0, time.UTC)
	t = t.AddDate(0, 0, d.Days)
	t = t.Add(time.Duration(d.Hours)*time.Hour +
		time.Duration(d.Minutes)*time.Minute +
		time.Duration(d.Seconds)*time.Second)
	return Point{t: t}
}

// Totals are whole-unit aggregates of a span. Each is non-decreasing in span length.
type Totals struct {
	Seconds int64 `json:"seconds"`
	Minutes int64 `json:"minutes"`
	Hours   int64 `json:"hours"`
	Days    int64 `json:"days"`
	Weeks   int64 `json:"weeks"`
	Months  int64 `json:"months"`
	Years   int64 `json:"years"`
}

// Span is an ordered pair of points with everything derived from it.
type Span struct {
	Start      Point      `json:"start"`
	End        Point      `json:"end"`
	Difference Difference `json:"difference"`
	Totals     Totals     `json:"totals"`
	Workdays   int        `json:"workdays"`
	Weekend    int        `json:"weekend_days"`
}

// ComputeSpan derives the span from start to end using the given weekend convention.
// It fails with ErrInvalidRange when end is before start.
func ComputeSpan(start, end Point, w Weekend) (Span, error) {
	diff, err := Diff(start, end)
	if err != nil {
		return Span{}, err
	}
	workdays, weekend, err := CountDays(start, end, w)
	if err != nil {
		return Span{}, err
	}

	secs := end.t.Unix() - start.t.Unix()
	months := int64(WholeMonths(start, end))
	days := secs / secondsPerDay

	return Span{
		Start:      start,
		End:        end,
		Difference: diff,
		Totals: Totals{
			Seconds: secs,
			Minutes: secs / secondsPerMinute,
			Hours:   secs / secondsPerHour,
			Days:    days,
			Weeks:   days / daysPerWeek,
			Months:  months,
			Years:   months / monthsPerYear,
		},
		Workdays: workdays,
		Weekend:  weekend,
	}, nil
}

// Diff computes the detailed difference by field-wise subtraction from seconds
// up to years. A negative field borrows one unit from the next field: 60 seconds,
// 60 minutes, 24 hours, the real length of the month preceding the end month,
// 12 months. An end day-of-month before the start day always borrows a month;
// a start day missing from the borrowed month counts from that month's last day,
// matching ApplyTo.
func Diff(start, end Point) (Difference, error) {
	if end.Before(start) {
		return Difference{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange, start, end)
	}

	var d Difference
	borrow := 0

	d.Seconds = end.Second() - start.Second()
	if d.Seconds < 0 {
		d.Seconds += secondsPerMinute
		borrow = 1
	}

	d.Minutes = end.Minute() - start.Minute() - borrow
	borrow = 0
	if d.Minutes < 0 {
		d.Minutes += minutesPerHour
		borrow = 1
	}

	d.Hours = end.Hour() - start.Hour() - borrow
	borrow = 0
	if d.Hours < 0 {
		d.Hours += hoursPerDay
		borrow = 1
	}

	ey, em, ed := lastWholeDay(start, end).Date()
	_, _, sd := start.t.Date()

	months := WholeMonths(start, end)
	if ed >= sd {
		d.Days = ed - sd
	} else {
		py, pm := previousMonth(ey, em)
		dim := DaysIn(py, pm)
		d.Days = ed + dim - min(sd, dim)
	}

	d.Years = months / monthsPerYear
	d.Months = months % monthsPerYear
	return d, nil
}

// WholeMonths counts the calendar months elapsed from start to end, less one
// when the end day-of-month is before the start day. An end whose time of day
// precedes the start's has not completed its last day.
func WholeMonths(start, end Point) int {
	ey, em, ed := lastWholeDay(start, end).Date()
	sy, sm, sd := start.t.Date()

	months := (ey-sy)*monthsPerYear + int(em-sm)
	if ed < sd {
		months--
	}
	return months
}

// lastWholeDay is end, moved back one calendar day when its clock is before start's.
func lastWholeDay(start, end Point) time.Time {
	if clockSeconds(end) < clockSeconds(start) {
		return end.t.AddDate(0, 0, -1)
	}
	return end.t
}

func clockSeconds(p Point) int {
	return p.Hour()*secondsPerHour + p.Minute()*secondsPerMinute + p.Second()
}

func previousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}
