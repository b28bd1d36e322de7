package calendar

import (
	"fmt"
	"time"
)

// Weekend is the set of weekdays counted as non-working days.
// It is a value type; copies never share state.
type Weekend struct {
	days [daysPerWeek]bool
}

// NewWeekend builds a Weekend from the given weekdays.
func NewWeekend(days ...time.Weekday) Weekend {
	var w Weekend
	for _, d := range days {
		if d >= time.Sunday && d <= time.Saturday {
			w.days[d] = true
		}
	}
	return w
}

// DefaultWeekend is the Friday/Saturday convention.
// It encodes a regional assumption; callers elsewhere should pass their own.
func DefaultWeekend() Weekend {
	return NewWeekend(time.Friday, time.Saturday)
}

// Contains reports whether d is a weekend day.
func (w Weekend) Contains(d time.Weekday) bool {
	if d < time.Sunday || d > time.Saturday {
		return false
	}
	return w.days[d]
}

// Len returns the number of weekend days per week.
func (w Weekend) Len() int {
	n := 0
	for _, on := range w.days {
		if on {
			n++
		}
	}
	return n
}

// Days lists the weekend days from Sunday to Saturday.
func (w Weekend) Days() []time.Weekday {
	var out []time.Weekday
	for d, on := range w.days {
		if on {
			out = append(out, time.Weekday(d))
		}
	}
	return out
}

// IsWeekend is the single weekend predicate of the repository.
func IsWeekend(p Point, w Weekend) bool {
	return w.Contains(p.Weekday())
}

// CountDays splits the inclusive calendar-day range [start, end] into workdays
// and weekend days. It runs in constant time: whole weeks contribute
// w.Len() weekend days each, and only the trailing partial week is scanned.
func CountDays(start, end Point, w Weekend) (workdays, weekend int, err error) {
	if end.Before(start) {
		return 0, 0, fmt.Errorf("%w: %s > %s", ErrInvalidRange, start, end)
	}

	total := DaysBetween(start, end) + 1
	weekend = (total / daysPerWeek) * w.Len()

	first := start.Weekday()
	for i := 0; i < total%daysPerWeek; i++ {
		if w.Contains((first + time.Weekday(i)) % daysPerWeek) {
			weekend++
		}
	}
	return total - weekend, weekend, nil
}
