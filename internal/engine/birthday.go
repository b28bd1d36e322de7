package engine

import (
	"slices"
	"time"

	"github.com/tartampluch/go-lifespan/internal/calendar"
)

// Birthday is the next anniversary of a birth date.
type Birthday struct {
	Date      calendar.Point `json:"date"`
	Age       int            `json:"age"`
	DaysUntil int            `json:"days_until"`
	Weekday   string         `json:"weekday"`
	IsToday   bool           `json:"is_today"`
}

// NextBirthday returns the first anniversary of birth on or after the reference day.
// A Feb 29 birthday falls on Mar 1 in common years. Age stays 0 when the
// birth year is unknown.
func NextBirthday(birth, reference calendar.Point, yearKnown bool) Birthday {
	today := reference.DateOnly()

	candidate := anniversary(birth, today.Year())
	if candidate.Before(today) {
		candidate = anniversary(birth, today.Year()+1)
	}

	age := 0
	if yearKnown {
		age = candidate.Year() - birth.Year()
	}

	days := calendar.DaysBetween(today, candidate)
	return Birthday{
		Date:      candidate,
		Age:       age,
		DaysUntil: days,
		Weekday:   candidate.Weekday().String(),
		IsToday:   days == 0,
	}
}

// anniversary places birth's month and day in year, letting time.Date roll
// Feb 29 over to Mar 1 when year is not a leap year.
func anniversary(birth calendar.Point, year int) calendar.Point {
	return calendar.FromTime(time.Date(year, birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC))
}

// Milestone is the day a given number of days have elapsed since birth.
type Milestone struct {
	Days      int            `json:"days"`
	Date      calendar.Point `json:"date"`
	Reached   bool           `json:"reached"`
	DaysUntil int            `json:"days_until"`
}

// Milestones lists the day-count milestones of birth in ascending order.
// Non-positive and duplicate counts are ignored.
func Milestones(birth, reference calendar.Point, days []int) []Milestone {
	counts := make([]int, 0, len(days))
	for _, d := range days {
		if d > 0 {
			counts = append(counts, d)
		}
	}
	slices.Sort(counts)
	counts = slices.Compact(counts)

	start := birth.DateOnly()
	today := reference.DateOnly()

	out := make([]Milestone, 0, len(counts))
	for _, d := range counts {
		date := start.AddDays(d)
		m := Milestone{
			Days:    d,
			Date:    date,
			Reached: !date.After(today),
		}
		if !m.Reached {
			m.DaysUntil = calendar.DaysBetween(today, date)
		}
		out = append(out, m)
	}
	return out
}
