// Package engine is the single entry point over the calendar packages.
// It turns a (birth, reference) pair into one composite Profile.
//
// An Engine holds only immutable policies resolved at construction time;
// every method is safe for concurrent use.
package engine

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-lifespan/internal/calendar"
	"github.com/tartampluch/go-lifespan/internal/config"
	"github.com/tartampluch/go-lifespan/internal/daily"
	"github.com/tartampluch/go-lifespan/internal/generation"
	"github.com/tartampluch/go-lifespan/internal/hijri"
	"github.com/tartampluch/go-lifespan/internal/lifestats"
	"github.com/tartampluch/go-lifespan/internal/zodiac"
)

// Engine derives spans and profiles under a fixed set of regional policies.
type Engine struct {
	clock      Clock
	settings   config.Settings
	weekend    calendar.Weekend
	day        daily.Options
	hijri      hijri.Options
	life       lifestats.Constants
	milestones []int
}

// Option customizes an Engine built by New.
type Option func(*Engine)

// WithClock replaces the system clock used by ProfileToday.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithSettings replaces the default policies. They are validated by New.
func WithSettings(s config.Settings) Option {
	return func(e *Engine) {
		e.settings = s
	}
}

// New builds an Engine from DefaultSettings and the given options.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		clock:    RealClock{},
		settings: config.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.settings.Validate(); err != nil {
		return nil, err
	}
	days, err := e.settings.Weekend()
	if err != nil {
		return nil, err
	}

	e.weekend = calendar.NewWeekend(days...)
	e.day = daily.Options{
		Weekend:      e.weekend,
		Hemisphere:   daily.Hemisphere(e.settings.Hemisphere),
		SynodicMonth: daily.DefaultSynodicMonth,
	}
	e.hijri = hijri.Options{MonthBorrowDays: e.settings.HijriBorrowDays}
	e.life = lifestats.FromSettings(e.settings.Life)
	e.milestones = append([]int(nil), e.settings.MilestoneDays...)
	return e, nil
}

// Settings returns a copy of the policies in effect.
func (e *Engine) Settings() config.Settings {
	s := e.settings
	s.WeekendDays = append([]string(nil), s.WeekendDays...)
	s.MilestoneDays = append([]int(nil), s.MilestoneDays...)
	return s
}

// Clock exposes the engine's time source to collaborators.
func (e *Engine) Clock() Clock {
	return e.clock
}

// Today is the clock's current wall time as a Point.
func (e *Engine) Today() calendar.Point {
	return calendar.FromTime(e.clock.Now())
}

// Span computes the detailed span between two points.
func (e *Engine) Span(start, end calendar.Point) (calendar.Span, error) {
	return calendar.ComputeSpan(start, end, e.weekend)
}

// Context derives the daily context of p under the engine's policies.
func (e *Engine) Context(p calendar.Point) daily.Context {
	return daily.Derive(p, e.day)
}

// Estimate scales a span into life statistics.
func (e *Engine) Estimate(s calendar.Span) lifestats.Stats {
	return lifestats.Estimate(s.Totals.Days, s.Totals.Minutes, e.life)
}

// HijriFacts is the Hijri side of a profile.
type HijriFacts struct {
	Birth     hijri.Date `json:"birth"`
	Reference hijri.Date `json:"reference"`
	Age       hijri.Age  `json:"age"`
}

// Profile is everything derived from one (birth, reference) pair.
type Profile struct {
	Birth     calendar.Point `json:"birth"`
	Reference calendar.Point `json:"reference"`
	Span      calendar.Span  `json:"span"`

	// Hijri is nil when the birth date precedes the Hijri epoch.
	Hijri *HijriFacts `json:"hijri,omitempty"`

	Chinese     zodiac.Chinese        `json:"chinese_zodiac"`
	AnimalInfo  zodiac.Profile        `json:"animal_profile"`
	ElementInfo zodiac.ElementProfile `json:"element_profile"`
	Western     zodiac.Sign           `json:"western_zodiac"`

	// Generation is nil for birth years outside the cohort table.
	Generation *generation.Generation `json:"generation,omitempty"`

	BirthDay daily.Context `json:"birth_day"`
	Today    daily.Context `json:"reference_day"`

	Life         lifestats.Stats `json:"life_statistics"`
	NextBirthday Birthday        `json:"next_birthday"`
	Milestones   []Milestone     `json:"milestones"`
}

// Profile aggregates every derivation for birth as seen from reference.
// It fails with ErrInvalidRange when reference is before birth and with
// ErrUnclassified if a lookup table turns out to be incomplete.
func (e *Engine) Profile(birth, reference calendar.Point) (Profile, error) {
	span, err := e.Span(birth, reference)
	if err != nil {
		return Profile{}, err
	}

	p := Profile{
		Birth:        birth,
		Reference:    reference,
		Span:         span,
		Chinese:      zodiac.ChineseZodiac(birth.Year()),
		BirthDay:     e.Context(birth),
		Today:        e.Context(reference),
		Life:         e.Estimate(span),
		NextBirthday: NextBirthday(birth, reference, true),
		Milestones:   Milestones(birth, reference, e.milestones),
	}

	if p.Hijri, err = e.hijriFacts(birth, reference); err != nil {
		return Profile{}, err
	}

	if p.AnimalInfo, err = zodiac.ProfileOf(p.Chinese.Animal); err != nil {
		return Profile{}, err
	}
	if p.ElementInfo, err = zodiac.ElementInfo(p.Chinese.Element); err != nil {
		return Profile{}, err
	}
	if p.Western, err = zodiac.WesternZodiac(birth.Month(), birth.Day()); err != nil {
		return Profile{}, err
	}

	g, err := generation.Of(birth.Year())
	switch {
	case err == nil:
		p.Generation = &g
	case !errors.Is(err, calendar.ErrOutOfRange):
		return Profile{}, err
	}

	return p, nil
}

// ProfileToday is Profile with the clock's current time as reference.
func (e *Engine) ProfileToday(birth calendar.Point) (Profile, error) {
	return e.Profile(birth, e.Today())
}

// hijriFacts returns nil facts, not an error, for births before the epoch.
func (e *Engine) hijriFacts(birth, reference calendar.Point) (*HijriFacts, error) {
	hb, err := hijri.FromGregorian(birth)
	if errors.Is(err, calendar.ErrInvalidDate) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	hr, err := hijri.FromGregorian(reference)
	if err != nil {
		return nil, fmt.Errorf("hijri reference: %w", err)
	}

	age, err := hijri.AgeBetween(hb, hr, e.hijri)
	if err != nil {
		return nil, err
	}
	return &HijriFacts{Birth: hb, Reference: hr, Age: age}, nil
}
