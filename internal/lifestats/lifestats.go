// Package lifestats scales elapsed time into illustrative life statistics.
// The multipliers are entertainment figures, not physiological data.
package lifestats

import (
	"math"

	"github.com/tartampluch/go-lifespan/internal/config"
)

// Constants holds the per-unit multipliers. Every field is overridable.
type Constants struct {
	HeartbeatsPerMinute float64
	BreathsPerMinute    float64
	BlinksPerMinute     float64
	StepsPerDay         float64
	SleepHoursPerDay    float64
	MealsPerDay         float64
	LifeExpectancyYears float64
	DaysPerYear         float64
}

// DefaultConstants returns the built-in multipliers.
func DefaultConstants() Constants {
	return FromSettings(config.DefaultSettings().Life)
}

// FromSettings maps the configuration section onto Constants.
func FromSettings(s config.LifeSettings) Constants {
	return Constants{
		HeartbeatsPerMinute: s.HeartbeatsPerMinute,
		BreathsPerMinute:    s.BreathsPerMinute,
		BlinksPerMinute:     s.BlinksPerMinute,
		StepsPerDay:         s.StepsPerDay,
		SleepHoursPerDay:    s.SleepHoursPerDay,
		MealsPerDay:         s.MealsPerDay,
		LifeExpectancyYears: s.LifeExpectancyYears,
		DaysPerYear:         s.DaysPerYear,
	}
}

// ExpectedDays is the life expectancy expressed in days.
func (c Constants) ExpectedDays() float64 {
	return c.LifeExpectancyYears * c.DaysPerYear
}

// Stats are the derived estimates for one elapsed duration.
type Stats struct {
	Heartbeats int64 `json:"heartbeats"`
	Breaths    int64 `json:"breaths"`
	Blinks     int64 `json:"blinks"`
	Steps      int64 `json:"steps"`
	SleepHours int64 `json:"sleep_hours"`
	Meals      int64 `json:"meals"`
	// LifeExpectancyPercentage is clamped to [0, 100] with two decimals.
	LifeExpectancyPercentage float64 `json:"life_expectancy_percentage"`
	// DaysRemaining is the expected number of days left, never negative.
	DaysRemaining int64 `json:"days_remaining"`
}

// Estimate scales totalDays and totalMinutes by c. Negative inputs count as zero.
func Estimate(totalDays, totalMinutes int64, c Constants) Stats {
	days := float64(max(totalDays, 0))
	minutes := float64(max(totalMinutes, 0))

	stats := Stats{
		Heartbeats: scale(minutes, c.HeartbeatsPerMinute),
		Breaths:    scale(minutes, c.BreathsPerMinute),
		Blinks:     scale(minutes, c.BlinksPerMinute),
		Steps:      scale(days, c.StepsPerDay),
		SleepHours: scale(days, c.SleepHoursPerDay),
		Meals:      scale(days, c.MealsPerDay),
	}

	expected := c.ExpectedDays()
	if expected <= 0 {
		return stats
	}
	stats.LifeExpectancyPercentage = Percentage(days, expected)
	stats.DaysRemaining = int64(math.Max(math.Floor(expected-days), 0))
	return stats
}

// Percentage returns part/whole as a percentage clamped to [0, 100],
// rounded to two decimals.
func Percentage(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	pct := math.Min(math.Max(part/whole*100, 0), 100)
	return math.Round(pct*100) / 100
}

func scale(v, per float64) int64 {
	return int64(math.Floor(v * per))
}
