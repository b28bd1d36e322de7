package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Settings groups every engine policy that callers may override.
// The zero value is not useful; start from DefaultSettings.
type Settings struct {
	// WeekendDays lists lowercase English weekday names counted as weekend.
	WeekendDays []string `yaml:"weekend_days" toml:"weekend_days" json:"weekend_days"`

	// Hemisphere selects the season labels ("north" or "south").
	Hemisphere string `yaml:"hemisphere" toml:"hemisphere" json:"hemisphere"`

	// HijriBorrowDays is the month length borrowed by the Hijri age calculation.
	HijriBorrowDays int `yaml:"hijri_borrow_days" toml:"hijri_borrow_days" json:"hijri_borrow_days"`

	// MilestoneDays lists the day-count milestones reported in profiles and feeds.
	MilestoneDays []int `yaml:"milestone_days" toml:"milestone_days" json:"milestone_days"`

	// Language is the default output language.
	Language string `yaml:"language" toml:"language" json:"language"`

	Life LifeSettings `yaml:"life" toml:"life" json:"life"`
}

// LifeSettings holds the life statistics multipliers.
type LifeSettings struct {
	HeartbeatsPerMinute float64 `yaml:"heartbeats_per_minute" toml:"heartbeats_per_minute" json:"heartbeats_per_minute"`
	BreathsPerMinute    float64 `yaml:"breaths_per_minute" toml:"breaths_per_minute" json:"breaths_per_minute"`
	BlinksPerMinute     float64 `yaml:"blinks_per_minute" toml:"blinks_per_minute" json:"blinks_per_minute"`
	StepsPerDay         float64 `yaml:"steps_per_day" toml:"steps_per_day" json:"steps_per_day"`
	SleepHoursPerDay    float64 `yaml:"sleep_hours_per_day" toml:"sleep_hours_per_day" json:"sleep_hours_per_day"`
	MealsPerDay         float64 `yaml:"meals_per_day" toml:"meals_per_day" json:"meals_per_day"`
	LifeExpectancyYears float64 `yaml:"life_expectancy_years" toml:"life_expectancy_years" json:"life_expectancy_years"`
	DaysPerYear         float64 `yaml:"days_per_year" toml:"days_per_year" json:"days_per_year"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// DefaultSettings returns a fresh copy of the built-in policies.
func DefaultSettings() Settings {
	return Settings{
		WeekendDays:     append([]string(nil), DefaultWeekendDays...),
		Hemisphere:      DefaultHemisphere,
		HijriBorrowDays: DefaultHijriBorrowDays,
		MilestoneDays:   append([]int(nil), DefaultMilestoneDays...),
		Language:        DefaultLanguage,
		Life: LifeSettings{
			HeartbeatsPerMinute: DefaultHeartbeatsPerMinute,
			BreathsPerMinute:    DefaultBreathsPerMinute,
			BlinksPerMinute:     DefaultBlinksPerMinute,
			StepsPerDay:         DefaultStepsPerDay,
			SleepHoursPerDay:    DefaultSleepHoursPerDay,
			MealsPerDay:         DefaultMealsPerDay,
			LifeExpectancyYears: DefaultLifeExpectancyYears,
			DaysPerYear:         DefaultDaysPerYear,
		},
	}
}

// LoadSettings overlays the file at path onto DefaultSettings.
// The format is chosen from the extension; keys absent from the file keep their defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	content, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("%s: %w", ErrSettingsRead, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ExtYAML, ExtYML:
		if err := yaml.Unmarshal(content, &s); err != nil {
			return s, fmt.Errorf("%s: %w", ErrSettingsParse, err)
		}
	case ExtTOML:
		if _, err := toml.Decode(string(content), &s); err != nil {
			return s, fmt.Errorf("%s: %w", ErrSettingsParse, err)
		}
	default:
		return s, fmt.Errorf("%s: %q", ErrSettingsFormat, filepath.Ext(path))
	}

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate reports every inconsistent field at once.
func (s Settings) Validate() error {
	var errs []error

	if _, err := s.Weekend(); err != nil {
		errs = append(errs, err)
	}
	if s.Hemisphere != HemisphereNorth && s.Hemisphere != HemisphereSouth {
		errs = append(errs, fmt.Errorf("%s: %q", ErrHemisphere, s.Hemisphere))
	}
	if s.HijriBorrowDays < MinHijriBorrowDays || s.HijriBorrowDays > MaxHijriBorrowDays {
		errs = append(errs, fmt.Errorf("%s: %d", ErrBorrowDays, s.HijriBorrowDays))
	}
	for _, d := range s.MilestoneDays {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("milestone_days: %s: %d", ErrNonPositive, d))
		}
	}

	life := map[string]float64{
		"heartbeats_per_minute": s.Life.HeartbeatsPerMinute,
		"breaths_per_minute":    s.Life.BreathsPerMinute,
		"blinks_per_minute":     s.Life.BlinksPerMinute,
		"steps_per_day":         s.Life.StepsPerDay,
		"sleep_hours_per_day":   s.Life.SleepHoursPerDay,
		"meals_per_day":         s.Life.MealsPerDay,
		"life_expectancy_years": s.Life.LifeExpectancyYears,
		"days_per_year":         s.Life.DaysPerYear,
	}
	for name, v := range life {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s: %s: %v", name, ErrNonPositive, v))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %w", ErrSettingsInvalid, errors.Join(errs...))
}

// Weekend resolves WeekendDays into weekdays, rejecting unknown names.
func (s Settings) Weekend() ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(s.WeekendDays))
	for _, name := range s.WeekendDays {
		wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("%s: %q", ErrWeekday, name)
		}
		days = append(days, wd)
	}
	return days, nil
}
