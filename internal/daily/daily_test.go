package daily_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifespan/internal/calendar"
	"github.com/tartampluch/go-lifespan/internal/daily"
)

// -----------------------------------------------------------------------------
// Seasons
// -----------------------------------------------------------------------------

func TestSeasonOf(t *testing.T) {
	tests := []struct {
		name  string
		date  calendar.Point
		north daily.Season
		south daily.Season
	}{
		{"Equinox", calendar.MustDate(2024, time.March, 21), daily.Spring, daily.Autumn},
		{"SpringOpens", calendar.MustDate(2024, time.March, 20), daily.Spring, daily.Autumn},
		{"LateWinter", calendar.MustDate(2024, time.March, 19), daily.Winter, daily.Summer},
		{"Solstice", calendar.MustDate(2024, time.June, 21), daily.Summer, daily.Winter},
		{"LateSummer", calendar.MustDate(2024, time.September, 22), daily.Summer, daily.Winter},
		{"AutumnOpens", calendar.MustDate(2024, time.September, 23), daily.Autumn, daily.Spring},
		{"WinterOpens", calendar.MustDate(2024, time.December, 21), daily.Winter, daily.Summer},
		{"NewYear", calendar.MustDate(2025, time.January, 1), daily.Winter, daily.Summer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.north, daily.SeasonOf(tt.date, daily.North))
			assert.Equal(t, tt.south, daily.SeasonOf(tt.date, daily.South))
		})
	}
}

// -----------------------------------------------------------------------------
// Moon
// -----------------------------------------------------------------------------

func TestMoonPhase_KnownDates(t *testing.T) {
	tests := []struct {
		date calendar.Point
		want string
	}{
		{calendar.MustDate(2024, time.January, 13), daily.NewMoon},
		{calendar.MustDate(2024, time.January, 17), daily.WaxingCrescent},
		{calendar.MustDate(2024, time.January, 20), daily.FirstQuarter},
		{calendar.MustDate(2024, time.January, 24), daily.WaxingGibbous},
		{calendar.MustDate(2024, time.January, 28), daily.FullMoon},
		{calendar.MustDate(2024, time.January, 31), daily.WaningGibbous},
		{calendar.MustDate(2024, time.February, 4), daily.LastQuarter},
		{calendar.MustDate(2024, time.February, 8), daily.WaningCrescent},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			m := daily.MoonPhase(tt.date, daily.DefaultSynodicMonth)
			assert.Equal(t, tt.want, m.Name, "date %s phase %.3f", tt.date, m.Phase)
			assert.GreaterOrEqual(t, m.Phase, 0.0)
			assert.Less(t, m.Phase, 1.0)
			assert.GreaterOrEqual(t, m.Illumination, 0.0)
			assert.LessOrEqual(t, m.Illumination, 1.0)
		})
	}
}

func TestMoonPhase_ReferenceAndDistantDates(t *testing.T) {
	ref, err := calendar.NewPoint(2000, time.January, 6, 18, 14, 0)
	require.NoError(t, err)

	m := daily.MoonPhase(ref, daily.DefaultSynodicMonth)
	assert.Equal(t, daily.NewMoon, m.Name)
	assert.InDelta(t, 0, m.Phase, 1e-9)
	assert.InDelta(t, 0, m.Illumination, 1e-9)

	// Far outside the range of time.Duration.
	for _, p := range []calendar.Point{
		calendar.MustDate(622, time.July, 19),
		calendar.MustDate(1500, time.January, 1),
		calendar.MustDate(2500, time.December, 31),
	} {
		m := daily.MoonPhase(p, 0)
		assert.GreaterOrEqual(t, m.Phase, 0.0, "date %s", p)
		assert.Less(t, m.Phase, 1.0, "date %s", p)
		assert.Contains(t, daily.PhaseNames(), m.Name)
	}
}

func TestPhaseName_Total(t *testing.T) {
	names := daily.PhaseNames()
	require.Len(t, names, 8)

	for i := 0; i < 8000; i++ {
		phase := float64(i) / 8000
		got := daily.PhaseName(phase)
		assert.Equal(t, names[int(math.Floor(phase*8))], got, "phase %f", phase)
	}

	assert.Equal(t, daily.NewMoon, daily.PhaseName(1.0))
	assert.Equal(t, daily.WaningCrescent, daily.PhaseName(-0.01))
	assert.Equal(t, daily.FullMoon, daily.PhaseName(2.5))
}

// -----------------------------------------------------------------------------
// Calendar Positions
// -----------------------------------------------------------------------------

func TestWeekNumber(t *testing.T) {
	tests := []struct {
		date calendar.Point
		want int
	}{
		{calendar.MustDate(2024, time.January, 1), 1},
		{calendar.MustDate(2024, time.January, 6), 1},
		{calendar.MustDate(2024, time.January, 7), 2},
		{calendar.MustDate(2024, time.December, 31), 53},
		{calendar.MustDate(2022, time.January, 1), 1},
		{calendar.MustDate(2022, time.January, 2), 2},
		{calendar.MustDate(2023, time.January, 1), 1},
		{calendar.MustDate(2023, time.January, 8), 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, daily.WeekNumber(tt.date), "date %s", tt.date)
	}
}

// Week numbers never decrease within a year and advance only on Sundays.
func TestWeekNumber_Monotonic(t *testing.T) {
	prev := 0
	for day := calendar.MustDate(2021, time.January, 1); day.Year() == 2021; day = day.AddDays(1) {
		w := daily.WeekNumber(day)
		if day.Weekday() == time.Sunday && day.YearDay() > 1 {
			assert.Equal(t, prev+1, w, "date %s", day)
		} else if day.YearDay() > 1 {
			assert.Equal(t, prev, w, "date %s", day)
		}
		prev = w
	}
}

func TestDayOfYearAndWeek(t *testing.T) {
	assert.Equal(t, 1, daily.DayOfYear(calendar.MustDate(2024, time.January, 1)))
	assert.Equal(t, 60, daily.DayOfYear(calendar.MustDate(2024, time.February, 29)))
	assert.Equal(t, 366, daily.DayOfYear(calendar.MustDate(2024, time.December, 31)))
	assert.Equal(t, 365, daily.DayOfYear(calendar.MustDate(2023, time.December, 31)))

	assert.Equal(t, 1, daily.DayOfWeek(calendar.MustDate(2024, time.January, 1)))
	assert.Equal(t, 0, daily.DayOfWeek(calendar.MustDate(2023, time.January, 1)))
	assert.Equal(t, 6, daily.DayOfWeek(calendar.MustDate(2022, time.January, 1)))
}

// IsWeekend must agree with what span counting sees for a single day.
func TestIsWeekend_MatchesSpanCounting(t *testing.T) {
	policies := []calendar.Weekend{
		calendar.DefaultWeekend(),
		calendar.NewWeekend(time.Saturday, time.Sunday),
		calendar.NewWeekend(time.Sunday),
		calendar.NewWeekend(),
	}

	for _, w := range policies {
		for day := calendar.MustDate(2024, time.January, 1); day.Month() == time.January; day = day.AddDays(1) {
			_, weekend, err := calendar.CountDays(day, day, w)
			require.NoError(t, err)
			assert.Equal(t, weekend == 1, daily.IsWeekend(day, w), "date %s", day)
		}
	}
}

// -----------------------------------------------------------------------------
// Derive
// -----------------------------------------------------------------------------

func TestDerive(t *testing.T) {
	p := calendar.MustDate(2024, time.December, 31)
	ctx := daily.Derive(p, daily.DefaultOptions())

	assert.Equal(t, p, ctx.Date)
	assert.Equal(t, 2, ctx.DayOfWeek)
	assert.Equal(t, "Tuesday", ctx.Weekday)
	assert.Equal(t, daily.Winter, ctx.Season)
	assert.Equal(t, 53, ctx.WeekNumber)
	assert.Equal(t, 2025, ctx.ISOYear)
	assert.Equal(t, 1, ctx.ISOWeek)
	assert.Equal(t, 366, ctx.DayOfYear)
	assert.Equal(t, 366, ctx.DaysInYear)
	assert.True(t, ctx.LeapYear)
	assert.False(t, ctx.IsWeekend)
	assert.NotEmpty(t, ctx.Moon.Name)
}

func TestDerive_Options(t *testing.T) {
	p := calendar.MustDate(2021, time.January, 1) // Friday
	opts := daily.DefaultOptions()

	ctx := daily.Derive(p, opts)
	assert.True(t, ctx.IsWeekend)
	assert.Equal(t, 2020, ctx.ISOYear)
	assert.Equal(t, 53, ctx.ISOWeek)
	assert.False(t, ctx.LeapYear)
	assert.Equal(t, 365, ctx.DaysInYear)

	opts.Weekend = calendar.NewWeekend(time.Saturday, time.Sunday)
	opts.Hemisphere = daily.South
	ctx = daily.Derive(p, opts)
	assert.False(t, ctx.IsWeekend)
	assert.Equal(t, daily.Summer, ctx.Season)
}
