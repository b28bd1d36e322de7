package zodiac_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifespan/internal/calendar"
	"github.com/tartampluch/go-lifespan/internal/zodiac"
)

// -----------------------------------------------------------------------------
// Chinese Zodiac
// -----------------------------------------------------------------------------

func TestChineseZodiac_KnownYears(t *testing.T) {
	tests := []struct {
		year    int
		animal  zodiac.Animal
		element zodiac.Element
	}{
		{1984, zodiac.Rat, zodiac.Wood},
		{1990, zodiac.Horse, zodiac.Metal},
		{2000, zodiac.Dragon, zodiac.Metal},
		{2008, zodiac.Rat, zodiac.Earth},
		{2023, zodiac.Rabbit, zodiac.Water},
		{2024, zodiac.Dragon, zodiac.Wood},
		{1900, zodiac.Rat, zodiac.Metal},
		{4, zodiac.Rat, zodiac.Wood},
		{3, zodiac.Pig, zodiac.Water},
		{-56, zodiac.Rat, zodiac.Wood},
	}

	for _, tt := range tests {
		t.Run(string(tt.animal), func(t *testing.T) {
			got := zodiac.ChineseZodiac(tt.year)
			assert.Equal(t, tt.animal, got.Animal, "year %d", tt.year)
			assert.Equal(t, tt.element, got.Element, "year %d", tt.year)
		})
	}
}

func TestChineseZodiac_Cycles(t *testing.T) {
	for year := -200; year <= 2200; year++ {
		base := zodiac.ChineseZodiac(year)
		assert.Equal(t, base.Animal, zodiac.ChineseZodiac(year+12).Animal, "12-year animal cycle at %d", year)
		assert.Equal(t, base, zodiac.ChineseZodiac(year+60), "60-year cycle at %d", year)
	}
}

func TestChineseZodiac_ElementSpansTwoYears(t *testing.T) {
	for year := 1900; year < 2100; year += 2 {
		assert.Equal(t, zodiac.ChineseZodiac(year).Element, zodiac.ChineseZodiac(year+1).Element, "year %d", year)
		assert.Equal(t, zodiac.Yang, zodiac.ChineseZodiac(year).Polarity)
		assert.Equal(t, zodiac.Yin, zodiac.ChineseZodiac(year+1).Polarity)
	}
}

func TestChineseZodiac_SixtyYearPairsAreDistinct(t *testing.T) {
	seen := make(map[zodiac.Chinese]int)
	for year := 1984; year < 2044; year++ {
		c := zodiac.ChineseZodiac(year)
		prev, dup := seen[c]
		assert.Falsef(t, dup, "%v repeats in %d and %d", c, prev, year)
		seen[c] = year
	}
	assert.Len(t, seen, 60)
}

// -----------------------------------------------------------------------------
// Profiles
// -----------------------------------------------------------------------------

// TestProfiles_Completeness ensures every animal resolves in every auxiliary table.
func TestProfiles_Completeness(t *testing.T) {
	animals := zodiac.Animals()
	require.Len(t, animals, 12)

	for _, a := range animals {
		t.Run(string(a), func(t *testing.T) {
			p, err := zodiac.ProfileOf(a)
			require.NoError(t, err)
			assert.Equal(t, a, p.Animal)
			assert.NotEmpty(t, p.Traits)
			assert.NotEmpty(t, p.Compatibility)
			assert.NotEmpty(t, p.LuckyNumbers)
			assert.NotEmpty(t, p.LuckyColors)
			assert.NotEmpty(t, p.Description)

			for _, c := range p.Compatibility {
				_, err := zodiac.ParseAnimal(string(c))
				assert.NoError(t, err, "compatibility entry %q must be a known animal", c)
				assert.NotEqual(t, a, c)
			}
		})
	}

	for _, e := range zodiac.Elements() {
		info, err := zodiac.ElementInfo(e)
		require.NoError(t, err)
		assert.NotEmpty(t, info.Description)
	}
}

func TestProfileOf_ReturnsCopies(t *testing.T) {
	p, err := zodiac.ProfileOf(zodiac.Horse)
	require.NoError(t, err)
	p.Traits[0] = "mutated"

	again, err := zodiac.ProfileOf(zodiac.Horse)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again.Traits[0])
}

func TestProfileOf_Unknown(t *testing.T) {
	_, err := zodiac.ProfileOf("Cat")
	assert.ErrorIs(t, err, calendar.ErrUnclassified)

	_, err = zodiac.ParseAnimal("Cat")
	assert.ErrorIs(t, err, calendar.ErrUnclassified)

	_, err = zodiac.ElementInfo("Aether")
	assert.ErrorIs(t, err, calendar.ErrUnclassified)
}

// -----------------------------------------------------------------------------
// Western Zodiac
// -----------------------------------------------------------------------------

func TestWesternZodiac_Boundaries(t *testing.T) {
	tests := []struct {
		month time.Month
		day   int
		want  string
	}{
		{time.December, 21, "Sagittarius"},
		{time.December, 22, "Capricorn"},
		{time.December, 31, "Capricorn"},
		{time.January, 1, "Capricorn"},
		{time.January, 19, "Capricorn"},
		{time.January, 20, "Aquarius"},
		{time.February, 18, "Aquarius"},
		{time.February, 19, "Pisces"},
		{time.February, 29, "Pisces"},
		{time.March, 20, "Pisces"},
		{time.March, 21, "Aries"},
		{time.June, 15, "Gemini"},
		{time.June, 21, "Cancer"},
		{time.August, 23, "Virgo"},
		{time.November, 21, "Scorpio"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := zodiac.WesternZodiac(tt.month, tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Name, "%s %d", tt.month, tt.day)
		})
	}
}

// Every day of a leap year must match exactly one sign.
func TestWesternZodiac_Partition(t *testing.T) {
	counts := make(map[string]int)
	for day := calendar.MustDate(2024, time.January, 1); day.Year() == 2024; day = day.AddDays(1) {
		matches := 0
		for _, s := range zodiac.Signs() {
			if s.Contains(day.Month(), day.Day()) {
				matches++
			}
		}
		require.Equal(t, 1, matches, "day %s", day)

		s, err := zodiac.WesternZodiac(day.Month(), day.Day())
		require.NoError(t, err)
		counts[s.Name]++
	}
	assert.Len(t, counts, 12)
}

func TestWesternZodiac_InvalidInput(t *testing.T) {
	for _, tc := range []struct {
		month time.Month
		day   int
	}{
		{0, 1}, {13, 1}, {time.February, 30}, {time.April, 31}, {time.May, 0},
	} {
		_, err := zodiac.WesternZodiac(tc.month, tc.day)
		assert.ErrorIs(t, err, calendar.ErrInvalidDate, "%d-%d", tc.month, tc.day)
	}
}
