package feed_test

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifespan/internal/calendar"
	"github.com/tartampluch/go-lifespan/internal/config"
	"github.com/tartampluch/go-lifespan/internal/contacts"
	"github.com/tartampluch/go-lifespan/internal/feed"
)

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func generatorAt(y int, m time.Month, d int) *feed.Generator {
	return &feed.Generator{Clock: MockClock{CurrentTime: time.Date(y, m, d, 10, 0, 0, 0, time.UTC)}}
}

func subject(name string, birth calendar.Point, yearKnown bool) contacts.Subject {
	return contacts.Subject{UID: "uid-" + name, Name: name, Birth: birth, YearKnown: yearKnown}
}

// -----------------------------------------------------------------------------
// Birthdays
// -----------------------------------------------------------------------------

func TestGenerate_YearRange(t *testing.T) {
	subjects := []contacts.Subject{subject("Range Test", calendar.MustDate(1990, time.December, 31), true)}

	ics, stats, err := generatorAt(2025, time.January, 1).Generate(context.Background(), subjects, feed.Options{})
	require.NoError(t, err)

	out := string(ics)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "X-WR-CALNAME:"+config.ICalCalName)
	assert.NotContains(t, out, "X-WR-CALNAME;VALUE=TEXT")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20241231")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20251231")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20261231")
	assert.Contains(t, out, "SUMMARY:Birthday: Range Test (35)")
	assert.Contains(t, out, "CATEGORIES:"+config.CategoryBirthday)
	assert.Equal(t, 3, strings.Count(out, "BEGIN:VEVENT"))
	assert.Equal(t, 3, stats.Birthdays)
	assert.Zero(t, stats.Today)
}

func TestGenerate_BabyBornThisYear(t *testing.T) {
	subjects := []contacts.Subject{subject("Baby", calendar.MustDate(2025, time.May, 1), true)}
	opts := feed.Options{
		FormatBirthday: func(name string, age int, yearKnown bool) string {
			if age == 0 {
				return fmt.Sprintf("Birthday: %s (Birth)", name)
			}
			return fmt.Sprintf("Birthday: %s (%d)", name, age)
		},
	}

	ics, _, err := generatorAt(2025, time.January, 1).Generate(context.Background(), subjects, opts)
	require.NoError(t, err)

	out := string(ics)
	assert.NotContains(t, out, "DTSTART;VALUE=DATE:20240501")
	assert.Contains(t, out, "SUMMARY:Birthday: Baby (Birth)")
	assert.Contains(t, out, "SUMMARY:Birthday: Baby (1)")
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
}

func TestGenerate_FutureBirth(t *testing.T) {
	subjects := []contacts.Subject{subject("Future", calendar.MustDate(2027, time.January, 1), true)}

	ics, stats, err := generatorAt(2025, time.January, 1).Generate(context.Background(), subjects, feed.Options{})
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(ics))
	assert.Zero(t, stats.Birthdays)
}

func TestGenerate_LeaplingWithoutYear(t *testing.T) {
	subjects := []contacts.Subject{subject("Leap", calendar.MustDate(config.DefaultLeapYear, time.February, 29), false)}

	ics, stats, err := generatorAt(2025, time.March, 1).Generate(context.Background(), subjects, feed.Options{MilestoneDays: []int{1000}})
	require.NoError(t, err)

	out := string(ics)
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20240229")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20250301")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20260301")
	assert.Contains(t, out, "SUMMARY:Birthday: Leap")
	assert.Equal(t, 1, stats.Today)
	assert.Zero(t, stats.Milestones, "milestones need a known birth year")
}

func TestGenerate_Reminders(t *testing.T) {
	subjects := []contacts.Subject{subject("Alarm", calendar.MustDate(1990, time.January, 1), true)}

	ics, _, err := generatorAt(2025, time.June, 1).Generate(context.Background(), subjects, feed.Options{Reminder: config.DefaultReminder})
	require.NoError(t, err)

	out := string(ics)
	assert.Contains(t, out, "BEGIN:VALARM")
	assert.Contains(t, out, "TRIGGER:-P1D")
	assert.Contains(t, out, "ACTION:DISPLAY")
}

// -----------------------------------------------------------------------------
// Milestones
// -----------------------------------------------------------------------------

func TestGenerate_Milestones(t *testing.T) {
	subjects := []contacts.Subject{subject("Ten Thousand", calendar.MustDate(1997, time.March, 3), true)}
	opts := feed.Options{
		MilestoneDays: []int{1000, 10000, 20000},
		FormatMilestone: func(name string, days int) string {
			return fmt.Sprintf("%s is %d days old", name, days)
		},
	}

	ics, stats, err := generatorAt(2024, time.June, 1).Generate(context.Background(), subjects, opts)
	require.NoError(t, err)

	out := string(ics)
	assert.Equal(t, 1, stats.Milestones)
	assert.Equal(t, 3, stats.Birthdays)
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20240719")
	assert.Contains(t, out, "SUMMARY:Ten Thousand is 10000 days old")
	assert.Contains(t, out, "CATEGORIES:"+config.CategoryMilestone)
}

// -----------------------------------------------------------------------------
// Identity & Robustness
// -----------------------------------------------------------------------------

var uidPattern = regexp.MustCompile(`UID:([0-9a-f-]{36})@` + config.ICalDomain)

func TestGenerate_StableUniqueUIDs(t *testing.T) {
	subjects := []contacts.Subject{
		subject("A", calendar.MustDate(1990, time.January, 1), true),
		subject("B", calendar.MustDate(1990, time.January, 1), true),
	}
	gen := generatorAt(2025, time.June, 1)

	first, _, err := gen.Generate(context.Background(), subjects, feed.Options{})
	require.NoError(t, err)
	second, _, err := gen.Generate(context.Background(), subjects, feed.Options{})
	require.NoError(t, err)

	uids := uidPattern.FindAllStringSubmatch(string(first), -1)
	require.Len(t, uids, 6)

	seen := make(map[string]bool)
	for _, m := range uids {
		assert.False(t, seen[m[1]], "duplicate UID %s", m[1])
		seen[m[1]] = true
	}
	assert.Equal(t, uids, uidPattern.FindAllStringSubmatch(string(second), -1))
}

func TestGenerate_Empty(t *testing.T) {
	ics, stats, err := (&feed.Generator{}).Generate(context.Background(), nil, feed.Options{})
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(ics))
	assert.Equal(t, feed.Stats{}, stats)
}

func TestGenerate_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	subjects := []contacts.Subject{subject("A", calendar.MustDate(1990, time.January, 1), true)}
	ics, _, err := generatorAt(2025, time.June, 1).Generate(ctx, subjects, feed.Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, ics)
}
