// Package feed publishes upcoming birthdays and day-count milestones as an
// iCalendar (RFC 5545) feed that calendar clients can subscribe to.
package feed

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-lifespan/internal/calendar"
	"github.com/tartampluch/go-lifespan/internal/config"
	"github.com/tartampluch/go-lifespan/internal/contacts"
	"github.com/tartampluch/go-lifespan/internal/engine"
)

// uidNamespace seeds the name-based event UIDs so they stay stable across runs.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte(config.ICalDomain))

// Options tunes one generation pass.
type Options struct {
	// Reminder is an ISO 8601 duration such as "-P1D". Empty disables alarms.
	Reminder string

	// MilestoneDays lists the day counts published for subjects with a known birth year.
	MilestoneDays []int

	// FormatBirthday and FormatMilestone let callers inject localized summaries.
	FormatBirthday  func(name string, age int, yearKnown bool) string
	FormatMilestone func(name string, days int) string
}

// Stats summarizes a generated feed.
type Stats struct {
	Subjects   int `json:"subjects"`
	Birthdays  int `json:"birthdays"`
	Milestones int `json:"milestones"`
	Today      int `json:"today"`
}

// Generator turns subjects into an iCalendar document.
type Generator struct {
	Clock engine.Clock
}

// Generate covers the previous, current and next year so that clients
// scrolling around "today" find events without a resync.
// An empty result is still a valid VCALENDAR.
func (g *Generator) Generate(ctx context.Context, subjects []contacts.Subject, opts Options) ([]byte, Stats, error) {
	clock := g.Clock
	if clock == nil {
		clock = engine.RealClock{}
	}

	// Birthdays follow the local calendar date; only DTSTAMP is UTC.
	now := clock.Now()
	today := calendar.FromTime(now).DateOnly()
	first := calendar.MustDate(today.Year()-1, time.January, 1)
	last := calendar.MustDate(today.Year()+1, time.December, 31)

	cal := newCalendar()
	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(now.UTC())

	stats := Stats{Subjects: len(subjects)}
	for _, s := range subjects {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		for _, e := range g.birthdayEvents(s, today, opts) {
			if onDay(e, today) {
				stats.Today++
				slog.InfoContext(ctx, config.MsgBirthdayToday,
					config.LogKeyComponent, config.CompFeed,
					config.LogKeyName, s.Name,
					config.LogKeyDOB, s.Birth.Time().Format(config.DateFormatFullDash))
			}
			e.Props.Set(dtStamp)
			cal.Children = append(cal.Children, e.Component)
			stats.Birthdays++
		}

		if !s.YearKnown {
			continue
		}
		for _, e := range milestoneEvents(s, first, last, opts) {
			e.Props.Set(dtStamp)
			cal.Children = append(cal.Children, e.Component)
			stats.Milestones++
		}
	}

	if len(cal.Children) == 0 {
		logSuccess(ctx, stats)
		return []byte(config.StubVCalendar), stats, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, stats, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	logSuccess(ctx, stats)
	return buf.Bytes(), stats, nil
}

func newCalendar() *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	// Calendar clients expect the name without a VALUE parameter.
	name := ical.NewProp(config.PropXWRCalName)
	name.Value = config.ICalCalName
	cal.Props.Set(name)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986 refresh hint.
	refresh := ical.NewProp(config.PropRefresh)
	refresh.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refresh)
	return cal
}

// birthdayEvents never creates an event before the subject was born.
func (g *Generator) birthdayEvents(s contacts.Subject, today calendar.Point, opts Options) []*ical.Event {
	var events []*ical.Event
	for _, y := range []int{today.Year() - 1, today.Year(), today.Year() + 1} {
		if s.YearKnown && y < s.Birth.Year() {
			continue
		}

		// Feb 29 rolls to Mar 1 in common years.
		date := time.Date(y, s.Birth.Month(), s.Birth.Day(), 0, 0, 0, 0, time.UTC)

		age := 0
		if s.YearKnown {
			age = y - s.Birth.Year()
		}
		summary := birthdaySummary(opts, s.Name, age, s.YearKnown)

		e := newEvent(eventUID(s.UID, config.EventBirthday, y), summary, config.CategoryBirthday, date)
		if opts.Reminder != "" {
			addAlarm(e, opts.Reminder, summary)
		}
		events = append(events, e)
	}
	return events
}

func milestoneEvents(s contacts.Subject, first, last calendar.Point, opts Options) []*ical.Event {
	var events []*ical.Event
	for _, m := range engine.Milestones(s.Birth, first, opts.MilestoneDays) {
		if m.Date.Before(first) || m.Date.After(last) {
			continue
		}
		summary := milestoneSummary(opts, s.Name, m.Days)
		e := newEvent(eventUID(s.UID, config.EventMilestone, m.Days), summary, config.CategoryMilestone, m.Date.Time())
		if opts.Reminder != "" {
			addAlarm(e, opts.Reminder, summary)
		}
		events = append(events, e)
	}
	return events
}

func newEvent(uid, summary, category string, date time.Time) *ical.Event {
	e := ical.NewEvent()
	e.Props.SetText(config.PropUID, uid)
	e.Props.SetText(config.PropSummary, summary)
	e.Props.SetText(config.PropCategories, category)

	start := ical.NewProp(config.PropDTStart)
	start.SetDate(date)
	e.Props.Set(start)
	return e
}

// eventUID derives a SHA-1 name-based UUID from the subject, kind and discriminator.
func eventUID(subjectUID, kind string, n int) string {
	id := uuid.NewSHA1(uidNamespace, []byte(fmt.Sprintf(config.FormatUIDName, subjectUID, kind, n)))
	return fmt.Sprintf(config.FormatUID, id, config.ICalDomain)
}

// addAlarm appends a DISPLAY alarm to the event.
func addAlarm(e *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set the raw value to avoid a VALUE=TEXT parameter.
	prop := ical.NewProp(config.PropTrigger)
	prop.Value = trigger
	alarm.Props.Set(prop)

	e.Children = append(e.Children, alarm)
}

func onDay(e *ical.Event, day calendar.Point) bool {
	prop := e.Props.Get(config.PropDTStart)
	return prop != nil && prop.Value == day.Time().Format(config.DateFormatFullBasic)
}

func birthdaySummary(opts Options, name string, age int, yearKnown bool) string {
	if opts.FormatBirthday != nil {
		return opts.FormatBirthday(name, age, yearKnown)
	}
	if yearKnown && age > 0 {
		return fmt.Sprintf(config.FallbackSummaryAge, name, age)
	}
	return fmt.Sprintf(config.FallbackSummary, name)
}

func milestoneSummary(opts Options, name string, days int) string {
	if opts.FormatMilestone != nil {
		return opts.FormatMilestone(name, days)
	}
	return fmt.Sprintf(config.FallbackSummaryMs, name, days)
}

func logSuccess(ctx context.Context, stats Stats) {
	slog.InfoContext(ctx, config.MsgFeedGenerated,
		config.LogKeyComponent, config.CompFeed,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeySubjects, stats.Subjects),
			slog.Int(config.LogKeyEvents, stats.Birthdays+stats.Milestones),
			slog.Int(config.LogKeyToday, stats.Today),
		),
	)
}
