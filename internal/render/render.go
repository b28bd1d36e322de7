// Package render turns engine results into localized terminal text or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/tartampluch/go-lifespan/internal/calendar"
	"github.com/tartampluch/go-lifespan/internal/config"
	"github.com/tartampluch/go-lifespan/internal/contacts"
	"github.com/tartampluch/go-lifespan/internal/engine"
)

const ruleWidth = 60

// Renderer writes results to one output.
type Renderer struct {
	w       io.Writer
	t       *Translator
	heading func(a ...any) string
	accent  func(a ...any) string
	muted   func(a ...any) string
}

// New creates a Renderer. Colors follow fatih/color's terminal detection.
func New(w io.Writer, t *Translator) *Renderer {
	return &Renderer{
		w:       w,
		t:       t,
		heading: color.New(color.FgCyan, color.Bold).SprintFunc(),
		accent:  color.New(color.FgGreen).SprintFunc(),
		muted:   color.New(color.FgHiBlack).SprintFunc(),
	}
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", config.JSONIndent)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
	}
	return nil
}

// Span writes the detailed difference, totals and workday counts.
func (r *Renderer) Span(s calendar.Span) error {
	var sb strings.Builder
	r.section(&sb, config.TKeyTitleSpan)
	r.spanLines(&sb, s)
	return r.flush(&sb)
}

// Profile writes every section of a profile.
func (r *Renderer) Profile(p engine.Profile) error {
	var sb strings.Builder
	r.profile(&sb, "", p)
	return r.flush(&sb)
}

// ContactProfile pairs a vCard subject with its profile.
type ContactProfile struct {
	Subject contacts.Subject `json:"subject"`
	Profile engine.Profile   `json:"profile"`
}

// Contacts writes one profile per subject, each under the subject's name.
func (r *Renderer) Contacts(entries []ContactProfile) error {
	var sb strings.Builder
	for i, e := range entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		r.profile(&sb, e.Subject.Name, e.Profile)
	}
	return r.flush(&sb)
}

func (r *Renderer) profile(sb *strings.Builder, name string, p engine.Profile) {
	title := r.t.Msg(config.TKeyTitleProfile)
	if name != "" {
		title += ": " + name
	}
	sb.WriteString(r.heading(title) + "\n")
	sb.WriteString(strings.Repeat("═", ruleWidth) + "\n")
	r.line(sb, config.TKeyLblBirth, r.t.Date(p.Birth.Time()))
	r.line(sb, config.TKeyLblReference, r.t.Date(p.Reference.Time()))

	r.section(sb, config.TKeyTitleSpan)
	r.spanLines(sb, p.Span)

	r.section(sb, config.TKeyTitleHijri)
	if p.Hijri != nil {
		r.line(sb, config.TKeyLblHijriBirth, fmt.Sprintf("%s (%s)", p.Hijri.Birth, p.Hijri.Birth.MonthName()))
		r.line(sb, config.TKeyLblHijriToday, fmt.Sprintf("%s (%s)", p.Hijri.Reference, p.Hijri.Reference.MonthName()))
		r.line(sb, config.TKeyLblHijriAge, r.t.Format(config.TKeyFmtHijriAge, map[string]any{
			"Years":  r.t.Int(int64(p.Hijri.Age.Years)),
			"Months": r.t.Int(int64(p.Hijri.Age.Months)),
			"Days":   r.t.Int(int64(p.Hijri.Age.Days)),
		}))
	} else {
		r.line(sb, config.TKeyLblHijriBirth, r.muted(r.t.Msg(config.TKeyLblUnknown)))
	}

	r.section(sb, config.TKeyTitleZodiac)
	r.line(sb, config.TKeyLblChinese, fmt.Sprintf("%s (%s, %s)", p.Chinese.Animal, p.Chinese.Element, p.Chinese.Polarity))
	r.line(sb, config.TKeyLblWestern, fmt.Sprintf("%s %s (%s)", p.Western.Name, p.Western.Symbol, p.Western.Element))
	if p.Generation != nil {
		r.line(sb, config.TKeyLblGeneration, fmt.Sprintf("%s (%d-%d)", p.Generation.Name, p.Generation.StartYear, p.Generation.EndYear))
	} else {
		r.line(sb, config.TKeyLblGeneration, r.muted(r.t.Msg(config.TKeyLblUnknown)))
	}

	r.section(sb, config.TKeyTitleContext)
	r.line(sb, config.TKeyLblBornOn, p.BirthDay.Weekday)
	r.line(sb, config.TKeyLblSeason, string(p.BirthDay.Season))
	r.line(sb, config.TKeyLblMoon, p.BirthDay.Moon.Name)
	r.line(sb, config.TKeyLblWeek, r.t.Int(int64(p.BirthDay.WeekNumber)))
	r.line(sb, config.TKeyLblDayOfYear, r.t.Int(int64(p.BirthDay.DayOfYear)))

	r.section(sb, config.TKeyTitleStats)
	r.line(sb, config.TKeyLblHeartbeats, r.t.Int(p.Life.Heartbeats))
	r.line(sb, config.TKeyLblBreaths, r.t.Int(p.Life.Breaths))
	r.line(sb, config.TKeyLblBlinks, r.t.Int(p.Life.Blinks))
	r.line(sb, config.TKeyLblSteps, r.t.Int(p.Life.Steps))
	r.line(sb, config.TKeyLblSleep, r.t.Int(p.Life.SleepHours))
	r.line(sb, config.TKeyLblMeals, r.t.Int(p.Life.Meals))
	r.line(sb, config.TKeyLblLifePercent, r.t.Decimal(p.Life.LifeExpectancyPercentage)+" %")

	r.section(sb, config.TKeyTitleNext)
	r.line(sb, config.TKeyLblNextDate, r.t.Date(p.NextBirthday.Date.Time()))
	r.line(sb, config.TKeyLblTurning, r.t.Int(int64(p.NextBirthday.Age)))
	r.line(sb, config.TKeyLblDaysUntil, r.t.Int(int64(p.NextBirthday.DaysUntil)))

	if len(p.Milestones) > 0 {
		r.section(sb, config.TKeyTitleMilestone)
		for _, m := range p.Milestones {
			status := r.muted(r.t.Msg(config.TKeyLblUpcoming))
			if m.Reached {
				status = r.accent(r.t.Msg(config.TKeyLblReached))
			}
			label := r.t.Format(config.TKeyFmtMilestone, map[string]any{"Days": r.t.Int(int64(m.Days))})
			fmt.Fprintf(sb, "  %-24s %s  %s\n", label, r.t.Date(m.Date.Time()), status)
		}
	}
}

func (r *Renderer) spanLines(sb *strings.Builder, s calendar.Span) {
	d := s.Difference
	r.line(sb, config.TKeyLblAge, r.t.Format(config.TKeyFmtDifference, map[string]any{
		"Years":   r.t.Int(int64(d.Years)),
		"Months":  r.t.Int(int64(d.Months)),
		"Days":    r.t.Int(int64(d.Days)),
		"Hours":   r.t.Int(int64(d.Hours)),
		"Minutes": r.t.Int(int64(d.Minutes)),
		"Seconds": r.t.Int(int64(d.Seconds)),
	}))
	r.line(sb, config.TKeyLblTotals, r.t.Format(config.TKeyFmtTotals, map[string]any{
		"Days":   r.t.Int(s.Totals.Days),
		"Weeks":  r.t.Int(s.Totals.Weeks),
		"Months": r.t.Int(s.Totals.Months),
		"Years":  r.t.Int(s.Totals.Years),
	}))
	r.line(sb, config.TKeyLblWorkdays, r.t.Format(config.TKeyFmtWorkdays, map[string]any{
		"Workdays": r.t.Int(int64(s.Workdays)),
		"Weekend":  r.t.Int(int64(s.Weekend)),
	}))
}

func (r *Renderer) section(sb *strings.Builder, key string) {
	sb.WriteString("\n" + r.heading(r.t.Msg(key)) + "\n")
	sb.WriteString(strings.Repeat("─", ruleWidth) + "\n")
}

func (r *Renderer) line(sb *strings.Builder, key, value string) {
	fmt.Fprintf(sb, "  %-26s %s\n", r.t.Msg(key)+":", value)
}

func (r *Renderer) flush(sb *strings.Builder) error {
	if _, err := io.WriteString(r.w, sb.String()); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
	}
	return nil
}
